package entry

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateText is the fixed shape of every entry.
const TemplateText = "<author> <title> <pubdate> <ref>"

// Default is the parsed TemplateText.
var Default = MustParseTemplate(TemplateText)

var (
	tokenPattern = regexp.MustCompile(`<([A-Za-z0-9_]+)>`)
	knownPattern = regexp.MustCompile(knownAlternation())
)

func knownAlternation() string {
	names := make([]string, 0, len(registry))
	for _, f := range registry {
		names = append(names, regexp.QuoteMeta(f.Name))
	}
	return "<(" + strings.Join(names, "|") + ")>"
}

// Step is the result of one substitution: the working entry and, unless the
// entry is resolved, the next placeholder to fill and its prompt.
type Step struct {
	Entry  string `yaml:"entry" json:"entry"`
	Next   string `yaml:"next,omitempty" json:"next,omitempty"`
	Prompt string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
}

// Done reports whether no placeholders remain.
func (s Step) Done() bool { return s.Next == "" }

// SubstituteNext replaces the placeholder for name in entry with the formatted
// value and reports the first placeholder still present. An empty name skips
// the substitution, which is how a caller discovers the first field of a fresh
// template. An empty value removes the placeholder along with one adjacent
// separating space.
func SubstituteNext(entry, name, value string) (Step, error) {
	if name != "" {
		f, ok := Lookup(name)
		if !ok {
			return Step{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		entry = replaceToken(entry, f.Token(), f.Format(value))
		entry = strings.TrimSpace(entry)
	}
	return scan(entry), nil
}

func replaceToken(entry, token, wrapped string) string {
	if wrapped != "" {
		return strings.ReplaceAll(entry, token, wrapped)
	}
	entry = strings.ReplaceAll(entry, token+" ", "")
	entry = strings.ReplaceAll(entry, " "+token, "")
	return strings.ReplaceAll(entry, token, "")
}

func scan(entry string) Step {
	m := knownPattern.FindStringSubmatch(entry)
	if m == nil {
		return Step{Entry: entry}
	}
	f, _ := Lookup(m[1])
	return Step{Entry: entry, Next: f.Name, Prompt: f.Prompt}
}

type segment struct {
	text  string
	field string
}

// Template is a parsed entry template: literal text interleaved with
// references to registered fields.
type Template struct {
	text     string
	segments []segment
}

// ParseTemplate parses text into a Template. Every placeholder must name a
// registered field and may appear only once.
func ParseTemplate(text string) (Template, error) {
	t := Template{text: text}
	seen := map[string]bool{}
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		if _, ok := Lookup(name); !ok {
			return Template{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if seen[name] {
			return Template{}, fmt.Errorf("duplicate placeholder <%s> in template", name)
		}
		seen[name] = true
		if loc[0] > last {
			t.segments = append(t.segments, segment{text: text[last:loc[0]]})
		}
		t.segments = append(t.segments, segment{field: name})
		last = loc[1]
	}
	if last < len(text) {
		t.segments = append(t.segments, segment{text: text[last:]})
	}
	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(text string) Template {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the template text.
func (t Template) String() string { return t.text }

// Fields returns the placeholder names in order of appearance.
func (t Template) Fields() []string {
	var out []string
	for _, s := range t.segments {
		if s.field != "" {
			out = append(out, s.field)
		}
	}
	return out
}

// Has reports whether the template references name.
func (t Template) Has(name string) bool {
	for _, s := range t.segments {
		if s.field == name {
			return true
		}
	}
	return false
}
