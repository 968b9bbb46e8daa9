package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one citation in a batch file. Field names match the entry
// template placeholders.
type Record struct {
	ID      string `yaml:"id,omitempty" json:"id,omitempty"`
	Author  string `yaml:"author,omitempty" json:"author,omitempty"`
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	PubDate string `yaml:"pubdate,omitempty" json:"pubdate,omitempty"`
	Ref     string `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// Values returns the record as a placeholder name -> raw value map.
func (r Record) Values() map[string]string {
	return map[string]string{
		"author":  r.Author,
		"title":   r.Title,
		"pubdate": r.PubDate,
		"ref":     r.Ref,
	}
}

// Validate rejects records with no usable field.
func (r *Record) Validate() error {
	for _, v := range r.Values() {
		if strings.TrimSpace(v) != "" {
			return nil
		}
	}
	return errors.New("record has no author, title, pubdate or ref")
}

// Batch is a list of records. It unmarshals from either a bare YAML sequence
// or a mapping with a "records" key.
type Batch []Record

func (b *Batch) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch value.Kind {
	case yaml.SequenceNode:
		var out []Record
		if err := value.Decode(&out); err != nil {
			return err
		}
		*b = out
		return nil
	case yaml.MappingNode:
		var wrapped struct {
			Records []Record `yaml:"records"`
		}
		if err := value.Decode(&wrapped); err != nil {
			return err
		}
		*b = wrapped.Records
		return nil
	default:
		return fmt.Errorf("line %d: expected a list of records", value.Line)
	}
}

// FieldValue is one submitted value in a saved session.
type FieldValue struct {
	Field string `yaml:"field" json:"field"`
	Value string `yaml:"value" json:"value"`
}

// State is a partially built entry persisted between step commands.
type State struct {
	Template string       `yaml:"template" json:"template"`
	Created  string       `yaml:"created" json:"created"`
	Values   []FieldValue `yaml:"values" json:"values"`
}

// Validate checks that a loaded state is usable.
func (s *State) Validate() error {
	if strings.TrimSpace(s.Template) == "" {
		return errors.New("state template is required")
	}
	for i, v := range s.Values {
		if strings.TrimSpace(v.Field) == "" {
			return fmt.Errorf("state values[%d]: field is required", i)
		}
	}
	return nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
var dashCollapse = regexp.MustCompile(`-+`)

// Slugify generates an id-friendly slug from title and optional year.
func Slugify(title string, year *int) string {
	t := strings.ToLower(strings.TrimSpace(title))
	t = nonAlnum.ReplaceAllString(t, "-")
	t = dashCollapse.ReplaceAllString(t, "-")
	t = strings.Trim(t, "-")
	if year != nil {
		return fmt.Sprintf("%s-%d", t, *year)
	}
	return t
}
