// Package entry assembles a single-line bibliography entry by filling the
// placeholders of a fixed template one field at a time.
package entry

import (
	"errors"
	"strings"

	"bibentry/src/internal/canonical"
)

// ValueMarker is replaced by the field value inside a Field's Wrap format.
const ValueMarker = "%s"

var (
	// ErrUnknownField is returned when a placeholder name is not registered.
	ErrUnknownField = errors.New("unknown field")
	// ErrComplete is returned when a value is submitted to a resolved session.
	ErrComplete = errors.New("entry is complete")
	// ErrAlreadyFilled is returned when a field is submitted twice.
	ErrAlreadyFilled = errors.New("field already filled")
)

// Field describes one placeholder: the prompt shown to the user, the
// punctuation wrapped around a non-empty value and an optional canonicalizer.
type Field struct {
	Name         string
	Prompt       string
	Wrap         string
	Canonicalize func(string) string
}

// Token returns the placeholder text for the field, e.g. "<author>".
func (f Field) Token() string { return "<" + f.Name + ">" }

// Format canonicalizes value and wraps it. Empty values, before or after
// canonicalization, format to "".
func (f Field) Format(value string) string {
	if value != "" && f.Canonicalize != nil {
		value = f.Canonicalize(value)
	}
	if value == "" {
		return ""
	}
	return strings.Replace(f.Wrap, ValueMarker, value, 1)
}

var registry = []Field{
	{Name: "author", Prompt: "Author (Last, First)", Wrap: "%s.", Canonicalize: canonical.Author},
	{Name: "title", Prompt: "Title", Wrap: `"%s"`, Canonicalize: canonical.Title},
	{Name: "pubdate", Prompt: "Publication Date (DD MMM YYYY)", Wrap: "%s."},
	{Name: "ref", Prompt: "Reference", Wrap: "<<%s>>"},
}

// Fields returns the registered fields in template order.
func Fields() []Field {
	out := make([]Field, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registered field for name.
func Lookup(name string) (Field, bool) {
	for _, f := range registry {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
