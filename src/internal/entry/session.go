package entry

import "fmt"

// Value is one submitted field value, kept raw so a session can be replayed.
type Value struct {
	Field string `yaml:"field" json:"field"`
	Value string `yaml:"value" json:"value"`
}

// Session is the working state of one entry. Callers drive it with Start and
// Submit until the returned Step is done. Every value is applied to the
// working entry with SubstituteNext.
type Session struct {
	tmpl   Template
	entry  string
	filled map[string]bool
	order  []Value
}

// NewSession starts an empty session over t.
func NewSession(t Template) *Session {
	return &Session{tmpl: t, entry: t.String(), filled: map[string]bool{}}
}

// Restore rebuilds a session by replaying previously submitted values.
func Restore(t Template, submitted []Value) (*Session, error) {
	s := NewSession(t)
	for _, v := range submitted {
		if _, err := s.SubmitField(v.Field, v.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start returns the first step. A non-empty selection is used as the value of
// "ref" before any other field is asked for. Starting a session that already
// holds values with a selection fails with ErrAlreadyFilled when ref is set.
func (s *Session) Start(selection string) (Step, error) {
	if selection == "" || !s.tmpl.Has("ref") {
		return s.Next(), nil
	}
	return s.SubmitField("ref", selection)
}

// Next reports the current step without changing the session. Placeholders
// for fields already filled are skipped: they can only reappear through
// submitted text and are not asked for twice.
func (s *Session) Next() Step {
	for _, m := range knownPattern.FindAllStringSubmatch(s.entry, -1) {
		if s.filled[m[1]] {
			continue
		}
		f, _ := Lookup(m[1])
		return Step{Entry: s.entry, Next: f.Name, Prompt: f.Prompt}
	}
	return Step{Entry: s.entry}
}

// Pending returns the next unfilled field, or "" when the entry is resolved.
func (s *Session) Pending() string { return s.Next().Next }

// Template returns the template the session fills.
func (s *Session) Template() Template { return s.tmpl }

// Done reports whether every field has been supplied.
func (s *Session) Done() bool { return s.Pending() == "" }

// Entry returns the working entry.
func (s *Session) Entry() string { return s.entry }

// Values returns the submitted values in submission order.
func (s *Session) Values() []Value {
	out := make([]Value, len(s.order))
	copy(out, s.order)
	return out
}

// Submit fills the pending field with value.
func (s *Session) Submit(value string) (Step, error) {
	name := s.Pending()
	if name == "" {
		return s.Next(), ErrComplete
	}
	return s.SubmitField(name, value)
}

// SubmitField fills the named field out of order.
func (s *Session) SubmitField(name, value string) (Step, error) {
	if _, ok := Lookup(name); !ok || !s.tmpl.Has(name) {
		return Step{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if s.filled[name] {
		return Step{}, fmt.Errorf("%w: %s", ErrAlreadyFilled, name)
	}
	step, err := SubstituteNext(s.entry, name, value)
	if err != nil {
		return Step{}, err
	}
	s.entry = step.Entry
	s.filled[name] = true
	s.order = append(s.order, Value{Field: name, Value: value})
	return s.Next(), nil
}

// Build resolves an entry from the default template in one call. Fields
// missing from values are left empty; selection, when set, is used for "ref".
func Build(values map[string]string, selection string) (string, error) {
	for name := range values {
		if !Default.Has(name) {
			return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	s := NewSession(Default)
	step, err := s.Start(selection)
	if err != nil {
		return "", err
	}
	for !step.Done() {
		if step, err = s.Submit(values[step.Next]); err != nil {
			return "", err
		}
	}
	return step.Entry, nil
}
