package sanitize

import (
	"strings"

	"bibentry/src/internal/schema"
)

// MaxFieldLen caps a single field value, in bytes.
const MaxFieldLen = 2048

// CleanField trims a raw field value and drops control characters. Tabs and
// line breaks become single spaces since an entry is one line. The result is
// truncated to max bytes on a rune boundary (if max <= 0, no truncation).
func CleanField(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			r = ' '
		case r < 0x20 || r == 0x7f:
			continue
		}
		if max > 0 && b.Len()+len(string(r)) > max {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// CleanValues cleans every value of a field map in place.
func CleanValues(values map[string]string) {
	for k, v := range values {
		values[k] = CleanField(v, MaxFieldLen)
	}
}

// CleanRecord applies CleanField to every field of a batch record.
func CleanRecord(r *schema.Record) {
	if r == nil {
		return
	}
	r.ID = CleanField(r.ID, 128)
	r.Author = CleanField(r.Author, MaxFieldLen)
	r.Title = CleanField(r.Title, MaxFieldLen)
	r.PubDate = CleanField(r.PubDate, MaxFieldLen)
	r.Ref = CleanField(r.Ref, MaxFieldLen)
}
