// Package canonical normalizes free-text citation fields before they are
// placed into a bibliography entry.
package canonical

import (
	"strings"

	"bibentry/src/internal/stringsx"
)

// EtAll is the multi-author marker moved to the end of an author line.
const EtAll = "et all"

// Author canonicalizes an author line: "First Last" becomes "Last, First",
// "et all" is moved to the end and a trailing period is dropped.
//
// A line that already contains a comma is taken to be in "Last, First" form.
// Abbreviated suffixes (Jr., Sr., PhD.) are not special-cased, so their
// trailing period is dropped like any other.
func Author(raw string) string {
	if raw == "" {
		return ""
	}
	v := strings.TrimSuffix(raw, ".")

	suffix := ""
	if i := stringsx.IndexFold(v, EtAll); i >= 0 {
		v = v[:i] + v[i+len(EtAll):]
		suffix = EtAll
	}

	if !strings.Contains(v, ",") {
		// only reorder when there is something before the first space
		if i := strings.Index(v, " "); i > 0 {
			first := strings.TrimSpace(v[:i])
			last := strings.TrimSpace(v[i:])
			v = last + ", " + first
		}
	}

	if suffix != "" {
		v = strings.TrimSpace(v) + " " + suffix
	}
	return strings.TrimSuffix(v, ".")
}
