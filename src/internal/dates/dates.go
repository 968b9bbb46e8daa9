package dates

import (
	"fmt"
	"strings"
	"time"
)

// PubDateLayout is the publication date shape asked for at the prompt.
const PubDateLayout = "02 Jan 2006"

// YearFromPubDate returns the year of a "DD MMM YYYY" date, falling back to
// the first plausible 4-digit year anywhere in the string.
func YearFromPubDate(s string) int {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(PubDateLayout, s); err == nil {
		return t.Year()
	}
	return ExtractYear(s)
}

// ExtractYear scans a string and returns a plausible 4-digit year if found.
func ExtractYear(s string) int {
	s = strings.TrimSpace(s)
	for i := 0; i+4 <= len(s); i++ {
		var y int
		if _, err := fmt.Sscanf(s[i:i+4], "%d", &y); err == nil {
			if y >= 1000 && y <= time.Now().Year()+1 {
				return y
			}
		}
	}
	return 0
}

// NowISO returns the current UTC date as YYYY-MM-DD.
func NowISO() string { return time.Now().UTC().Format("2006-01-02") }
