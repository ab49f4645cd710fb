// Package datefmt converts between the site's display date format and ISO dates.
package datefmt

import (
	"strings"
	"time"
)

// ISODate is the storage format.
const ISODate = "2006-01-02"

// inputLayouts are tried in order by Display.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	ISODate,
}

// Formatter holds the site's display layouts (Go reference-time syntax).
type Formatter struct {
	DateLayout string
	TimeLayout string
}

// New creates a Formatter. An empty timeLayout means "15:04".
func New(dateLayout, timeLayout string) Formatter {
	if timeLayout == "" {
		timeLayout = "15:04"
	}
	return Formatter{DateLayout: dateLayout, TimeLayout: timeLayout}
}

// ToISO parses a date typed in the display layout and returns it as
// YYYY-MM-DD, or "" when it is empty or does not parse.
func (f Formatter) ToISO(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	t, err := time.Parse(f.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Format(ISODate)
}

// Display renders a stored date in the display layout, optionally followed
// by the time. It returns "" when date is empty or does not parse.
func (f Formatter) Display(date string, withTime bool) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}

	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		if withTime {
			return t.Format(f.DateLayout + " " + f.TimeLayout)
		}
		return t.Format(f.DateLayout)
	}
	return ""
}
