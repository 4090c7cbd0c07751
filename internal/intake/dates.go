package intake

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DateLayout is how admission dates are rendered back to clients.
const DateLayout = "2006-01-02"

// extraDateLayouts are the spelled-out forms clerks tend to type, on top
// of the ISO and slash forms jinzhu/now already knows.
var extraDateLayouts = []string{
	"02-Jan-2006",
	"2-Jan-2006",
	"02-01-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// A Config only consults its own TimeFormats, so the library defaults are
// copied in ahead of the extras.
var dateParser = &now.Config{
	WeekStartDay: time.Monday,
	TimeLocation: time.UTC,
	TimeFormats:  fullDateLayouts(append(append([]string{}, now.TimeFormats...), extraDateLayouts...)),
}

// fullDateLayouts keeps the layouts that pin year, month and day. jinzhu/now
// fills anything missing from the clock, so "12:30" or "2000" would
// otherwise parse as a date.
func fullDateLayouts(layouts []string) []string {
	ref := time.Date(1999, time.November, 28, 0, 0, 0, 0, time.UTC)
	kept := make([]string, 0, len(layouts))
	for _, layout := range layouts {
		t, err := time.Parse(layout, ref.Format(layout))
		if err != nil {
			continue
		}
		if y, m, d := t.Date(); y == ref.Year() && m == ref.Month() && d == ref.Day() {
			kept = append(kept, layout)
		}
	}
	return kept
}

// ParseDate reads a free-form date and truncates it to a calendar day in
// UTC. Unparseable input is an InvalidInput error naming the field.
func ParseDate(field, value string) (time.Time, error) {
	t, err := dateParser.Parse(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewError(KindInvalidInput, "Invalid date: "+field, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
