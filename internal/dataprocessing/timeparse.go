package dataprocessing

import (
	"strings"
	"time"
)

// visitTimeLayout matches the canonical 12-hour form after cleanup,
// e.g. "10:05:00 pm". The one-digit hour token also accepts two digits.
const visitTimeLayout = "3:04:05 pm"

var meridiemReplacer = strings.NewReplacer(
	"\u202f", " ", // narrow no-break space, common in Excel time cells
	"\u00a0", " ",
	".", "",
)

// ParseVisitTime parses a Spanish-locale 12-hour time string such as
// "10:05:00 p. m." into a time-of-day value. The boolean is false for
// missing or malformed input; that outcome is expected, not exceptional.
func ParseVisitTime(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}

	s := strings.ToLower(meridiemReplacer.Replace(strings.TrimSpace(*raw)))
	// Collapse runs of whitespace so "p. m." and "p  m" both become "p m".
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " a m", " am")
	s = strings.ReplaceAll(s, " p m", " pm")

	t, err := time.Parse(visitTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// VisitDuration derives the visit duration in minutes from raw check-in and
// check-out time strings. A checkout earlier than the check-in is taken to
// mean the visit crossed midnight and gains a day. The result is nil when
// either side is missing or unparseable, and never negative otherwise.
func VisitDuration(checkIn, checkOut *string) *float64 {
	in, ok := ParseVisitTime(checkIn)
	if !ok {
		return nil
	}
	out, ok := ParseVisitTime(checkOut)
	if !ok {
		return nil
	}

	elapsed := out.Sub(in)
	if elapsed < 0 {
		elapsed += 24 * time.Hour
	}
	minutes := elapsed.Minutes()
	return &minutes
}
