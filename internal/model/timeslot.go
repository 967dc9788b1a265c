package model

import (
	"fmt"
	"time"
)

// TimeSlot is a half-open interval [Start, End) of wall-clock time on a
// specific calendar day. Start and End are minutes from midnight, so a
// slot from 09:00 to 11:00 is {Start: 540, End: 660}. Two slots are equal
// when day, start and end all match; ordering is by (Day, Start).
type TimeSlot struct {
	Day   time.Time // midnight UTC of the calendar day
	Start int       // minutes from midnight, inclusive
	End   int       // minutes from midnight, exclusive
}

// MinutesPerDay bounds the valid range of slot boundaries.
const MinutesPerDay = 24 * 60

// Overlaps reports whether two slots share at least one instant on the
// same day. Half-open semantics: back-to-back slots do not overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	if !s.Day.Equal(o.Day) {
		return false
	}
	return s.Start < o.End && o.Start < s.End
}

// Before orders slots by (Day, Start).
func (s TimeSlot) Before(o TimeSlot) bool {
	if !s.Day.Equal(o.Day) {
		return s.Day.Before(o.Day)
	}
	return s.Start < o.Start
}

// Minutes returns the slot length in minutes.
func (s TimeSlot) Minutes() int { return s.End - s.Start }

// StartClock and EndClock render the boundaries as HH:MM strings, the
// format the booking API speaks.
func (s TimeSlot) StartClock() string { return FormatClock(s.Start) }
func (s TimeSlot) EndClock() string   { return FormatClock(s.End) }

// ParseClock converts an HH:MM string (24h) into minutes from midnight.
// "24:00" is accepted as the exclusive end of day; anything with trailing
// text or an out-of-range component is rejected.
func ParseClock(v string) (int, error) {
	if v == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDay converts a YYYY-MM-DD string into midnight UTC of that day.
func ParseDay(v string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", v)
	}
	return d.UTC(), nil
}

// FormatDay renders a day as YYYY-MM-DD.
func FormatDay(d time.Time) string { return d.UTC().Format("2006-01-02") }
