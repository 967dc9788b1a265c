// Package availability computes the bookable slots of a hall for one
// day. It is pure: callers supply the operating window and the list of
// confirmed reservations, and get back every slot of the requested
// length that fits. Nothing here reads or writes state, which is what
// lets the admission path re-run the same checks inside its own
// transaction.
package availability

import (
	"errors"
	"sort"

	"github.com/iliyamo/venue-hall-booking/internal/model"
)

// ErrInvalidDuration is returned when the requested duration is not a
// positive number of hours or falls below the hall's minimum booking
// duration. Requests below the minimum are rejected, never silently
// upgraded.
var ErrInvalidDuration = errors.New("invalid duration")

// slotStep is the slot start granularity in minutes: slots begin on
// the hour.
const slotStep = 60

// Compute subtracts the busy intervals from the operating window and
// emits every slot of length `hours` whose start lies on the hour and
// whose whole span fits inside one free gap. Slots never extend past a
// gap's end or the window's close. A day with no free gaps yields an
// empty slice, not an error.
func Compute(window model.TimeSlot, busy []model.TimeSlot, hours, minHours int) ([]model.TimeSlot, error) {
	if hours < 1 || hours < minHours {
		return nil, ErrInvalidDuration
	}
	need := hours * 60

	slots := make([]model.TimeSlot, 0)
	for _, gap := range FreeGaps(window, busy) {
		start := align(gap.Start)
		for start+need <= gap.End {
			slots = append(slots, model.TimeSlot{Day: window.Day, Start: start, End: start + need})
			start += slotStep
		}
	}
	return slots, nil
}

// FreeGaps returns the maximal free intervals of the window after
// removing the busy intervals: sort by start, clamp to the window,
// then walk left to right emitting the gaps between consecutive busy
// blocks and at the window boundaries.
func FreeGaps(window model.TimeSlot, busy []model.TimeSlot) []model.TimeSlot {
	if window.End <= window.Start {
		return nil
	}
	clamped := make([]model.TimeSlot, 0, len(busy))
	for _, b := range busy {
		if b.End <= window.Start || b.Start >= window.End {
			continue
		}
		if b.Start < window.Start {
			b.Start = window.Start
		}
		if b.End > window.End {
			b.End = window.End
		}
		clamped = append(clamped, b)
	}
	sort.Slice(clamped, func(i, j int) bool { return clamped[i].Start < clamped[j].Start })

	gaps := make([]model.TimeSlot, 0, len(clamped)+1)
	cursor := window.Start
	for _, b := range clamped {
		if b.Start > cursor {
			gaps = append(gaps, model.TimeSlot{Day: window.Day, Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < window.End {
		gaps = append(gaps, model.TimeSlot{Day: window.Day, Start: cursor, End: window.End})
	}
	return gaps
}

// Fits reports whether the candidate slot lies fully inside a free gap
// of the window, i.e. it is inside operating hours and overlaps no
// busy interval. The admission controller uses this for its commit
// time re-check.
func Fits(window model.TimeSlot, busy []model.TimeSlot, slot model.TimeSlot) bool {
	for _, gap := range FreeGaps(window, busy) {
		if slot.Start >= gap.Start && slot.End <= gap.End {
			return true
		}
	}
	return false
}

// align rounds a minute offset up to the next slot boundary.
func align(minute int) int {
	if rem := minute % slotStep; rem != 0 {
		return minute + slotStep - rem
	}
	return minute
}
