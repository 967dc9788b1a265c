package model_test

import (
	"testing"
	"time"

	"github.com/iliyamo/venue-hall-booking/internal/model"
)

func day(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := model.ParseDay(v)
	if err != nil {
		t.Fatalf("parse day %q: %v", v, err)
	}
	return d
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:00", 540, true},
		{"13:30", 810, true},
		{"24:00", 1440, true},
		{"9:05", 545, true},
		{"24:01", 0, false},
		{"25:00", 0, false},
		{"12:60", 0, false},
		{"12:34xyz", 0, false},
		{"9:5", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := model.ParseClock(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseClock(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseClock(%q) = %d; want error", c.in, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := model.FormatClock(540); got != "09:00" {
		t.Errorf("FormatClock(540) = %q; want 09:00", got)
	}
	if got := model.FormatClock(810); got != "13:30" {
		t.Errorf("FormatClock(810) = %q; want 13:30", got)
	}
}

func TestOverlaps(t *testing.T) {
	d1 := day(t, "2026-10-01")
	d2 := day(t, "2026-10-02")

	a := model.TimeSlot{Day: d1, Start: 540, End: 660} // 09:00-11:00

	cases := []struct {
		name string
		b    model.TimeSlot
		want bool
	}{
		{"identical", model.TimeSlot{Day: d1, Start: 540, End: 660}, true},
		{"partial overlap", model.TimeSlot{Day: d1, Start: 600, End: 720}, true},
		{"contained", model.TimeSlot{Day: d1, Start: 570, End: 630}, true},
		{"containing", model.TimeSlot{Day: d1, Start: 480, End: 720}, true},
		{"back to back after", model.TimeSlot{Day: d1, Start: 660, End: 780}, false},
		{"back to back before", model.TimeSlot{Day: d1, Start: 480, End: 540}, false},
		{"disjoint", model.TimeSlot{Day: d1, Start: 720, End: 780}, false},
		{"same time other day", model.TimeSlot{Day: d2, Start: 540, End: 660}, false},
	}
	for _, c := range cases {
		if got := a.Overlaps(c.b); got != c.want {
			t.Errorf("%s: Overlaps = %v; want %v", c.name, got, c.want)
		}
		// overlap is symmetric
		if got := c.b.Overlaps(a); got != c.want {
			t.Errorf("%s: reverse Overlaps = %v; want %v", c.name, got, c.want)
		}
	}
}

func TestBefore(t *testing.T) {
	d1 := day(t, "2026-10-01")
	d2 := day(t, "2026-10-02")

	early := model.TimeSlot{Day: d1, Start: 540, End: 660}
	late := model.TimeSlot{Day: d1, Start: 720, End: 780}
	nextDay := model.TimeSlot{Day: d2, Start: 0, End: 60}

	if !early.Before(late) || late.Before(early) {
		t.Errorf("same-day ordering wrong")
	}
	if !late.Before(nextDay) || nextDay.Before(late) {
		t.Errorf("cross-day ordering wrong")
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, v := range []string{"", "2026-13-01", "01-10-2026", "tomorrow"} {
		if _, err := model.ParseDay(v); err == nil {
			t.Errorf("ParseDay(%q) succeeded; want error", v)
		}
	}
	d := day(t, "2026-10-01")
	if got := model.FormatDay(d); got != "2026-10-01" {
		t.Errorf("FormatDay = %q; want 2026-10-01", got)
	}
}

func TestHallWindow(t *testing.T) {
	d := day(t, "2026-10-01")
	h := model.Hall{OpenMinute: 540, CloseMinute: 1260}
	w := h.Window(d)
	if w.Start != 540 || w.End != 1260 || !w.Day.Equal(d) {
		t.Errorf("Window = %+v", w)
	}
	if w.Minutes() != 720 {
		t.Errorf("Minutes = %d; want 720", w.Minutes())
	}
}
