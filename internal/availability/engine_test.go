package availability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/venue-hall-booking/internal/availability"
	"github.com/iliyamo/venue-hall-booking/internal/model"
)

var testDay = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

func slot(start, end int) model.TimeSlot {
	return model.TimeSlot{Day: testDay, Start: start, End: end}
}

func window(open, close string) model.TimeSlot {
	o, _ := model.ParseClock(open)
	c, _ := model.ParseClock(close)
	return slot(o, c)
}

func starts(slots []model.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartClock())
	}
	return out
}

func TestComputeAroundSingleBooking(t *testing.T) {
	// 09:00-21:00 window, one booking 13:00-15:00, asking for 2 hours.
	busy := []model.TimeSlot{window("13:00", "15:00")}
	slots, err := availability.Compute(window("09:00", "21:00"), busy, 2, 1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := []string{"09:00", "10:00", "11:00", "15:00", "16:00", "17:00", "18:00", "19:00"}
	got := starts(slots)
	if len(got) != len(want) {
		t.Fatalf("got starts %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got starts %v; want %v", got, want)
		}
	}
	for _, s := range slots {
		for _, b := range busy {
			if s.Overlaps(b) {
				t.Errorf("slot %s-%s overlaps busy %s-%s", s.StartClock(), s.EndClock(), b.StartClock(), b.EndClock())
			}
		}
		if s.Minutes() != 120 {
			t.Errorf("slot %s-%s is not 2 hours", s.StartClock(), s.EndClock())
		}
	}
}

func TestComputeEmptyDay(t *testing.T) {
	slots, err := availability.Compute(window("09:00", "12:00"), nil, 1, 1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	got := starts(slots)
	want := []string{"09:00", "10:00", "11:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
}

func TestComputeFullyBooked(t *testing.T) {
	busy := []model.TimeSlot{window("09:00", "21:00")}
	slots, err := availability.Compute(window("09:00", "21:00"), busy, 1, 1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", starts(slots))
	}
}

func TestComputeGapTooShort(t *testing.T) {
	// Free gaps are 09:00-10:00 and 11:00-12:00; neither holds 2 hours.
	busy := []model.TimeSlot{window("10:00", "11:00")}
	slots, err := availability.Compute(window("09:00", "12:00"), busy, 2, 1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", starts(slots))
	}
}

func TestComputeRejectsBadDuration(t *testing.T) {
	if _, err := availability.Compute(window("09:00", "21:00"), nil, 0, 1); !errors.Is(err, availability.ErrInvalidDuration) {
		t.Errorf("hours=0: got %v; want ErrInvalidDuration", err)
	}
	if _, err := availability.Compute(window("09:00", "21:00"), nil, 1, 2); !errors.Is(err, availability.ErrInvalidDuration) {
		t.Errorf("below minimum: got %v; want ErrInvalidDuration", err)
	}
}

func TestFreeGapsUnsortedAndOverlapping(t *testing.T) {
	// Busy intervals arrive unsorted and overlapping each other; one
	// extends past the window.
	busy := []model.TimeSlot{
		window("16:00", "22:00"),
		window("10:00", "12:00"),
		window("11:00", "13:00"),
	}
	gaps := availability.FreeGaps(window("09:00", "21:00"), busy)
	want := []model.TimeSlot{window("09:00", "10:00"), window("13:00", "16:00")}
	if len(gaps) != len(want) {
		t.Fatalf("gaps = %v; want %v", gaps, want)
	}
	for i := range want {
		if gaps[i].Start != want[i].Start || gaps[i].End != want[i].End {
			t.Fatalf("gaps = %v; want %v", gaps, want)
		}
	}
}

func TestFreeGapsBusyOutsideWindow(t *testing.T) {
	busy := []model.TimeSlot{window("06:00", "08:00"), window("22:00", "23:00")}
	gaps := availability.FreeGaps(window("09:00", "21:00"), busy)
	if len(gaps) != 1 || gaps[0].Start != 540 || gaps[0].End != 1260 {
		t.Fatalf("gaps = %v; want the whole window", gaps)
	}
}

func TestFits(t *testing.T) {
	win := window("09:00", "21:00")
	busy := []model.TimeSlot{window("13:00", "15:00")}

	cases := []struct {
		name string
		s    model.TimeSlot
		want bool
	}{
		{"inside free gap", window("09:00", "11:00"), true},
		{"ends at busy start", window("11:00", "13:00"), true},
		{"starts at busy end", window("15:00", "17:00"), true},
		{"overlaps busy", window("14:00", "16:00"), false},
		{"inside busy", window("13:30", "14:30"), false},
		{"before open", window("08:00", "10:00"), false},
		{"past close", window("20:00", "22:00"), false},
	}
	for _, c := range cases {
		if got := availability.Fits(win, busy, c.s); got != c.want {
			t.Errorf("%s: Fits = %v; want %v", c.name, got, c.want)
		}
	}
}
