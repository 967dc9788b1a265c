package booking_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/venue-hall-booking/internal/booking"
	"github.com/iliyamo/venue-hall-booking/internal/model"
	"github.com/iliyamo/venue-hall-booking/internal/repository"
)

// fakeHalls serves halls from memory.
type fakeHalls struct {
	halls map[uint64]model.Hall
}

func (f *fakeHalls) HallByID(_ context.Context, id uint64) (model.Hall, error) {
	h, ok := f.halls[id]
	if !ok {
		return model.Hall{}, repository.ErrHallNotFound
	}
	return h, nil
}

// fakeStore is an in-memory reservation store. Reserve performs the same
// overlap check the SQL store does, guarded by a plain mutex.
type fakeStore struct {
	mu   sync.Mutex
	rows map[string]*model.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*model.Reservation)}
}

func (f *fakeStore) ListForDate(_ context.Context, hallID uint64, day time.Time) ([]model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TimeSlot
	for _, r := range f.rows {
		if r.HallID == hallID && r.Day.Equal(day) && r.Status == model.StatusConfirmed {
			out = append(out, r.Slot())
		}
	}
	return out, nil
}

func (f *fakeStore) Reserve(_ context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.HallID == res.HallID && r.Status == model.StatusConfirmed && r.Slot().Overlaps(res.Slot()) {
			return repository.ErrSlotTaken
		}
	}
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	f.rows[res.ID] = &cp
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return *r, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Reservation
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	if r.Status != model.StatusConfirmed {
		return repository.ErrConflict
	}
	r.Status = model.StatusCancelled
	return nil
}

func testHall() model.Hall {
	return model.Hall{
		ID:              1,
		VenueID:         1,
		Name:            "Grand Hall",
		Capacity:        100,
		PricePerHour:    50,
		MinBookingHours: 2,
		OpenMinute:      540,  // 09:00
		CloseMinute:     1260, // 21:00
		IsActive:        true,
	}
}

var bookingDate = time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")

func futureDate() string { return bookingDate }

func validRequest() model.BookingRequest {
	return model.BookingRequest{
		VenueID:       1,
		HallID:        1,
		Date:          futureDate(),
		StartTime:     "10:00",
		EndTime:       "12:00",
		CustomerName:  "Dana Reeve",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+1 555 0101",
		EventType:     "conference",
		Attendees:     40,
	}
}

func newTestController(store booking.Store) *booking.Controller {
	halls := &fakeHalls{halls: map[uint64]model.Hall{1: testHall()}}
	return booking.NewController(halls, store, 0)
}

func TestAdmitCommitsReservation(t *testing.T) {
	store := newFakeStore()
	ctl := newTestController(store)

	res, err := ctl.Admit(context.Background(), 7, validRequest())
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if res.ID == "" {
		t.Error("reservation has no id")
	}
	if !strings.HasPrefix(res.BookingCode, "BK-") {
		t.Errorf("booking code %q missing BK- prefix", res.BookingCode)
	}
	if res.Status != model.StatusConfirmed {
		t.Errorf("status = %q; want CONFIRMED", res.Status)
	}
	if res.TotalAmount != 100 {
		t.Errorf("total = %v; want 100 (2h at 50/h)", res.TotalAmount)
	}
	if res.StartMinute != 600 || res.EndMinute != 720 {
		t.Errorf("slot = %d-%d; want 600-720", res.StartMinute, res.EndMinute)
	}

	got, err := ctl.Get(context.Background(), 7, res.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != res.ID {
		t.Errorf("get returned %q; want %q", got.ID, res.ID)
	}
}

func TestAdmitRejectsOverlap(t *testing.T) {
	store := newFakeStore()
	ctl := newTestController(store)
	ctx := context.Background()

	if _, err := ctl.Admit(ctx, 7, validRequest()); err != nil {
		t.Fatalf("first admit: %v", err)
	}

	req := validRequest()
	req.StartTime = "11:00"
	req.EndTime = "13:00"
	if _, err := ctl.Admit(ctx, 8, req); !errors.Is(err, repository.ErrSlotTaken) {
		t.Fatalf("overlapping admit: got %v; want ErrSlotTaken", err)
	}
}

func TestAdmitAllowsBackToBack(t *testing.T) {
	store := newFakeStore()
	ctl := newTestController(store)
	ctx := context.Background()

	if _, err := ctl.Admit(ctx, 7, validRequest()); err != nil {
		t.Fatalf("first admit: %v", err)
	}

	req := validRequest()
	req.StartTime = "12:00"
	req.EndTime = "14:00"
	if _, err := ctl.Admit(ctx, 8, req); err != nil {
		t.Fatalf("back-to-back admit: %v", err)
	}
}

func TestAdmitDomainRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.BookingRequest)
		wantErr error
	}{
		{"below minimum duration", func(r *model.BookingRequest) { r.EndTime = "11:00" }, repository.ErrBelowMinimumDuration},
		{"before opening", func(r *model.BookingRequest) { r.StartTime = "07:00"; r.EndTime = "09:00" }, repository.ErrOutsideOperatingHours},
		{"past closing", func(r *model.BookingRequest) { r.StartTime = "20:00"; r.EndTime = "22:00" }, repository.ErrOutsideOperatingHours},
		{"capacity exceeded", func(r *model.BookingRequest) { r.Attendees = 101 }, repository.ErrCapacityExceeded},
		{"unknown hall", func(r *model.BookingRequest) { r.HallID = 99 }, repository.ErrHallNotFound},
		{"venue mismatch", func(r *model.BookingRequest) { r.VenueID = 99 }, repository.ErrHallNotFound},
		{"garbage date", func(r *model.BookingRequest) { r.Date = "next tuesday" }, booking.ErrInvalidDate},
		{"past date", func(r *model.BookingRequest) { r.Date = "2020-01-01" }, booking.ErrInvalidDate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newTestController(newFakeStore())
			req := validRequest()
			c.mutate(&req)
			if _, err := ctl.Admit(context.Background(), 7, req); !errors.Is(err, c.wantErr) {
				t.Fatalf("got %v; want %v", err, c.wantErr)
			}
		})
	}
}

func TestAdmitValidation(t *testing.T) {
	ctl := newTestController(newFakeStore())
	ctx := context.Background()

	req := validRequest()
	req.CustomerEmail = ""
	_, err := ctl.Admit(ctx, 7, req)
	var verr *booking.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v; want ValidationError", err)
	}
	if verr.Field != "customer_email" {
		t.Errorf("field = %q; want customer_email", verr.Field)
	}

	req = validRequest()
	req.StartTime = "25:00"
	if _, err := ctl.Admit(ctx, 7, req); !errors.As(err, &verr) || verr.Field != "start_time" {
		t.Fatalf("bad start time: got %v; want ValidationError on start_time", err)
	}

	req = validRequest()
	req.EndTime = req.StartTime
	if _, err := ctl.Admit(ctx, 7, req); !errors.As(err, &verr) || verr.Field != "end_time" {
		t.Fatalf("zero-length slot: got %v; want ValidationError on end_time", err)
	}
}

func TestConcurrentAdmitSingleWinner(t *testing.T) {
	store := newFakeStore()
	ctl := newTestController(store)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	success := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID uint64) {
			defer wg.Done()
			_, err := ctl.Admit(context.Background(), userID, validRequest())
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			if !errors.Is(err, repository.ErrSlotTaken) && !errors.Is(err, booking.ErrBusy) {
				t.Errorf("unexpected error: %v", err)
			}
		}(uint64(i + 1))
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly 1 admitted booking, got %d", success)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	store := newFakeStore()
	ctl := newTestController(store)
	ctx := context.Background()

	res, err := ctl.Admit(ctx, 7, validRequest())
	if err != nil {
		t.Fatalf("admit: %v", err)
	}

	// Someone else cannot cancel it.
	if _, err := ctl.Cancel(ctx, 8, res.ID); !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("foreign cancel: got %v; want ErrForbidden", err)
	}

	cancelled, err := ctl.Cancel(ctx, 7, res.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("status = %q; want CANCELLED", cancelled.Status)
	}

	// Double cancel conflicts.
	if _, err := ctl.Cancel(ctx, 7, res.ID); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("double cancel: got %v; want ErrConflict", err)
	}

	// The freed slot is bookable again.
	if _, err := ctl.Admit(ctx, 8, validRequest()); err != nil {
		t.Fatalf("re-admit after cancel: %v", err)
	}
}

// blockingStore lets the first ListForDate caller park inside the admission
// lock so a second booking can be observed timing out.
type blockingStore struct {
	*fakeStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingStore) ListForDate(ctx context.Context, hallID uint64, day time.Time) ([]model.TimeSlot, error) {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.fakeStore.ListForDate(ctx, hallID, day)
}

func TestAdmitBusyTimeout(t *testing.T) {
	store := &blockingStore{
		fakeStore: newFakeStore(),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	halls := &fakeHalls{halls: map[uint64]model.Hall{1: testHall()}}
	ctl := booking.NewController(halls, store, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := ctl.Admit(context.Background(), 1, validRequest()); err != nil {
			t.Errorf("holder admit: %v", err)
		}
	}()

	<-store.entered
	if _, err := ctl.Admit(context.Background(), 2, validRequest()); !errors.Is(err, booking.ErrBusy) {
		t.Fatalf("waiter admit: got %v; want ErrBusy", err)
	}
	close(store.release)
	<-done
}

func TestCheckAvailability(t *testing.T) {
	store := newFakeStore()
	ctl := newTestController(store)
	ctx := context.Background()

	if _, err := ctl.Admit(ctx, 7, validRequest()); err != nil { // 10:00-12:00
		t.Fatalf("admit: %v", err)
	}

	slots, err := ctl.CheckAvailability(ctx, 1, 1, futureDate(), 2)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}
	for _, s := range slots {
		if s.Start < 720 && s.End > 600 {
			t.Errorf("slot %s-%s overlaps the committed booking", s.StartClock(), s.EndClock())
		}
	}
	if len(slots) == 0 {
		t.Fatal("expected free slots around the booking")
	}

	if _, err := ctl.CheckAvailability(ctx, 1, 1, "2020-01-01", 2); !errors.Is(err, booking.ErrInvalidDate) {
		t.Errorf("past date: got %v; want ErrInvalidDate", err)
	}
	if _, err := ctl.CheckAvailability(ctx, 2, 1, futureDate(), 2); !errors.Is(err, repository.ErrHallNotFound) {
		t.Errorf("venue mismatch: got %v; want ErrHallNotFound", err)
	}
}

// Every slot the availability check offers must be admittable against the
// same store state it was computed from. Offered slots overlap each other,
// so each one is tried against its own identically seeded store.
func TestComputedSlotIsBookable(t *testing.T) {
	ctx := context.Background()

	seeded := func() (*booking.Controller, error) {
		ctl := newTestController(newFakeStore())
		_, err := ctl.Admit(ctx, 7, validRequest()) // 10:00-12:00
		return ctl, err
	}

	ctl, err := seeded()
	if err != nil {
		t.Fatalf("seed admit: %v", err)
	}
	slots, err := ctl.CheckAvailability(ctx, 1, 1, futureDate(), 2)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected free slots around the booking")
	}

	for _, s := range slots {
		fresh, err := seeded()
		if err != nil {
			t.Fatalf("seed admit: %v", err)
		}
		req := validRequest()
		req.StartTime = s.StartClock()
		req.EndTime = s.EndClock()
		if _, err := fresh.Admit(ctx, 8, req); err != nil {
			t.Errorf("slot %s-%s was offered but rejected: %v", s.StartClock(), s.EndClock(), err)
		}
	}
}
