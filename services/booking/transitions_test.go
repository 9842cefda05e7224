package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"brightsite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:     "b1",
		Status: models.BookingStatusPending,
	}
}

func TestApplyTransitionConfirm(t *testing.T) {
	b := pendingBooking()
	now := time.Now()

	require.NoError(t, ApplyTransition(b, ActionConfirm, "", now))
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)
}

func TestApplyTransitionConfirmedAtSetOnce(t *testing.T) {
	b := pendingBooking()
	first := time.Now()
	require.NoError(t, ApplyTransition(b, ActionConfirm, "", first))

	// Re-confirming later must not move the timestamp.
	require.NoError(t, ApplyTransition(b, ActionConfirm, "", first.Add(time.Hour)))
	assert.Equal(t, first, *b.ConfirmedAt)
}

func TestApplyTransitionCancelWithReason(t *testing.T) {
	b := pendingBooking()
	now := time.Now()

	require.NoError(t, ApplyTransition(b, ActionCancel, "client no-show", now))
	assert.Equal(t, models.BookingStatusCanceled, b.Status)
	assert.Equal(t, "client no-show", b.CancelReason)
	require.NotNil(t, b.CanceledAt)
}

func TestApplyTransitionTable(t *testing.T) {
	tests := []struct {
		from    string
		action  string
		allowed bool
	}{
		{models.BookingStatusPending, ActionConfirm, true},
		{models.BookingStatusPending, ActionCancel, true},
		{models.BookingStatusPending, ActionEnd, false},
		{models.BookingStatusConfirmed, ActionEnd, true},
		{models.BookingStatusConfirmed, ActionCancel, true},
		{models.BookingStatusEnded, ActionConfirm, false},
		{models.BookingStatusEnded, ActionCancel, false},
		{models.BookingStatusCanceled, ActionConfirm, false},
		{models.BookingStatusCanceled, ActionEnd, false},
	}

	for _, tc := range tests {
		b := &models.Booking{ID: "b", Status: tc.from}
		err := ApplyTransition(b, tc.action, "", time.Now())
		if tc.allowed {
			assert.NoError(t, err, "%s from %s", tc.action, tc.from)
		} else {
			var terr *TransitionError
			assert.ErrorAs(t, err, &terr, "%s from %s", tc.action, tc.from)
		}
	}
}

func TestApplyTransitionUnknownAction(t *testing.T) {
	b := pendingBooking()
	err := ApplyTransition(b, "reopen", "", time.Now())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

type recordingScheduler struct {
	scheduled []string
}

func (r *recordingScheduler) ScheduleBookingReminder(_ context.Context, b *models.Booking) error {
	r.scheduled = append(r.scheduled, b.ID)
	return nil
}

func TestTransitionPersistsAndSchedulesReminder(t *testing.T) {
	engine, repo := newTestEngine()
	scheduler := &recordingScheduler{}
	engine.Reminders = scheduler
	date := futureMonday()

	created, err := engine.CreateBooking(context.Background(), validInput(date))
	require.NoError(t, err)

	confirmed, err := engine.Transition(context.Background(), created.ID, ActionConfirm, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	assert.Equal(t, []string{created.ID}, scheduler.scheduled)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)

	// Idempotent re-confirm: no second reminder, same timestamp.
	again, err := engine.Transition(context.Background(), created.ID, ActionConfirm, "")
	require.NoError(t, err)
	assert.Equal(t, confirmed.ConfirmedAt.Unix(), again.ConfirmedAt.Unix())
	assert.Len(t, scheduler.scheduled, 1)
}

func TestTransitionUnknownBooking(t *testing.T) {
	engine, _ := newTestEngine()
	_, err := engine.Transition(context.Background(), "missing", ActionConfirm, "")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

// staleReadRepo serves one stale snapshot from GetByID, then delegates, so a
// transition can be raced deterministically against a concurrent writer.
type staleReadRepo struct {
	*fakeBookingRepo
	mu    sync.Mutex
	stale *models.Booking
	used  bool
}

func (r *staleReadRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	if r.stale != nil && !r.used && r.stale.ID == id {
		r.used = true
		b := *r.stale
		r.mu.Unlock()
		return &b, nil
	}
	r.mu.Unlock()
	return r.fakeBookingRepo.GetByID(ctx, id)
}

func seedBooking(base *fakeBookingRepo, status string) *models.Booking {
	b := models.Booking{
		ID:         "b-race",
		ResourceID: "svc-1",
		Email:      "ada@example.com",
		Date:       futureMonday(),
		StartTime:  "09:00",
		EndTime:    "10:00",
		Status:     status,
	}
	base.mu.Lock()
	base.bookings = append(base.bookings, b)
	base.mu.Unlock()
	return &b
}

func TestTransitionLostRaceIsRejected(t *testing.T) {
	base := &fakeBookingRepo{}
	seeded := seedBooking(base, models.BookingStatusPending)

	// The store moves to canceled after our snapshot was taken.
	canceled := *seeded
	now := time.Now()
	require.NoError(t, ApplyTransition(&canceled, ActionCancel, "changed my mind", now))
	replaced, err := base.UpdateFromStatus(context.Background(), &canceled, models.BookingStatusPending)
	require.NoError(t, err)
	require.True(t, replaced)

	repo := &staleReadRepo{fakeBookingRepo: base, stale: seeded}
	scheduler := &recordingScheduler{}
	engine := NewDefaultBookingEngine(&fakeAvailabilityRepo{}, repo, scheduler)

	_, err = engine.Transition(context.Background(), seeded.ID, ActionConfirm, "")
	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.BookingStatusCanceled, terr.From)

	// The losing confirm burned nothing: status intact, no reminder enqueued.
	stored, err := base.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCanceled, stored.Status)
	assert.Equal(t, "changed my mind", stored.CancelReason)
	assert.Empty(t, scheduler.scheduled)
}

func TestTransitionConcurrentIdenticalIsNoOp(t *testing.T) {
	base := &fakeBookingRepo{}
	seeded := seedBooking(base, models.BookingStatusPending)

	// Another actor already confirmed while we held the pending snapshot.
	confirmed := *seeded
	require.NoError(t, ApplyTransition(&confirmed, ActionConfirm, "", time.Now()))
	replaced, err := base.UpdateFromStatus(context.Background(), &confirmed, models.BookingStatusPending)
	require.NoError(t, err)
	require.True(t, replaced)

	repo := &staleReadRepo{fakeBookingRepo: base, stale: seeded}
	scheduler := &recordingScheduler{}
	engine := NewDefaultBookingEngine(&fakeAvailabilityRepo{}, repo, scheduler)

	result, err := engine.Transition(context.Background(), seeded.ID, ActionConfirm, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, result.Status)

	// The first confirm owns the reminder; the echo schedules nothing.
	assert.Empty(t, scheduler.scheduled)
}
