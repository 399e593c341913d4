package seats

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"Backend-Celestia-Admin/src/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(seats []string, attendees ...models.Attendee) models.RegistrationOrder {
	return models.RegistrationOrder{Seats: seats, Attendees: attendees}
}

func TestOrphanedSeats(t *testing.T) {
	orders := []models.RegistrationOrder{
		order([]string{"A1", "A2"},
			models.Attendee{Status: models.StatusApproved},
			models.Attendee{Status: models.StatusRejected},
		),
		order(nil, models.Attendee{Status: models.StatusPending, SeatNumber: "B4"}),
	}
	booked := []string{"C9", "A2", "A1", "B4", "B1"}

	assert.Equal(t, []string{"A2", "B1", "C9"}, OrphanedSeats(orders, booked))
}

func TestOrphanedSeatsLegacyRejectFlag(t *testing.T) {
	orders := []models.RegistrationOrder{
		order([]string{"A1"}, models.Attendee{IsRejected: true}),
	}
	assert.Equal(t, []string{"A1"}, OrphanedSeats(orders, []string{"A1"}))
}

func TestOrphanedSeatsNothingBooked(t *testing.T) {
	assert.Empty(t, OrphanedSeats(nil, nil))
}

type fakeOrders struct{ orders []models.RegistrationOrder }

func (f fakeOrders) FindAll(context.Context) ([]models.RegistrationOrder, error) {
	return f.orders, nil
}

type fakeSeat struct {
	number    string
	updatedAt time.Time
}

type fakeSeats struct {
	booked   []fakeSeat
	failing  map[string]bool
	released []string
}

func (f *fakeSeats) ListBookedBefore(_ context.Context, cutoff time.Time) ([]string, error) {
	out := []string{}
	for _, s := range f.booked {
		if s.updatedAt.Before(cutoff) {
			out = append(out, s.number)
		}
	}
	return out, nil
}

func (f *fakeSeats) Release(_ context.Context, seat string) error {
	if f.failing[seat] {
		return errors.New("write failed")
	}
	f.released = append(f.released, seat)
	return nil
}

func TestReconcilerRun(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	old := time.Now().Add(-2 * time.Hour)
	seats := &fakeSeats{
		booked:  []fakeSeat{{"A1", old}, {"A2", old}, {"A3", old}},
		failing: map[string]bool{"A3": true},
	}
	r := NewReconciler(fakeOrders{orders: []models.RegistrationOrder{
		order([]string{"A1"}, models.Attendee{Status: models.StatusApproved}),
	}}, seats, time.Hour, log)

	report, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Booked)
	assert.Equal(t, []string{"A2"}, report.Released)
	assert.Equal(t, []string{"A3"}, report.Failed)
	assert.Equal(t, []string{"A2"}, seats.released)
}

func TestReconcilerLeavesRecentBookingsAlone(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	now := time.Date(2024, 11, 2, 18, 0, 0, 0, time.UTC)
	// neither seat has an order yet; only the stale one is released
	seats := &fakeSeats{booked: []fakeSeat{
		{"GUEST-1", now.Add(-5 * time.Minute)},
		{"GHOST-1", now.Add(-3 * time.Hour)},
	}}
	r := NewReconciler(fakeOrders{}, seats, time.Hour, log)
	r.now = func() time.Time { return now }

	report, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Booked)
	assert.Equal(t, []string{"GHOST-1"}, report.Released)
	assert.Equal(t, []string{"GHOST-1"}, seats.released)
}

func TestNewReconcilerDefaultsGrace(t *testing.T) {
	r := NewReconciler(fakeOrders{}, &fakeSeats{}, 0, logrus.New())
	assert.Equal(t, DefaultReleaseGrace, r.grace)
}
