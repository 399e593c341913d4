package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubOrders struct {
	orders []models.RegistrationOrder
	err    error
}

func (s stubOrders) FindAll(context.Context) ([]models.RegistrationOrder, error) {
	return s.orders, s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func at(minute int) *time.Time {
	t := time.Date(2024, 11, 2, 18, minute, 0, 0, time.UTC)
	return &t
}

func attendee(name string, status models.ApprovalStatus, price float64, checkIn *time.Time) models.Attendee {
	return models.Attendee{
		ID:          primitive.NewObjectID(),
		Username:    name,
		Status:      status,
		TotalPrice:  price,
		IsCheckedIn: checkIn != nil,
		CheckInTime: checkIn,
	}
}

func TestCheckInStatsPercentage(t *testing.T) {
	var orders []models.RegistrationOrder
	for i := 0; i < 10; i++ {
		var checkIn *time.Time
		if i < 4 {
			checkIn = at(40 - i)
		}
		orders = append(orders, models.RegistrationOrder{
			Index:     fmt.Sprintf("NIC-%d", i),
			Attendees: []models.Attendee{attendee(fmt.Sprintf("user%d", i), models.StatusApproved, 1000, checkIn)},
		})
	}
	orders = append(orders, models.RegistrationOrder{
		Index:     "NIC-pending",
		Attendees: []models.Attendee{attendee("late", models.StatusPending, 500, at(1))},
	})

	stats := BuildCheckInStats(orders)

	assert.Equal(t, 10, stats.TotalCount)
	assert.Equal(t, 4, stats.CheckedInCount)
	assert.Equal(t, 40.0, stats.CheckedInPercentage)
	require.Len(t, stats.CheckedInUsers, 4)
	assert.Equal(t, "user3", stats.CheckedInUsers[0].Username)
	assert.Equal(t, "NIC-3", stats.CheckedInUsers[0].NIC)
	for i := 1; i < len(stats.CheckedInUsers); i++ {
		assert.False(t, stats.CheckedInUsers[i].CheckInTime.Before(*stats.CheckedInUsers[i-1].CheckInTime))
	}
}

func TestCheckInStatsWithoutApproved(t *testing.T) {
	stats := BuildCheckInStats([]models.RegistrationOrder{{
		Attendees: []models.Attendee{attendee("a", models.StatusPending, 100, nil)},
	}})

	assert.Equal(t, 0, stats.TotalCount)
	assert.Equal(t, 0.0, stats.CheckedInPercentage)
	assert.NotNil(t, stats.CheckedInUsers)

	empty := BuildCheckInStats(nil)
	assert.Equal(t, 0.0, empty.CheckedInPercentage)
}

func TestCheckInStatsRoundsPercentage(t *testing.T) {
	orders := []models.RegistrationOrder{{Attendees: []models.Attendee{
		attendee("a", models.StatusApproved, 0, at(1)),
		attendee("b", models.StatusApproved, 0, nil),
		attendee("c", models.StatusApproved, 0, nil),
	}}}

	assert.Equal(t, 33.33, BuildCheckInStats(orders).CheckedInPercentage)
}

func TestApprovalStats(t *testing.T) {
	legacy := attendee("legacy", "", 700, nil)
	legacy.IsApproved = true
	orders := []models.RegistrationOrder{
		{Attendees: []models.Attendee{
			attendee("a", models.StatusApproved, 2500, nil),
			attendee("b", models.StatusRejected, 1000, nil),
		}},
		{Attendees: []models.Attendee{
			attendee("c", models.StatusPending, 300, nil),
			legacy,
		}},
	}

	stats := BuildApprovalStats(orders)

	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 2, stats.ApprovedUsers)
	assert.Equal(t, 1, stats.RejectedUsers)
	assert.Equal(t, 1, stats.PendingUsers)
	assert.Equal(t, 3200.0, stats.TotalApprovedPrice)
}

func TestListAttendeesDerivesSeats(t *testing.T) {
	orders := []models.RegistrationOrder{
		{
			ID:    primitive.NewObjectID(),
			Index: "950001234V",
			Seats: []string{"A1"},
			Attendees: []models.Attendee{
				attendee("a", models.StatusApproved, 0, nil),
				attendee("b", models.StatusPending, 0, nil),
			},
		},
		{Attendees: []models.Attendee{attendee("c", models.StatusPending, 0, nil)}},
	}
	svc := NewService(stubOrders{orders: orders}, quietLogger())

	list, err := svc.ListAttendees(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A1", list[0].SeatNumber)
	assert.Equal(t, "950001234V", list[0].Index)
	assert.Equal(t, orders[0].ID, list[0].OrderID)
	assert.Equal(t, models.SeatNotAssigned, list[1].SeatNumber)
	assert.Equal(t, models.SeatNotAssigned, list[2].Index)
}

func TestServiceWrapsScanErrors(t *testing.T) {
	svc := NewService(stubOrders{err: errors.New("mongo down")}, quietLogger())

	_, err := svc.ComputeCheckInStats(context.Background())
	assert.True(t, utils.IsKind(err, utils.KindInternal))

	_, err = svc.ComputeApprovalStats(context.Background())
	assert.Error(t, err)
}
