package checkins

import (
	"context"
	"time"

	"Backend-Celestia-Admin/src/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) FindByIndex(ctx context.Context, index string) (*models.RegistrationOrder, error) {
	args := m.Called(ctx, index)
	if o := args.Get(0); o != nil {
		return o.(*models.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) FindByAttendeeIdentity(ctx context.Context, username, contact, department string) (*models.RegistrationOrder, error) {
	args := m.Called(ctx, username, contact, department)
	if o := args.Get(0); o != nil {
		return o.(*models.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) SetCheckIn(ctx context.Context, orderID, attendeeID primitive.ObjectID, expectedVersion int64, checkedIn bool, at *time.Time) (*models.RegistrationOrder, error) {
	args := m.Called(ctx, orderID, attendeeID, expectedVersion, checkedIn, at)
	if o := args.Get(0); o != nil {
		return o.(*models.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryOrders applies SetCheckIn with the same version check as the Mongo store.
type memoryOrders struct {
	order *models.RegistrationOrder
}

func (m *memoryOrders) FindByIndex(_ context.Context, index string) (*models.RegistrationOrder, error) {
	cp := copyOrder(m.order)
	return cp, nil
}

func (m *memoryOrders) FindByAttendeeIdentity(_ context.Context, username, contact, department string) (*models.RegistrationOrder, error) {
	return copyOrder(m.order), nil
}

func (m *memoryOrders) SetCheckIn(_ context.Context, _, attendeeID primitive.ObjectID, expectedVersion int64, checkedIn bool, at *time.Time) (*models.RegistrationOrder, error) {
	pos := m.order.AttendeePosition(attendeeID)
	a := &m.order.Attendees[pos]
	if a.Version != expectedVersion {
		return nil, errVersion
	}
	a.IsCheckedIn = checkedIn
	a.CheckInTime = at
	a.Version++
	return copyOrder(m.order), nil
}

func copyOrder(o *models.RegistrationOrder) *models.RegistrationOrder {
	cp := *o
	cp.Attendees = append([]models.Attendee(nil), o.Attendees...)
	return &cp
}
