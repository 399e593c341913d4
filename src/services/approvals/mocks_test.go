package approvals

import (
	"context"
	"time"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/services/tickets"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) FindByAttendeeID(ctx context.Context, id primitive.ObjectID) (*models.RegistrationOrder, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) SetAttendeeStatus(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, at time.Time, seat string) (*models.RegistrationOrder, error) {
	args := m.Called(ctx, id, status, at, seat)
	if o := args.Get(0); o != nil {
		return o.(*models.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) RemoveAttendee(ctx context.Context, id primitive.ObjectID, seat string) (*models.RegistrationOrder, error) {
	args := m.Called(ctx, id, seat)
	if o := args.Get(0); o != nil {
		return o.(*models.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSeatStore struct {
	mock.Mock
}

func (m *MockSeatStore) Release(ctx context.Context, seat string) error {
	return m.Called(ctx, seat).Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, p models.TicketPayload) (*tickets.Artifacts, error) {
	args := m.Called(ctx, p)
	if a := args.Get(0); a != nil {
		return a.(*tickets.Artifacts), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Deliver(ctx context.Context, msg notifications.Message) (notifications.Outcome, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(notifications.Outcome), args.Error(1)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) EnqueueTicketResend(ctx context.Context, attendeeID string) error {
	return m.Called(ctx, attendeeID).Error(0)
}

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Announce(message string) error {
	return m.Called(message).Error(0)
}
