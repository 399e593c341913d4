package visitors

import (
	"context"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockVisitorStore struct {
	mock.Mock
}

func (m *MockVisitorStore) Insert(ctx context.Context, v *models.Visitor) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVisitorStore) FindAll(ctx context.Context) ([]models.Visitor, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Visitor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVisitorStore) Approve(ctx context.Context, id primitive.ObjectID) (*models.Visitor, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Visitor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVisitorStore) DeleteByIndex(ctx context.Context, index string) (*models.Visitor, error) {
	args := m.Called(ctx, index)
	if v := args.Get(0); v != nil {
		return v.(*models.Visitor), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockArtifacts struct {
	mock.Mock
}

func (m *MockArtifacts) VisitorQRCode(v *models.Visitor) ([]byte, error) {
	args := m.Called(v)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArtifacts) VisitorPass(ctx context.Context, v *models.Visitor, event string) ([]byte, error) {
	args := m.Called(ctx, v, event)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
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
