package controllers

import (
	"context"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/approvals"
	"Backend-Celestia-Admin/src/services/auth"
	"Backend-Celestia-Admin/src/services/checkins"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/services/visitors"

	"github.com/stretchr/testify/mock"
)

type MockApprovals struct{ mock.Mock }

func (m *MockApprovals) Approve(ctx context.Context, id string) (*approvals.ApprovalResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*approvals.ApprovalResult)
	return res, args.Error(1)
}

func (m *MockApprovals) Reject(ctx context.Context, id string) (*approvals.RejectionResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*approvals.RejectionResult)
	return res, args.Error(1)
}

func (m *MockApprovals) Delete(ctx context.Context, id string) (*approvals.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*approvals.DeleteResult)
	return res, args.Error(1)
}

func (m *MockApprovals) ResendTicket(ctx context.Context, id string) (*approvals.ApprovalResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*approvals.ApprovalResult)
	return res, args.Error(1)
}

type MockCheckIns struct{ mock.Mock }

func (m *MockCheckIns) Lookup(ctx context.Context, index string) (*checkins.LookupResult, error) {
	args := m.Called(ctx, index)
	res, _ := args.Get(0).(*checkins.LookupResult)
	return res, args.Error(1)
}

func (m *MockCheckIns) ToggleCheckIn(ctx context.Context, index, seat, key string) (*checkins.ToggleResult, error) {
	args := m.Called(ctx, index, seat, key)
	res, _ := args.Get(0).(*checkins.ToggleResult)
	return res, args.Error(1)
}

func (m *MockCheckIns) ScanCheckIn(ctx context.Context, id tickets.Identity) (*checkins.ScanResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*checkins.ScanResult)
	return res, args.Error(1)
}

func (m *MockCheckIns) ScanRaw(ctx context.Context, raw string) (*checkins.ScanResult, error) {
	args := m.Called(ctx, raw)
	res, _ := args.Get(0).(*checkins.ScanResult)
	return res, args.Error(1)
}

type MockReports struct{ mock.Mock }

func (m *MockReports) ComputeCheckInStats(ctx context.Context) (*models.CheckInStats, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*models.CheckInStats)
	return res, args.Error(1)
}

func (m *MockReports) ComputeApprovalStats(ctx context.Context) (*models.ApprovalStats, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*models.ApprovalStats)
	return res, args.Error(1)
}

func (m *MockReports) ListAttendees(ctx context.Context) ([]models.FlatAttendee, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.FlatAttendee)
	return res, args.Error(1)
}

type MockVisitors struct{ mock.Mock }

func (m *MockVisitors) Create(ctx context.Context, v *models.Visitor) (*visitors.CreateResult, error) {
	args := m.Called(ctx, v)
	res, _ := args.Get(0).(*visitors.CreateResult)
	return res, args.Error(1)
}

func (m *MockVisitors) List(ctx context.Context) ([]models.Visitor, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.Visitor)
	return res, args.Error(1)
}

func (m *MockVisitors) DeleteByIndex(ctx context.Context, index string) (*models.Visitor, error) {
	args := m.Called(ctx, index)
	res, _ := args.Get(0).(*models.Visitor)
	return res, args.Error(1)
}

func (m *MockVisitors) Approve(ctx context.Context, id string) (*visitors.ApprovalResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*visitors.ApprovalResult)
	return res, args.Error(1)
}

type MockAuth struct{ mock.Mock }

func (m *MockAuth) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, username, password)
	res, _ := args.Get(0).(*auth.LoginResult)
	return res, args.Error(1)
}

func (m *MockAuth) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
