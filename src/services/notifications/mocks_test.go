package notifications

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, msg Message) (*Result, error) {
	args := m.Called(ctx, msg)
	if r := args.Get(0); r != nil {
		return r.(*Result), args.Error(1)
	}
	return nil, args.Error(1)
}
