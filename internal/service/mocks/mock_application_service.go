package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"apptrack/internal/model"
	"apptrack/internal/repository"
	"apptrack/internal/service"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) List(ctx context.Context, ownerID string, f repository.ApplicationFilter, page, pageSize int) (*service.ApplicationListResult, error) {
	args := m.Called(ctx, ownerID, f, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationListResult), args.Error(1)
}

func (m *MockApplicationService) Create(ctx context.Context, ownerID string, in service.ApplicationCreate) (*model.Application, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Update(ctx context.Context, ownerID, id string, in service.ApplicationPatch) (*model.Application, error) {
	args := m.Called(ctx, ownerID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
