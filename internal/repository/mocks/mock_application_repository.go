package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"apptrack/internal/model"
	"apptrack/internal/repository"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Application, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, ownerID string, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	args := m.Called(ctx, ownerID, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Application]), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, ownerID, id string, upd repository.ApplicationUpdate) (*model.Application, error) {
	args := m.Called(ctx, ownerID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
