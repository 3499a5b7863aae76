package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"apptrack/internal/model"
	"apptrack/internal/repository"
	repoMocks "apptrack/internal/repository/mocks"
)

func strPtr(s string) *string { return &s }

func TestApplicationService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  int
		wantOffset int
		wantPage   int
	}{
		{name: "defaults pass through", page: 1, pageSize: 25, wantLimit: 25, wantOffset: 0, wantPage: 1},
		{name: "page below one clamps to one", page: -3, pageSize: 10, wantLimit: 10, wantOffset: 0, wantPage: 1},
		{name: "pageSize below one clamps to one", page: 2, pageSize: 0, wantLimit: 1, wantOffset: 1, wantPage: 2},
		{name: "pageSize above hundred clamps to hundred", page: 1, pageSize: 500, wantLimit: 100, wantOffset: 0, wantPage: 1},
		{name: "offset follows clamped size", page: 3, pageSize: 200, wantLimit: 100, wantOffset: 200, wantPage: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockApplicationRepository)
			svc := NewApplicationService(mRepo)

			mRepo.On("List", ctx, "user-1", repository.ApplicationFilter{},
				repository.PageQuery{Limit: tt.wantLimit, Offset: tt.wantOffset}).
				Return(&repository.PageResult[model.Application]{
					Items: []model.Application{},
					Total: 0,
				}, nil)

			res, err := svc.List(ctx, "user-1", repository.ApplicationFilter{}, tt.page, tt.pageSize)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, res.Page)
			assert.Equal(t, tt.wantLimit, res.PageSize)
			mRepo.AssertExpectations(t)
		})
	}

	t.Run("huge page keeps the offset non-negative", func(t *testing.T) {
		mRepo := new(repoMocks.MockApplicationRepository)
		svc := NewApplicationService(mRepo)

		mRepo.On("List", ctx, "user-1", repository.ApplicationFilter{},
			mock.MatchedBy(func(pq repository.PageQuery) bool {
				return pq.Limit == 100 && pq.Offset >= 0
			})).
			Return(&repository.PageResult[model.Application]{
				Items: []model.Application{},
				Total: 0,
			}, nil)

		res, err := svc.List(ctx, "user-1", repository.ApplicationFilter{}, math.MaxInt, 100)

		require.NoError(t, err)
		assert.Empty(t, res.Items)
		mRepo.AssertExpectations(t)
	})

	t.Run("filter and results pass through", func(t *testing.T) {
		mRepo := new(repoMocks.MockApplicationRepository)
		svc := NewApplicationService(mRepo)

		status := model.StatusApplied
		f := repository.ApplicationFilter{Q: "amazon", Status: &status}

		mRepo.On("List", ctx, "user-1", f, repository.PageQuery{Limit: 25, Offset: 0}).
			Return(&repository.PageResult[model.Application]{
				Items: []model.Application{{ID: "app-1", Company: "Amazon"}},
				Total: 7,
			}, nil)

		res, err := svc.List(ctx, "user-1", f, 1, 25)

		require.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, 7, res.Total)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockApplicationRepository)
		svc := NewApplicationService(mRepo)

		mRepo.On("List", ctx, "user-1", mock.Anything, mock.Anything).
			Return(nil, errors.New("db fail"))

		res, err := svc.List(ctx, "user-1", repository.ApplicationFilter{}, 1, 25)

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestApplicationService_Create(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	origNow := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = origNow }()

	applied := model.StatusApplied

	tests := []struct {
		name       string
		in         ApplicationCreate
		setupMocks func(mRepo *repoMocks.MockApplicationRepository)
		wantErr    error
	}{
		{
			name: "status defaults to Draft, both timestamps now",
			in:   ApplicationCreate{Company: "Acme", RoleTitle: "Engineer"},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Application) bool {
					return a.Status == model.StatusDraft &&
						a.UserID == "user-1" &&
						a.CreatedAt.Equal(now) &&
						a.UpdatedAt.Equal(now)
				})).Return(&model.Application{ID: "app-1", Status: model.StatusDraft}, nil)
			},
		},
		{
			name: "explicit status and trimmed fields",
			in:   ApplicationCreate{Company: "  Acme  ", RoleTitle: " Engineer ", Status: &applied, Notes: "n"},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Application) bool {
					return a.Company == "Acme" && a.RoleTitle == "Engineer" && a.Status == model.StatusApplied
				})).Return(&model.Application{ID: "app-1", Status: model.StatusApplied}, nil)
			},
		},
		{
			name:       "validation - blank company",
			in:         ApplicationCreate{Company: "   ", RoleTitle: "Engineer"},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "validation - blank role title",
			in:         ApplicationCreate{Company: "Acme", RoleTitle: ""},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name: "repository error",
			in:   ApplicationCreate{Company: "Acme", RoleTitle: "Engineer"},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockApplicationRepository)
			svc := NewApplicationService(mRepo)

			tt.setupMocks(mRepo)

			app, err := svc.Create(ctx, "user-1", tt.in)

			if tt.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.wantErr, ErrValidation) {
					assert.ErrorIs(t, err, ErrValidation)
				}
				assert.Nil(t, app)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, app)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestApplicationService_Update(t *testing.T) {
	ctx := context.Background()

	applied := model.StatusApplied

	tests := []struct {
		name       string
		in         ApplicationPatch
		setupMocks func(mRepo *repoMocks.MockApplicationRepository)
		wantErr    error
	}{
		{
			name: "only supplied fields forwarded",
			in:   ApplicationPatch{Status: &applied},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Update", ctx, "user-1", "app-1", repository.ApplicationUpdate{Status: &applied}).
					Return(&model.Application{ID: "app-1", Status: model.StatusApplied}, nil)
			},
		},
		{
			name: "empty patch still forwarded for the timestamp bump",
			in:   ApplicationPatch{},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Update", ctx, "user-1", "app-1", repository.ApplicationUpdate{}).
					Return(&model.Application{ID: "app-1"}, nil)
			},
		},
		{
			name: "supplied company is trimmed",
			in:   ApplicationPatch{Company: strPtr("  Globex  ")},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Update", ctx, "user-1", "app-1", mock.MatchedBy(func(u repository.ApplicationUpdate) bool {
					return u.Company != nil && *u.Company == "Globex"
				})).Return(&model.Application{ID: "app-1", Company: "Globex"}, nil)
			},
		},
		{
			name:       "validation - blanking a required field",
			in:         ApplicationPatch{Company: strPtr("   ")},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name: "not found or not owned",
			in:   ApplicationPatch{},
			setupMocks: func(mRepo *repoMocks.MockApplicationRepository) {
				mRepo.On("Update", ctx, "user-1", "app-1", mock.Anything).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockApplicationRepository)
			svc := NewApplicationService(mRepo)

			tt.setupMocks(mRepo)

			app, err := svc.Update(ctx, "user-1", "app-1", tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, app)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, app)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestApplicationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mRepo := new(repoMocks.MockApplicationRepository)
		svc := NewApplicationService(mRepo)

		mRepo.On("Delete", ctx, "user-1", "app-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "user-1", "app-1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("not found or not owned", func(t *testing.T) {
		mRepo := new(repoMocks.MockApplicationRepository)
		svc := NewApplicationService(mRepo)

		mRepo.On("Delete", ctx, "user-1", "app-1").Return(sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "user-1", "app-1"), ErrNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockApplicationRepository)
		svc := NewApplicationService(mRepo)

		mRepo.On("Delete", ctx, "user-1", "app-1").Return(errors.New("db fail"))

		err := svc.Delete(ctx, "user-1", "app-1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
