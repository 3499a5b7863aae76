package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"apptrack/internal/model"
	"apptrack/internal/repository"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// ApplicationListResult is the service-level DTO for a page of applications.
type ApplicationListResult struct {
	Items    []model.Application `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
}

// ApplicationCreate carries the create-call input. Status nil means Draft.
type ApplicationCreate struct {
	Company   string
	RoleTitle string
	Status    *model.Status
	Notes     string
}

// ApplicationPatch carries a partial update; nil pointers are "unchanged".
type ApplicationPatch struct {
	Company   *string
	RoleTitle *string
	Status    *model.Status
	Notes     *string
}

// ApplicationService defines the use cases for job applications. Every
// method takes the caller's resolved owner id; there is no unscoped variant.
type ApplicationService interface {
	// List returns the owner's applications filtered by an optional search
	// term and status, paginated with clamped page/pageSize.
	List(ctx context.Context, ownerID string, f repository.ApplicationFilter, page, pageSize int) (*ApplicationListResult, error)

	// Create validates required fields, defaults status to Draft, and
	// stamps createdAt = updatedAt = now (UTC).
	Create(ctx context.Context, ownerID string, in ApplicationCreate) (*model.Application, error)

	// Update applies only the supplied fields; updatedAt always refreshes.
	Update(ctx context.Context, ownerID, id string, in ApplicationPatch) (*model.Application, error)

	// Delete removes the application and, by cascade, its attachments' metadata.
	Delete(ctx context.Context, ownerID, id string) error
}

// applicationService is a concrete implementation of ApplicationService.
type applicationService struct {
	repo repository.ApplicationRepository
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(repo repository.ApplicationRepository) ApplicationService {
	return &applicationService{repo: repo}
}

func (s *applicationService) List(ctx context.Context, ownerID string, f repository.ApplicationFilter, page, pageSize int) (*ApplicationListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	// Cap page so the offset below cannot overflow; every page past the cap
	// is empty anyway.
	if maxPage := math.MaxInt/pageSize + 1; page > maxPage {
		page = maxPage
	}

	res, err := s.repo.List(ctx, ownerID, f, repository.PageQuery{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &ApplicationListResult{
		Items:    res.Items,
		Total:    res.Total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *applicationService) Create(ctx context.Context, ownerID string, in ApplicationCreate) (*model.Application, error) {
	company := strings.TrimSpace(in.Company)
	roleTitle := strings.TrimSpace(in.RoleTitle)
	if company == "" {
		return nil, fmt.Errorf("%w: company is required", ErrValidation)
	}
	if roleTitle == "" {
		return nil, fmt.Errorf("%w: roleTitle is required", ErrValidation)
	}

	status := model.StatusDraft
	if in.Status != nil {
		status = *in.Status
	}

	now := timeNow().UTC()
	app := &model.Application{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Company:   company,
		RoleTitle: roleTitle,
		Status:    status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, app)
}

func (s *applicationService) Update(ctx context.Context, ownerID, id string, in ApplicationPatch) (*model.Application, error) {
	upd := repository.ApplicationUpdate{
		Status: in.Status,
		Notes:  in.Notes,
	}
	if in.Company != nil {
		company := strings.TrimSpace(*in.Company)
		if company == "" {
			return nil, fmt.Errorf("%w: company cannot be blank", ErrValidation)
		}
		upd.Company = &company
	}
	if in.RoleTitle != nil {
		roleTitle := strings.TrimSpace(*in.RoleTitle)
		if roleTitle == "" {
			return nil, fmt.Errorf("%w: roleTitle cannot be blank", ErrValidation)
		}
		upd.RoleTitle = &roleTitle
	}

	app, err := s.repo.Update(ctx, ownerID, id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
