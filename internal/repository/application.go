package repository

import (
	"context"

	"apptrack/internal/model"
)

// ApplicationFilter narrows a list query. Q is a case-insensitive substring
// matched against company, role title, and notes (OR'd together); Status,
// when non-nil, is an equality filter.
type ApplicationFilter struct {
	Q      string
	Status *model.Status
}

// ApplicationUpdate carries the fields of a partial update. Nil pointers
// mean "leave unchanged"; the updated_at stamp is refreshed regardless.
type ApplicationUpdate struct {
	Company   *string
	RoleTitle *string
	Status    *model.Status
	Notes     *string
}

// ApplicationRepository defines ownership-scoped data access for job
// applications. Every method takes the owner's user id and applies it as
// the first predicate of the query; a row owned by another user behaves
// exactly like a row that does not exist.
type ApplicationRepository interface {
	// Create inserts a new application row. The caller provides ID and
	// both timestamps (already UTC).
	Create(ctx context.Context, app *model.Application) (*model.Application, error)

	// FindByID returns the application only if it is owned by ownerID;
	// otherwise sql.ErrNoRows.
	FindByID(ctx context.Context, ownerID, id string) (*model.Application, error)

	// List returns a page of the owner's applications matching the filter,
	// ordered by updated_at descending with id descending as tiebreak, plus
	// the pre-pagination total.
	List(ctx context.Context, ownerID string, f ApplicationFilter, pq PageQuery) (*PageResult[model.Application], error)

	// Update applies the non-nil fields and refreshes updated_at in a
	// single statement. sql.ErrNoRows if no row matches (id, ownerID).
	Update(ctx context.Context, ownerID, id string, upd ApplicationUpdate) (*model.Application, error)

	// Delete removes the application; child attachment rows go with it via
	// FK cascade. sql.ErrNoRows if no row matches (id, ownerID).
	Delete(ctx context.Context, ownerID, id string) error
}
