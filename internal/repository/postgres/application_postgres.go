package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"apptrack/internal/model"
	"apptrack/internal/repository"
)

const applicationColumns = "id, user_id, company, role_title, status, notes, created_at, updated_at"

// ApplicationPostgres is a PostgreSQL implementation of
// repository.ApplicationRepository. Every query carries the owner predicate
// as its first condition; there is no code path that reads or writes an
// application row without it.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

// Create inserts a new application row and returns the stored record.
// Timestamps are coerced to UTC at this boundary.
func (r *ApplicationPostgres) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	const q = `
		INSERT INTO job_applications (id, user_id, company, role_title, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + applicationColumns
	row := r.db.QueryRowContext(ctx, q,
		app.ID,
		app.UserID,
		app.Company,
		app.RoleTitle,
		string(app.Status),
		app.Notes,
		app.CreatedAt.UTC(),
		app.UpdatedAt.UTC(),
	)
	return scanApplication(row)
}

// FindByID fetches a single application scoped to its owner. A row owned by
// a different user yields sql.ErrNoRows, same as an absent row.
func (r *ApplicationPostgres) FindByID(ctx context.Context, ownerID, id string) (*model.Application, error) {
	const q = `
		SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE id = $1 AND user_id = $2
	`
	return scanApplication(r.db.QueryRowContext(ctx, q, id, ownerID))
}

// List returns a page of the owner's applications plus the pre-pagination
// total. The owner predicate is applied before any caller-supplied filter.
func (r *ApplicationPostgres) List(ctx context.Context, ownerID string, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	where := []string{"user_id = $1"}
	args := []any{ownerID}

	if f.Q != "" {
		pattern := "%" + escapeLike(f.Q) + "%"
		args = append(args, pattern)
		n := len(args)
		where = append(where, fmt.Sprintf("(company ILIKE $%d OR role_title ILIKE $%d OR notes ILIKE $%d)", n, n, n))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	cond := strings.Join(where, " AND ")

	// Count total rows matching the filter
	var total int
	qCount := "SELECT COUNT(*) FROM job_applications WHERE " + cond
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page; id DESC keeps equal-timestamp rows in a stable order
	// across pages.
	args = append(args, pq.Limit, pq.Offset)
	qList := fmt.Sprintf(`
		SELECT %s
		FROM job_applications
		WHERE %s
		ORDER BY updated_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, applicationColumns, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Company,
			&a.RoleTitle,
			&a.Status,
			&a.Notes,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Application]{
		Items: items,
		Total: total,
	}, nil
}

// Update applies the non-nil fields and the updated_at stamp as one
// statement, so a concurrent reader never observes a partially-updated row.
// An empty update still refreshes updated_at.
func (r *ApplicationPostgres) Update(ctx context.Context, ownerID, id string, upd repository.ApplicationUpdate) (*model.Application, error) {
	set := []string{"updated_at = $1"}
	args := []any{timeNow().UTC()}

	appendField := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Company != nil {
		appendField("company", *upd.Company)
	}
	if upd.RoleTitle != nil {
		appendField("role_title", *upd.RoleTitle)
	}
	if upd.Status != nil {
		appendField("status", string(*upd.Status))
	}
	if upd.Notes != nil {
		appendField("notes", *upd.Notes)
	}

	args = append(args, id, ownerID)
	q := fmt.Sprintf(`
		UPDATE job_applications
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args)-1, len(args), applicationColumns)

	return scanApplication(r.db.QueryRowContext(ctx, q, args...))
}

// Delete removes the application under the same owner scope as Update.
// Zero affected rows surfaces as sql.ErrNoRows.
func (r *ApplicationPostgres) Delete(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM job_applications WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanApplication(row *sql.Row) (*model.Application, error) {
	var a model.Application
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Company,
		&a.RoleTitle,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// escapeLike makes a user-supplied term safe to embed in an ILIKE pattern,
// so the term matches as literal text rather than as a pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
