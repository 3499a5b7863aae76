package postgres

import (
	"context"
	"database/sql"

	"apptrack/internal/model"
	"apptrack/internal/repository"
)

const attachmentColumns = "a.id, a.application_id, a.file_name, a.content_type, a.size_bytes, a.storage_key, a.created_at, a.deleted_at"

// AttachmentPostgres is a PostgreSQL implementation of
// repository.AttachmentRepository. Owner scoping is transitive: every read
// and the delete join through job_applications on user_id.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

// Create inserts a new attachment row and returns the stored record.
func (r *AttachmentPostgres) Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO attachments (id, application_id, file_name, content_type, size_bytes, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, application_id, file_name, content_type, size_bytes, storage_key, created_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		att.ID,
		att.ApplicationID,
		att.FileName,
		att.ContentType,
		att.SizeBytes,
		att.StorageKey,
		att.CreatedAt.UTC(),
	)
	return scanAttachment(row)
}

// FindByID fetches a single attachment if its parent application belongs to
// ownerID; otherwise sql.ErrNoRows.
func (r *AttachmentPostgres) FindByID(ctx context.Context, ownerID, id string) (*model.Attachment, error) {
	const q = `
		SELECT ` + attachmentColumns + `
		FROM attachments a
		JOIN job_applications j ON j.id = a.application_id
		WHERE a.id = $1 AND j.user_id = $2
	`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id, ownerID))
}

// ListByApplication returns the application's attachments, newest first.
func (r *AttachmentPostgres) ListByApplication(ctx context.Context, ownerID, applicationID string) ([]model.Attachment, error) {
	const q = `
		SELECT ` + attachmentColumns + `
		FROM attachments a
		JOIN job_applications j ON j.id = a.application_id
		WHERE a.application_id = $1 AND j.user_id = $2
		ORDER BY a.created_at DESC, a.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, applicationID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(
			&a.ID,
			&a.ApplicationID,
			&a.FileName,
			&a.ContentType,
			&a.SizeBytes,
			&a.StorageKey,
			&a.CreatedAt,
			&a.DeletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the attachment row under the transitive owner scope.
// Zero affected rows surfaces as sql.ErrNoRows.
func (r *AttachmentPostgres) Delete(ctx context.Context, ownerID, id string) error {
	const q = `
		DELETE FROM attachments a
		USING job_applications j
		WHERE a.id = $1 AND a.application_id = j.id AND j.user_id = $2
	`
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

func scanAttachment(row *sql.Row) (*model.Attachment, error) {
	var a model.Attachment
	if err := row.Scan(
		&a.ID,
		&a.ApplicationID,
		&a.FileName,
		&a.ContentType,
		&a.SizeBytes,
		&a.StorageKey,
		&a.CreatedAt,
		&a.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
