package repository

import (
	"context"

	"apptrack/internal/model"
)

// AttachmentRepository defines ownership-scoped data access for attachment
// metadata. Ownership is transitive: every query joins through the parent
// application's user_id.
type AttachmentRepository interface {
	// Create inserts a new attachment row.
	Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error)

	// FindByID returns the attachment only if its application is owned by
	// ownerID; otherwise sql.ErrNoRows.
	FindByID(ctx context.Context, ownerID, id string) (*model.Attachment, error)

	// ListByApplication returns all attachments of the given application,
	// newest first. The owner scope applies; attachments of someone else's
	// application are never returned.
	ListByApplication(ctx context.Context, ownerID, applicationID string) ([]model.Attachment, error)

	// Delete removes the attachment row. sql.ErrNoRows if no row matches
	// the (id, ownerID) scope.
	Delete(ctx context.Context, ownerID, id string) error
}
