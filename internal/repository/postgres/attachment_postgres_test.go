package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apptrack/internal/model"
)

var attCols = []string{"id", "application_id", "file_name", "content_type", "size_bytes", "storage_key", "created_at", "deleted_at"}

func TestAttachmentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	att := &model.Attachment{
		ID:            "att-uuid",
		ApplicationID: "app-uuid",
		FileName:      "resume.pdf",
		ContentType:   "application/pdf",
		SizeBytes:     1024,
		StorageKey:    "users/user-uuid/job-apps/app-uuid/attachments/rand/resume.pdf",
		CreatedAt:     now,
	}

	rows := sqlmock.NewRows(attCols).
		AddRow(att.ID, att.ApplicationID, att.FileName, att.ContentType, att.SizeBytes, att.StorageKey, att.CreatedAt, nil)

	mock.ExpectQuery("INSERT INTO attachments").
		WithArgs(att.ID, att.ApplicationID, att.FileName, att.ContentType, att.SizeBytes, att.StorageKey, att.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, att)

	assert.NoError(t, err)
	assert.Equal(t, att.StorageKey, result.StorageKey)
	assert.Nil(t, result.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	t.Run("found via owner join", func(t *testing.T) {
		rows := sqlmock.NewRows(attCols).
			AddRow("att-uuid", "app-uuid", "resume.pdf", "application/pdf", 1024, "users/u/job-apps/a/attachments/r/resume.pdf", time.Now(), nil)

		mock.ExpectQuery("SELECT (.+) FROM attachments a JOIN job_applications j ON j.id = a.application_id WHERE a.id = (.+) AND j.user_id = ").
			WithArgs("att-uuid", "user-uuid").
			WillReturnRows(rows)

		att, err := repo.FindByID(ctx, "user-uuid", "att-uuid")

		assert.NoError(t, err)
		assert.Equal(t, "resume.pdf", att.FileName)
	})

	t.Run("other tenant's attachment is absent", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM attachments a JOIN job_applications j").
			WithArgs("att-uuid", "other-user").
			WillReturnError(sql.ErrNoRows)

		att, err := repo.FindByID(ctx, "other-user", "att-uuid")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, att)
	})
}

func TestAttachmentPostgres_ListByApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(attCols).
		AddRow("att-2", "app-uuid", "cover.pdf", "application/pdf", 512, "users/u/job-apps/a/attachments/r2/cover.pdf", time.Now(), nil).
		AddRow("att-1", "app-uuid", "resume.pdf", "application/pdf", 1024, "users/u/job-apps/a/attachments/r1/resume.pdf", time.Now(), nil)

	mock.ExpectQuery("SELECT (.+) FROM attachments a JOIN job_applications j (.+) ORDER BY a.created_at DESC, a.id DESC").
		WithArgs("app-uuid", "user-uuid").
		WillReturnRows(rows)

	items, err := repo.ListByApplication(ctx, "user-uuid", "app-uuid")

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "cover.pdf", items[0].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAttachmentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM attachments a USING job_applications j").
			WithArgs("att-uuid", "user-uuid").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, "user-uuid", "att-uuid")

		assert.NoError(t, err)
	})

	t.Run("not owned", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM attachments a USING job_applications j").
			WithArgs("att-uuid", "other-user").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "other-user", "att-uuid")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
