package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"apptrack/internal/model"
	"apptrack/internal/repository"
	"apptrack/internal/storage"
)

const (
	// maxAttachmentBytes is the fixed upload ceiling (25 MiB).
	maxAttachmentBytes = 25 << 20
	// presignTTL bounds every upload and download grant.
	presignTTL = 10 * time.Minute
)

// UploadGrant authorizes one out-of-band PUT against the object store.
type UploadGrant struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"storageKey"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// DownloadGrant authorizes one out-of-band GET against the object store.
type DownloadGrant struct {
	DownloadURL string `json:"downloadUrl"`
	TTLSeconds  int    `json:"ttlSeconds"`
}

// AttachmentMetadata is the client's claim about a completed upload.
type AttachmentMetadata struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
}

// AttachmentService mediates between transient client uploads and durable
// metadata. File bytes never pass through the API process; the service only
// mints grants, guards the key namespace, and reconciles metadata.
type AttachmentService interface {
	// PresignUpload validates the upload request against the owned
	// application and returns a PUT grant on a freshly namespaced key.
	PresignUpload(ctx context.Context, ownerID, applicationID, fileName, contentType string, sizeBytes int64) (*UploadGrant, error)

	// RecordMetadata persists the durable attachment row after the client
	// claims the upload completed. The storage key must sit inside the
	// caller's own namespace for this application.
	RecordMetadata(ctx context.Context, ownerID, applicationID string, meta AttachmentMetadata) (*model.Attachment, error)

	// ListByApplication returns the owned application's attachments.
	ListByApplication(ctx context.Context, ownerID, applicationID string) ([]model.Attachment, error)

	// PresignDownload returns a GET grant on the stored key.
	PresignDownload(ctx context.Context, ownerID, attachmentID string) (*DownloadGrant, error)

	// Delete removes the metadata row; object-store deletion is best-effort
	// and never fails the call.
	Delete(ctx context.Context, ownerID, attachmentID string) error
}

// attachmentService is a concrete implementation of AttachmentService.
type attachmentService struct {
	store storage.Storage
	apps  repository.ApplicationRepository
	atts  repository.AttachmentRepository
	log   *zap.Logger
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(store storage.Storage, apps repository.ApplicationRepository, atts repository.AttachmentRepository, log *zap.Logger) AttachmentService {
	return &attachmentService{store: store, apps: apps, atts: atts, log: log}
}

// attachmentKeyPrefix is the namespace every storage key of this
// owner/application pair must live under. The ownership guard in
// RecordMetadata is a prefix check against it.
func attachmentKeyPrefix(ownerID, applicationID string) string {
	return fmt.Sprintf("users/%s/job-apps/%s/attachments/", ownerID, applicationID)
}

// sanitizeFileName strips any directory components from a client-supplied
// name so it contributes a single path segment to the storage key.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

func (s *attachmentService) PresignUpload(ctx context.Context, ownerID, applicationID, fileName, contentType string, sizeBytes int64) (*UploadGrant, error) {
	name := sanitizeFileName(strings.TrimSpace(fileName))
	if name == "" {
		return nil, fmt.Errorf("%w: fileName is required", ErrValidation)
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("%w: sizeBytes must be positive", ErrValidation)
	}
	if sizeBytes > maxAttachmentBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", ErrValidation, maxAttachmentBytes)
	}

	if err := s.requireOwnedApplication(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	// The random segment keeps repeated uploads of the same filename from
	// colliding.
	key := attachmentKeyPrefix(ownerID, applicationID) + uuid.New().String() + "/" + name

	url, err := s.store.PresignPut(ctx, key, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &UploadGrant{
		UploadURL:  url,
		StorageKey: key,
		TTLSeconds: int(presignTTL.Seconds()),
	}, nil
}

func (s *attachmentService) RecordMetadata(ctx context.Context, ownerID, applicationID string, meta AttachmentMetadata) (*model.Attachment, error) {
	name := sanitizeFileName(strings.TrimSpace(meta.FileName))
	if name == "" {
		return nil, fmt.Errorf("%w: fileName is required", ErrValidation)
	}
	if meta.SizeBytes <= 0 {
		return nil, fmt.Errorf("%w: sizeBytes must be positive", ErrValidation)
	}
	if meta.SizeBytes > maxAttachmentBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", ErrValidation, maxAttachmentBytes)
	}

	if err := s.requireOwnedApplication(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	// The critical guard: a key outside the caller's namespace would let
	// metadata point at another tenant's object.
	if !strings.HasPrefix(meta.StorageKey, attachmentKeyPrefix(ownerID, applicationID)) {
		return nil, fmt.Errorf("%w: storage key does not belong to this application", ErrValidation)
	}

	// The object's existence in the store is not verified here; the row
	// records the client's claim.
	att := &model.Attachment{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		FileName:      name,
		ContentType:   meta.ContentType,
		SizeBytes:     meta.SizeBytes,
		StorageKey:    meta.StorageKey,
		CreatedAt:     timeNow().UTC(),
	}
	return s.atts.Create(ctx, att)
}

func (s *attachmentService) ListByApplication(ctx context.Context, ownerID, applicationID string) ([]model.Attachment, error) {
	if err := s.requireOwnedApplication(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return s.atts.ListByApplication(ctx, ownerID, applicationID)
}

func (s *attachmentService) PresignDownload(ctx context.Context, ownerID, attachmentID string) (*DownloadGrant, error) {
	att, err := s.atts.FindByID(ctx, ownerID, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	url, err := s.store.PresignGet(ctx, att.StorageKey, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}

	return &DownloadGrant{
		DownloadURL: url,
		TTLSeconds:  int(presignTTL.Seconds()),
	}, nil
}

func (s *attachmentService) Delete(ctx context.Context, ownerID, attachmentID string) error {
	att, err := s.atts.FindByID(ctx, ownerID, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// Best-effort object cleanup: a store failure is logged and swallowed,
	// the metadata row goes away regardless. The trade is possible storage
	// leakage for a consistently successful delete.
	if err := s.store.Delete(ctx, att.StorageKey); err != nil {
		s.log.Warn("attachment object cleanup failed",
			zap.String("attachment_id", att.ID),
			zap.String("storage_key", att.StorageKey),
			zap.Error(err))
	}

	if err := s.atts.Delete(ctx, ownerID, attachmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *attachmentService) requireOwnedApplication(ctx context.Context, ownerID, applicationID string) error {
	if _, err := s.apps.FindByID(ctx, ownerID, applicationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
