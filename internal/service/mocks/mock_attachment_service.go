package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"apptrack/internal/model"
	"apptrack/internal/service"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) PresignUpload(ctx context.Context, ownerID, applicationID, fileName, contentType string, sizeBytes int64) (*service.UploadGrant, error) {
	args := m.Called(ctx, ownerID, applicationID, fileName, contentType, sizeBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadGrant), args.Error(1)
}

func (m *MockAttachmentService) RecordMetadata(ctx context.Context, ownerID, applicationID string, meta service.AttachmentMetadata) (*model.Attachment, error) {
	args := m.Called(ctx, ownerID, applicationID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) ListByApplication(ctx context.Context, ownerID, applicationID string) ([]model.Attachment, error) {
	args := m.Called(ctx, ownerID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) PresignDownload(ctx context.Context, ownerID, attachmentID string) (*service.DownloadGrant, error) {
	args := m.Called(ctx, ownerID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadGrant), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, ownerID, attachmentID string) error {
	args := m.Called(ctx, ownerID, attachmentID)
	return args.Error(0)
}
