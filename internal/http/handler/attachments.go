package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"apptrack/internal/http/middleware"
	"apptrack/internal/service"
)

// presignUploadBody describes the file the client intends to upload.
type presignUploadBody struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// recordAttachmentBody is the client's claim that its presigned upload completed.
type recordAttachmentBody struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	StorageKey  string `json:"storageKey"`
}

// ListAttachments lists attachment metadata for an owned application.
func ListAttachments(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		appID := c.Params("id")
		if _, err := uuid.Parse(appID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		items, err := attSvc.ListByApplication(c.UserContext(), middleware.UserID(c), appID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"items": items})
	}
}

// PresignUpload mints a short-lived PUT grant for a new attachment object.
func PresignUpload(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		appID := c.Params("id")
		if _, err := uuid.Parse(appID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body presignUploadBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		grant, err := attSvc.PresignUpload(c.UserContext(), middleware.UserID(c), appID, body.FileName, body.ContentType, body.SizeBytes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(grant)
	}
}

// RecordAttachment persists attachment metadata after an out-of-band upload.
func RecordAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		appID := c.Params("id")
		if _, err := uuid.Parse(appID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body recordAttachmentBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		att, err := attSvc.RecordMetadata(c.UserContext(), middleware.UserID(c), appID, service.AttachmentMetadata{
			FileName:    body.FileName,
			ContentType: body.ContentType,
			SizeBytes:   body.SizeBytes,
			StorageKey:  body.StorageKey,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(att)
	}
}

// PresignDownload mints a short-lived GET grant for an owned attachment.
func PresignDownload(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		grant, err := attSvc.PresignDownload(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(grant)
	}
}

// DeleteAttachment removes attachment metadata; the stored object is cleaned
// up best-effort.
func DeleteAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := attSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
