package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"apptrack/internal/http/middleware"
	"apptrack/internal/model"
	"apptrack/internal/repository"
	"apptrack/internal/service"
)

// applicationBody is the create request body. Status may be omitted.
type applicationBody struct {
	Company   string `json:"company"`
	RoleTitle string `json:"roleTitle"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// applicationPatchBody is the partial update body; absent fields stay unchanged.
type applicationPatchBody struct {
	Company   *string `json:"company"`
	RoleTitle *string `json:"roleTitle"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

// ListApplications lists the caller's applications with q/status filters and
// page/pageSize pagination.
func ListApplications(appSvc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		pageSize, err := strconv.Atoi(c.Query("pageSize", "25"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE_SIZE", "invalid pageSize")
		}

		filter := repository.ApplicationFilter{Q: c.Query("q")}
		if raw := c.Query("status"); raw != "" {
			st, err := model.ParseStatus(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status value")
			}
			filter.Status = &st
		}

		res, err := appSvc.List(c.UserContext(), middleware.UserID(c), filter, page, pageSize)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateApplication creates an application for the caller.
func CreateApplication(appSvc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body applicationBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		in := service.ApplicationCreate{
			Company:   body.Company,
			RoleTitle: body.RoleTitle,
			Notes:     body.Notes,
		}
		if body.Status != "" {
			st, err := model.ParseStatus(body.Status)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status value")
			}
			in.Status = &st
		}

		app, err := appSvc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	}
}

// UpdateApplication applies a partial update to an owned application.
func UpdateApplication(appSvc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body applicationPatchBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		patch := service.ApplicationPatch{
			Company:   body.Company,
			RoleTitle: body.RoleTitle,
			Notes:     body.Notes,
		}
		if body.Status != nil {
			st, err := model.ParseStatus(*body.Status)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status value")
			}
			patch.Status = &st
		}

		app, err := appSvc.Update(c.UserContext(), middleware.UserID(c), id, patch)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(app)
	}
}

// DeleteApplication removes an owned application and its attachment metadata.
func DeleteApplication(appSvc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := appSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
