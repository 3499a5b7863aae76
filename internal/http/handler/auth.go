package handler

import (
	"github.com/gofiber/fiber/v2"

	"apptrack/internal/service"
)

// credentialsBody is the shared request body for register and login.
type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a token plus the public user view.
func Register(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body credentialsBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := authSvc.Register(c.UserContext(), body.Email, body.Password)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login verifies credentials and returns a fresh token.
func Login(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body credentialsBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := authSvc.Login(c.UserContext(), body.Email, body.Password)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}
