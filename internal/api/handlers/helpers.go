package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sufia0/social-dashboard/internal/apperrors"
)

var validate = validator.New()

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// respondError maps a service error onto its HTTP status. Internal details
// stay out of 500 bodies; upstream failures (502, 504) keep their message so
// callers can tell a rejected credential from an unreachable platform.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "something went wrong"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}
