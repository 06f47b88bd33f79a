package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sufia0/social-dashboard/internal/service"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

type AuthHandler struct {
	s service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req transfer.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	userID, err := h.s.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": userID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	token, err := h.s.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}
