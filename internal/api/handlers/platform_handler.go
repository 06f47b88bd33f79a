package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sufia0/social-dashboard/internal/service"
)

type PlatformHandler struct {
	s service.PlatformService
}

func NewPlatformHandler(service service.PlatformService) *PlatformHandler {
	return &PlatformHandler{s: service}
}

// AddSocialAccount starts the OAuth flow: a fresh state+PKCE pair is bound
// to the authenticated user, then the browser is redirected to the
// platform.
func (h *PlatformHandler) AddSocialAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	platform := c.Params("platform")

	authURL, err := h.s.BeginAuth(c.Context(), userID, platform)
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect(authURL, fiber.StatusFound)
}

// CallbackHandler completes the flow. The user is resolved from the
// persisted state, since the platform redirect carries no bearer token.
func (h *PlatformHandler) CallbackHandler(c *fiber.Ctx) error {
	platform := c.Params("platform")
	code := c.Query("code")
	state := c.Query("state")

	account, err := h.s.CompleteAuth(c.Context(), platform, code, state)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": platform + " connected successfully",
		"account": fiber.Map{
			"id":       account.ID,
			"platform": account.Platform,
			"handle":   account.Handle,
		},
	})
}

func (h *PlatformHandler) ListSocialAccounts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	accounts, err := h.s.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *PlatformHandler) DeleteSocialAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID := c.QueryInt("id", 0)

	if err := h.s.Disconnect(c.Context(), userID, int64(accountID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
