package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/queue"
	"github.com/sufia0/social-dashboard/internal/service"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

// PostEnqueuer schedules a publication task for later delivery.
type PostEnqueuer interface {
	EnqueuePost(payload queue.PublishPostPayload, delay time.Duration) error
}

type PostHandler struct {
	s  service.PostService
	eq PostEnqueuer
}

func NewPostHandler(service service.PostService, enqueuer PostEnqueuer) *PostHandler {
	return &PostHandler{s: service, eq: enqueuer}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if err := parseBody(c, &pc); err != nil {
		return respondError(c, err)
	}

	post, delay, err := h.s.Create(c.Context(), userID, &pc)
	if err != nil {
		return respondError(c, err)
	}

	err = h.eq.EnqueuePost(queue.PublishPostPayload{PostID: post.ID}, delay)
	if err != nil {
		slog.Info(err.Error())
		// A row that never got a publication task would sit scheduled
		// forever; roll it back so the client can retry cleanly.
		if rmErr := h.s.Remove(c.Context(), userID, post.ID); rmErr != nil {
			slog.Info(rmErr.Error())
		}
		return respondError(c, apperrors.Internal("scheduling post publication failed", err))
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.QueryInt("id", 0)

	if postID != 0 {
		post, err := h.s.Info(c.Context(), int64(postID), userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	posts, err := h.s.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), userID, int64(postID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
