package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, time.Duration, error)
	List(ctx context.Context, userID int64) ([]*models.Post, error)
	Info(ctx context.Context, postID, userID int64) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
}

type postService struct {
	pr  repository.PostRepository
	now func() time.Time
}

func NewPostService(pr repository.PostRepository) PostService {
	return &postService{pr: pr, now: time.Now}
}

// Create validates and persists one scheduled post. Every constraint
// violation is reported as a validation error, never coerced: unknown
// platforms are rejected, not mapped, and past schedule times are refused
// outright. The returned delay is how long publication should wait.
func (s *postService) Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, time.Duration, error) {
	if pc == nil {
		return nil, 0, apperrors.Validation("post creation data is nil")
	}
	if pc.Content == "" {
		return nil, 0, apperrors.Validation("content cannot be empty")
	}
	if len(pc.Platforms) == 0 {
		return nil, 0, apperrors.Validation("at least one platform is required")
	}

	seen := make(map[string]bool, len(pc.Platforms))
	for _, platform := range pc.Platforms {
		if !models.IsKnownPlatform(platform) {
			return nil, 0, apperrors.Validation(fmt.Sprintf("unknown platform %q", platform))
		}
		if seen[platform] {
			return nil, 0, apperrors.Validation(fmt.Sprintf("duplicate platform %q", platform))
		}
		seen[platform] = true
	}

	scheduledTime, err := time.Parse(time.RFC3339, pc.ScheduledFor)
	if err != nil {
		return nil, 0, apperrors.Validation("scheduledFor must be an RFC3339 timestamp")
	}

	now := s.now()
	if !scheduledTime.After(now) {
		return nil, 0, apperrors.Validation("scheduledFor must be in the future")
	}

	post := &models.Post{
		UserID:        userID,
		Content:       pc.Content,
		Platforms:     pc.Platforms,
		ScheduledTime: scheduledTime,
		Status:        models.PostStatusScheduled,
	}

	id, err := s.pr.Create(ctx, nil, post)
	if err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}
	post.ID = id

	return post, scheduledTime.Sub(now), nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	posts, err := s.pr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postService) Info(ctx context.Context, postID, userID int64) (*models.Post, error) {
	owned, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperrors.NotFound("post not found")
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NotFound("post not found")
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	owned, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return apperrors.NotFound("post not found")
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperrors.NotFound("post not found")
	}
	if post.Status == models.PostStatusPublished {
		return apperrors.Validation("published posts cannot be removed")
	}

	return s.pr.Remove(ctx, postID)
}
