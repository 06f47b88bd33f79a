package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

func newTestPostService(repo *fakePostRepo, now time.Time) PostService {
	return &postService{pr: repo, now: func() time.Time { return now }}
}

func TestCreatePostValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name string
		pc   transfer.PostCreation
	}{
		{"empty content", transfer.PostCreation{Content: "", Platforms: []string{models.PlatformTwitter}, ScheduledFor: future}},
		{"no platforms", transfer.PostCreation{Content: "hello", Platforms: nil, ScheduledFor: future}},
		{"unknown platform", transfer.PostCreation{Content: "hello", Platforms: []string{"myspace"}, ScheduledFor: future}},
		{"duplicate platform", transfer.PostCreation{Content: "hello", Platforms: []string{models.PlatformTwitter, models.PlatformTwitter}, ScheduledFor: future}},
		{"unparseable time", transfer.PostCreation{Content: "hello", Platforms: []string{models.PlatformTwitter}, ScheduledFor: "tomorrow-ish"}},
		{"past time", transfer.PostCreation{Content: "hello", Platforms: []string{models.PlatformTwitter}, ScheduledFor: now.Add(-time.Hour).Format(time.RFC3339)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePostRepo()
			svc := newTestPostService(repo, now)

			_, _, err := svc.Create(context.Background(), 1, &tt.pc)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Empty(t, repo.posts)
		})
	}
}

func TestCreatePostAndListOrdering(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakePostRepo()
	svc := newTestPostService(repo, now)

	// Scheduled out of order: T+3h, T+1h, T+2h.
	for _, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		post, delay, err := svc.Create(ctx, 1, &transfer.PostCreation{
			Content:      "post at " + offset.String(),
			Platforms:    []string{models.PlatformTwitter},
			ScheduledFor: now.Add(offset).Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusScheduled, post.Status)
		assert.Equal(t, offset, delay)
	}

	posts, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, now.Add(time.Hour), posts[0].ScheduledTime)
	assert.Equal(t, now.Add(2*time.Hour), posts[1].ScheduledTime)
	assert.Equal(t, now.Add(3*time.Hour), posts[2].ScheduledTime)
}

func TestListOrderingTieBreakByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakePostRepo()
	svc := newTestPostService(repo, now)

	same := now.Add(time.Hour).Format(time.RFC3339)
	for _, content := range []string{"first", "second"} {
		_, _, err := svc.Create(ctx, 1, &transfer.PostCreation{
			Content:      content,
			Platforms:    []string{models.PlatformLinkedIn},
			ScheduledFor: same,
		})
		require.NoError(t, err)
	}

	posts, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Content)
	assert.Equal(t, "second", posts[1].Content)
}

func TestPlatformOrderPreserved(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakePostRepo()
	svc := newTestPostService(repo, now)

	post, _, err := svc.Create(ctx, 1, &transfer.PostCreation{
		Content:      "cross-post",
		Platforms:    []string{models.PlatformLinkedIn, models.PlatformTwitter},
		ScheduledFor: now.Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{models.PlatformLinkedIn, models.PlatformTwitter}, post.Platforms)
}

func TestRemovePublishedPostRejected(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakePostRepo()
	postID, err := repo.Create(ctx, nil, &models.Post{
		UserID:        1,
		Content:       "already out",
		Platforms:     []string{models.PlatformTwitter},
		ScheduledTime: now.Add(-time.Hour),
		Status:        models.PostStatusPublished,
	})
	require.NoError(t, err)

	svc := newTestPostService(repo, now)
	err = svc.Remove(ctx, 1, postID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRemoveOtherUsersPost(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakePostRepo()
	postID, err := repo.Create(ctx, nil, &models.Post{UserID: 1, Status: models.PostStatusScheduled})
	require.NoError(t, err)

	svc := newTestPostService(repo, now)
	err = svc.Remove(ctx, 2, postID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
