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

func TestSummarizeUnknownUser(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	svc := NewAnalyticsService(users, newFakeAccountRepo(), newFakeMetricRepo(posts))

	_, err := svc.Summarize(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSummarizeZeroActivity(t *testing.T) {
	users := newFakeUserRepo()
	userID, err := users.Create(context.Background(), nil, &models.User{Email: "empty@example.com"})
	require.NoError(t, err)

	posts := newFakePostRepo()
	svc := NewAnalyticsService(users, newFakeAccountRepo(), newFakeMetricRepo(posts))

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalLikes)
	assert.Zero(t, summary.TotalShares)
	assert.Zero(t, summary.TotalComments)
	assert.Zero(t, summary.TotalImpressions)
	assert.Zero(t, summary.EngagementRate)
	assert.Zero(t, summary.FollowerEstimate)
	assert.True(t, summary.FollowersEstimated)
}

func TestSummarizeSumsOnlyOwnRecords(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepo()
	alice, err := users.Create(ctx, nil, &models.User{Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := users.Create(ctx, nil, &models.User{Email: "bob@example.com"})
	require.NoError(t, err)

	posts := newFakePostRepo()
	metrics := newFakeMetricRepo(posts)

	alicePost, err := posts.Create(ctx, nil, &models.Post{UserID: alice, Status: models.PostStatusPublished})
	require.NoError(t, err)
	bobPost, err := posts.Create(ctx, nil, &models.Post{UserID: bob, Status: models.PostStatusPublished})
	require.NoError(t, err)

	now := time.Now()
	for i, rec := range []*models.MetricRecord{
		{PostID: alicePost, Likes: 10, Shares: 4, Comments: 1, Impressions: 100},
		{PostID: alicePost, Likes: 5, Shares: 1, Comments: 2, Impressions: 50},
		{PostID: bobPost, Likes: 999, Shares: 999, Comments: 999, Impressions: 999},
	} {
		rec.CapturedAt = now.Add(time.Duration(i) * time.Hour)
		rec.CaptureWindow = rec.CapturedAt.Truncate(CaptureWindow)
		_, err := metrics.Insert(ctx, rec)
		require.NoError(t, err)
	}

	svc := NewAnalyticsService(users, newFakeAccountRepo(), metrics)

	summary, err := svc.Summarize(ctx, alice)
	require.NoError(t, err)

	// Bob's records never contribute to Alice's totals.
	assert.Equal(t, int64(15), summary.TotalLikes)
	assert.Equal(t, int64(5), summary.TotalShares)
	assert.Equal(t, int64(3), summary.TotalComments)
	assert.Equal(t, int64(150), summary.TotalImpressions)
	assert.InDelta(t, 23.0/150.0, summary.EngagementRate, 1e-9)
}

func TestSummarizeFollowerEstimate(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepo()
	userID, err := users.Create(ctx, nil, &models.User{Email: "linked@example.com"})
	require.NoError(t, err)

	accounts := newFakeAccountRepo()
	for _, platform := range []string{models.PlatformTwitter, models.PlatformLinkedIn} {
		_, err := accounts.Upsert(ctx, nil, &models.SocialAccount{UserID: userID, Platform: platform})
		require.NoError(t, err)
	}

	posts := newFakePostRepo()
	svc := NewAnalyticsService(users, accounts, newFakeMetricRepo(posts))

	summary, err := svc.Summarize(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, int64(2*FollowersPerAccount), summary.FollowerEstimate)
	assert.True(t, summary.FollowersEstimated)
}

func TestEngagementRateZeroImpressions(t *testing.T) {
	rate := EngagementRate(&transfer.MetricTotals{
		Likes:       10,
		Shares:      5,
		Comments:    5,
		Impressions: 0,
	})
	assert.Equal(t, 0.0, rate)
}

func TestEngagementRateComputed(t *testing.T) {
	rate := EngagementRate(&transfer.MetricTotals{
		Likes:       10,
		Shares:      5,
		Comments:    5,
		Impressions: 400,
	})
	assert.InDelta(t, 0.05, rate, 1e-9)
}
