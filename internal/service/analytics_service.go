package service

import (
	"context"

	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

// FollowersPerAccount is the declared placeholder multiplier behind the
// follower estimate. Summaries built from it always carry
// FollowersEstimated=true; real follower counts are not stored yet.
const FollowersPerAccount = 1250

type AnalyticsService interface {
	Summarize(ctx context.Context, userID int64) (*transfer.DashboardSummary, error)
}

type analyticsService struct {
	u  repository.UserRepository
	sa repository.SocialAccountRepository
	mr repository.MetricRepository
}

func NewAnalyticsService(
	u repository.UserRepository,
	sa repository.SocialAccountRepository,
	mr repository.MetricRepository) AnalyticsService {
	return &analyticsService{
		u:  u,
		sa: sa,
		mr: mr,
	}
}

// Summarize reduces every metric record owned by the user into one
// dashboard summary. A user with no accounts or posts gets a valid all-zero
// summary; only a missing user is an error.
func (s *analyticsService) Summarize(ctx context.Context, userID int64) (*transfer.DashboardSummary, error) {
	_, exists, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("user not found")
	}

	totals, err := s.mr.SumByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accountCount, err := s.sa.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &transfer.DashboardSummary{
		TotalLikes:         totals.Likes,
		TotalShares:        totals.Shares,
		TotalComments:      totals.Comments,
		TotalImpressions:   totals.Impressions,
		EngagementRate:     EngagementRate(totals),
		FollowerEstimate:   EstimateFollowers(accountCount),
		FollowersEstimated: true,
	}, nil
}

// EngagementRate is (likes+shares+comments)/impressions, computed from the
// actual totals. Zero impressions yields the zero sentinel, never a
// division error or a canned display value.
func EngagementRate(totals *transfer.MetricTotals) float64 {
	if totals.Impressions == 0 {
		return 0
	}
	interactions := totals.Likes + totals.Shares + totals.Comments
	return float64(interactions) / float64(totals.Impressions)
}

// EstimateFollowers derives a follower figure from the number of linked
// accounts.
func EstimateFollowers(accountCount int64) int64 {
	return accountCount * FollowersPerAccount
}
