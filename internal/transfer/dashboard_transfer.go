package transfer

// MetricTotals is the grouped sum over all metric records belonging to one
// user's posts.
type MetricTotals struct {
	Likes       int64 `json:"likes"`
	Shares      int64 `json:"shares"`
	Comments    int64 `json:"comments"`
	Impressions int64 `json:"impressions"`
}

// DashboardSummary is derived, never persisted. FollowerEstimate carries an
// explicit estimated flag so callers cannot mistake it for ground truth.
type DashboardSummary struct {
	TotalLikes         int64   `json:"total_likes"`
	TotalShares        int64   `json:"total_shares"`
	TotalComments      int64   `json:"total_comments"`
	TotalImpressions   int64   `json:"total_impressions"`
	EngagementRate     float64 `json:"engagement_rate"`
	FollowerEstimate   int64   `json:"follower_estimate"`
	FollowersEstimated bool    `json:"followers_estimated"`
}
