package transfer

import "time"

// MetricsSample is one engagement snapshot fetched from a platform API (or
// from the demo client, in which case Source says so).
type MetricsSample struct {
	Likes       int64     `json:"likes"`
	Shares      int64     `json:"shares"`
	Comments    int64     `json:"comments"`
	Impressions int64     `json:"impressions"`
	CapturedAt  time.Time `json:"captured_at"`
	Source      string    `json:"source"` // "live" or "demo"
}

type SkippedAccount struct {
	AccountID int64  `json:"account_id"`
	Platform  string `json:"platform"`
	Reason    string `json:"reason"`
}

type AccountFailure struct {
	AccountID int64  `json:"account_id"`
	Platform  string `json:"platform"`
	Error     string `json:"error"`
}

// CollectedSample identifies one stored sample and where its numbers came
// from, so demo data stays distinguishable from live readings.
type CollectedSample struct {
	AccountID int64  `json:"account_id"`
	Platform  string `json:"platform"`
	PostID    int64  `json:"post_id"`
	Source    string `json:"source"`
}

// CollectionResult reports one collection run: partial success counts plus
// every skipped account and per-account failure. A failed branch never
// aborts the others.
type CollectionResult struct {
	Collected int               `json:"collected"`
	Deduped   int               `json:"deduped"`
	Samples   []CollectedSample `json:"samples"`
	Skipped   []SkippedAccount  `json:"skipped"`
	Failures  []AccountFailure  `json:"failures"`
}
