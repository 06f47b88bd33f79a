package models

import "time"

// MetricRecord is append-only: a post accumulates one record per capture
// window, never mutated after insert.
type MetricRecord struct {
	ID            int64     `db:"id" json:"id"`
	PostID        int64     `db:"post_id" json:"post_id"`
	Likes         int64     `db:"likes" json:"likes"`
	Shares        int64     `db:"shares" json:"shares"`
	Comments      int64     `db:"comments" json:"comments"`
	Impressions   int64     `db:"impressions" json:"impressions"`
	CapturedAt    time.Time `db:"captured_at" json:"captured_at"`
	CaptureWindow time.Time `db:"capture_window" json:"capture_window"`
	Source        string    `db:"source" json:"source"`
}
