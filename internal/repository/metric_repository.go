package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

type MetricRepository interface {
	Insert(ctx context.Context, record *models.MetricRecord) (bool, error)
	SumByUserID(ctx context.Context, userID int64) (*transfer.MetricTotals, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.MetricRecord, error)
}

type metricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) MetricRepository {
	return &metricRepository{db: db}
}

// Insert appends one record. The unique index on (post_id, capture_window)
// makes re-collection inside the same window a no-op; the bool reports
// whether a row was actually written.
func (r *metricRepository) Insert(ctx context.Context, record *models.MetricRecord) (bool, error) {
	query := `
		INSERT INTO metric_records (post_id, likes, shares, comments, impressions, captured_at, capture_window, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (post_id, capture_window) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		record.PostID,
		record.Likes,
		record.Shares,
		record.Comments,
		record.Impressions,
		record.CapturedAt,
		record.CaptureWindow,
		record.Source,
	)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

// SumByUserID reduces every metric record belonging to the user's posts in
// one grouped query. Ownership is enforced by the join, never by trusting a
// caller-supplied post id.
func (r *metricRepository) SumByUserID(ctx context.Context, userID int64) (*transfer.MetricTotals, error) {
	query := `
		SELECT COALESCE(SUM(m.likes), 0),
			COALESCE(SUM(m.shares), 0),
			COALESCE(SUM(m.comments), 0),
			COALESCE(SUM(m.impressions), 0)
		FROM metric_records m
		JOIN posts p ON p.id = m.post_id
		WHERE p.user_id = $1
	`

	var totals transfer.MetricTotals
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&totals.Likes, &totals.Shares, &totals.Comments, &totals.Impressions)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &totals, nil
}

func (r *metricRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.MetricRecord, error) {
	query := `
		SELECT id, post_id, likes, shares, comments, impressions, captured_at, capture_window, source
		FROM metric_records
		WHERE post_id = $1
		ORDER BY captured_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var records []*models.MetricRecord
	for rows.Next() {
		var m models.MetricRecord
		err := rows.Scan(&m.ID, &m.PostID, &m.Likes, &m.Shares, &m.Comments, &m.Impressions, &m.CapturedAt, &m.CaptureWindow, &m.Source)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		records = append(records, &m)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return records, nil
}
