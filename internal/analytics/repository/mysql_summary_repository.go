package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/analytics/domain"
	"github.com/tehnczon/projectecho/internal/database"
)

// MySQLSummaryRepository handles analytics counter persistence for MySQL.
type MySQLSummaryRepository struct {
	db *sql.DB
}

// NewMySQLSummaryRepository creates a new MySQLSummaryRepository
func NewMySQLSummaryRepository(db *sql.DB) *MySQLSummaryRepository {
	return &MySQLSummaryRepository{
		db: db,
	}
}

// ClaimRecord marks a survey record as aggregated. Returns false when the
// record was already claimed, which makes redelivered events no-ops.
func (r *MySQLSummaryRepository) ClaimRecord(ctx context.Context, recordID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := recordID.MarshalBinary()
	if err != nil {
		return false, err
	}

	query := `INSERT IGNORE INTO aggregated_records (record_id, aggregated_at)
			  VALUES (?, NOW())`

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// IncrementBuckets bumps one counter per increment on the given summary.
func (r *MySQLSummaryRepository) IncrementBuckets(
	ctx context.Context,
	summaryID string,
	increments []domain.BucketIncrement,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO analytics_counts (summary_id, count_key, bucket, count)
			  VALUES (?, ?, ?, 1)
			  ON DUPLICATE KEY UPDATE count = count + 1`

	for _, inc := range increments {
		if _, err := querier.ExecContext(ctx, query, summaryID, inc.CountKey, inc.Bucket); err != nil {
			return err
		}
	}

	return nil
}

// IncrementTotal bumps the summary's user total and refreshes its timestamp,
// creating the singleton row on first use.
func (r *MySQLSummaryRepository) IncrementTotal(ctx context.Context, summaryID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO analytics_summary (id, total_users, last_updated)
			  VALUES (?, 1, NOW())
			  ON DUPLICATE KEY UPDATE total_users = total_users + 1, last_updated = NOW()`

	_, err := querier.ExecContext(ctx, query, summaryID)

	return err
}

// GetSummary loads the summary row with all its count maps. A summary that
// has never been written reads back empty rather than as an error.
func (r *MySQLSummaryRepository) GetSummary(ctx context.Context, summaryID string) (*domain.Summary, error) {
	querier := database.GetTx(ctx, r.db)

	summary := domain.NewSummary()

	query := `SELECT total_users, last_updated FROM analytics_summary WHERE id = ?`

	var lastUpdated time.Time
	err := querier.QueryRowContext(ctx, query, summaryID).Scan(&summary.TotalUsers, &lastUpdated)
	switch {
	case err == sql.ErrNoRows:
		return summary, nil
	case err != nil:
		return nil, err
	}
	summary.LastUpdated = lastUpdated

	countsQuery := `SELECT count_key, bucket, count FROM analytics_counts WHERE summary_id = ?`

	rows, err := querier.QueryContext(ctx, countsQuery, summaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var countKey, bucket string
		var count int64

		if err := rows.Scan(&countKey, &bucket, &count); err != nil {
			return nil, err
		}

		if summary.Counts[countKey] == nil {
			summary.Counts[countKey] = map[string]int64{}
		}
		summary.Counts[countKey][bucket] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}
