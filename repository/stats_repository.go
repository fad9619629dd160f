package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// StatsRepositoryImpl implements StatsRepository
type StatsRepositoryImpl struct {
	db *gorm.DB
}

// NewStatsRepository creates a new repository for dashboard statistics
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &StatsRepositoryImpl{db: db}
}

// Counts returns the row count of every domain table in one round trip.
func (r *StatsRepositoryImpl) Counts(ctx context.Context) (*SystemCounts, error) {
	db := r.db.WithContext(ctx)

	var counts SystemCounts
	err := db.Raw(`
		SELECT (SELECT COUNT(*) FROM workers)       AS worker_count,
		       (SELECT COUNT(*) FROM motor_models)  AS motor_model_count,
		       (SELECT COUNT(*) FROM processes)     AS process_count,
		       (SELECT COUNT(*) FROM process_cat1)  AS process_cat1_count,
		       (SELECT COUNT(*) FROM process_cat2)  AS process_cat2_count,
		       (SELECT COUNT(*) FROM quotas)        AS quota_count,
		       (SELECT COUNT(*) FROM wage_records)  AS wage_record_count
	`).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count domain tables: %w", err)
	}

	return &counts, nil
}
