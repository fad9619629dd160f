package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// WageRecordRepositoryImpl implements WageRecordRepository
type WageRecordRepositoryImpl struct {
	*BaseRepository[models.WageRecord, models.WageRecordFilter]
}

// NewWageRecordRepository creates a new repository for wage records
func NewWageRecordRepository(db *gorm.DB) WageRecordRepository {
	return &WageRecordRepositoryImpl{
		BaseRepository: NewBaseRepository[models.WageRecord, models.WageRecordFilter](db),
	}
}

// ListDetailed returns wage records joined with worker names and the
// descriptive fields of each record's quota combination, newest first.
func (r *WageRecordRepositoryImpl) ListDetailed(ctx context.Context, filter models.WageRecordFilter, limit, offset int) ([]*WageRecordDetail, error) {
	db := r.getDB(ctx)

	query := db.Table("wage_records r").
		Select(`r.id, r.worker_code, COALESCE(w.name, '') AS worker_name,
			r.quota_id, r.quantity, r.unit_price, r.amount, r.record_date, r.created_at,
			q.model_code, COALESCE(m.name, '') AS model_name,
			q.cat1_code, COALESCE(c1.name, '') AS cat1_name,
			q.cat2_code, COALESCE(c2.name, '') AS cat2_name,
			q.process_code, COALESCE(p.name, '') AS process_name`).
		Joins("LEFT JOIN workers w ON w.worker_code = r.worker_code").
		Joins("LEFT JOIN quotas q ON q.id = r.quota_id").
		Joins("LEFT JOIN motor_models m ON m.model_code = q.model_code").
		Joins("LEFT JOIN process_cat1 c1 ON c1.cat1_code = q.cat1_code").
		Joins("LEFT JOIN process_cat2 c2 ON c2.cat2_code = q.cat2_code").
		Joins("LEFT JOIN processes p ON p.process_code = q.process_code")

	query = r.applyDetailFilter(query, filter)
	query = query.Order("r.id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*WageRecordDetail
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list wage records: %w", err)
	}

	return rows, nil
}

// SummaryByMonth aggregates record count and total amount per worker for
// records whose date falls in [monthStart, monthEnd).
func (r *WageRecordRepositoryImpl) SummaryByMonth(ctx context.Context, monthStart, monthEnd time.Time) ([]*WorkerMonthTotal, error) {
	db := r.getDB(ctx)

	var rows []*WorkerMonthTotal
	err := db.Raw(`
		SELECT r.worker_code,
		       COALESCE(w.name, '') AS worker_name,
		       COUNT(*) AS record_count,
		       COALESCE(SUM(r.amount), 0) AS total_amount
		FROM wage_records r
		LEFT JOIN workers w ON w.worker_code = r.worker_code
		WHERE r.record_date >= ? AND r.record_date < ?
		GROUP BY r.worker_code, w.name
		ORDER BY r.worker_code
	`, monthStart, monthEnd).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize wage records: %w", err)
	}

	return rows, nil
}

// WorkloadByMonth aggregates quantity and amount per process for records
// whose date falls in [monthStart, monthEnd). Records reach their process
// through the quota they were priced from.
func (r *WageRecordRepositoryImpl) WorkloadByMonth(ctx context.Context, monthStart, monthEnd time.Time) ([]*ProcessMonthTotal, error) {
	db := r.getDB(ctx)

	var rows []*ProcessMonthTotal
	err := db.Raw(`
		SELECT q.process_code,
		       COALESCE(p.name, '') AS process_name,
		       COALESCE(SUM(r.quantity), 0) AS total_quantity,
		       COALESCE(SUM(r.amount), 0) AS total_amount
		FROM wage_records r
		JOIN quotas q ON q.id = r.quota_id
		LEFT JOIN processes p ON p.process_code = q.process_code
		WHERE r.record_date >= ? AND r.record_date < ?
		GROUP BY q.process_code, p.name
		ORDER BY q.process_code
	`, monthStart, monthEnd).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize process workload: %w", err)
	}

	return rows, nil
}

// Delete removes a wage record by id; reports whether a row was deleted.
func (r *WageRecordRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	res := db.Delete(&models.WageRecord{}, id)
	if res.Error != nil {
		err = fmt.Errorf("failed to delete wage record %d: %w", id, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}

func (r *WageRecordRepositoryImpl) applyDetailFilter(db *gorm.DB, filter models.WageRecordFilter) *gorm.DB {
	if filter.WorkerCode != nil {
		db = db.Where("r.worker_code = ?", *filter.WorkerCode)
	}
	if filter.QuotaID != nil {
		db = db.Where("r.quota_id = ?", *filter.QuotaID)
	}
	if filter.RecordDate != nil {
		db = db.Where("r.record_date = ?", *filter.RecordDate)
	}
	if filter.Month != nil {
		if start, err := time.ParseInLocation("2006-01", *filter.Month, time.UTC); err == nil {
			db = db.Where("r.record_date >= ? AND r.record_date < ?", start, start.AddDate(0, 1, 0))
		}
	}
	if filter.BatchID != nil {
		db = db.Where("r.batch_id = ?", *filter.BatchID)
	}
	return db
}
