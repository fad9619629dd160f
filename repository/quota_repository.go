package repository

import (
	"context"
	"fmt"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// QuotaRepositoryImpl implements QuotaRepository
type QuotaRepositoryImpl struct {
	*BaseRepository[models.Quota, models.QuotaFilter]
}

// NewQuotaRepository creates a new repository for quotas
func NewQuotaRepository(db *gorm.DB) QuotaRepository {
	return &QuotaRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Quota, models.QuotaFilter](db),
	}
}

const quotaDetailSelect = `
	SELECT q.id,
	       q.model_code,
	       COALESCE(m.name, '') AS model_name,
	       q.cat1_code,
	       COALESCE(c1.name, '') AS cat1_name,
	       q.cat2_code,
	       COALESCE(c2.name, '') AS cat2_name,
	       q.process_code,
	       COALESCE(p.name, '') AS process_name,
	       q.unit_price,
	       q.effective_date,
	       q.obsolete_date
	FROM quotas q
	LEFT JOIN motor_models m ON m.model_code = q.model_code
	LEFT JOIN process_cat1 c1 ON c1.cat1_code = q.cat1_code
	LEFT JOIN process_cat2 c2 ON c2.cat2_code = q.cat2_code
	LEFT JOIN processes p ON p.process_code = q.process_code`

// ListAllDetailed returns every quota version joined with display names.
func (r *QuotaRepositoryImpl) ListAllDetailed(ctx context.Context) ([]*QuotaDetail, error) {
	db := r.getDB(ctx)

	var rows []*QuotaDetail
	err := db.Raw(quotaDetailSelect + `
	ORDER BY q.id`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotas: %w", err)
	}

	return rows, nil
}

// ListByCat1Detailed returns all quota versions of one work-section category.
func (r *QuotaRepositoryImpl) ListByCat1Detailed(ctx context.Context, cat1Code string) ([]*QuotaDetail, error) {
	db := r.getDB(ctx)

	var rows []*QuotaDetail
	err := db.Raw(quotaDetailSelect+`
	WHERE q.cat1_code = ?
	ORDER BY q.id`, cat1Code).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotas for cat1 %s: %w", cat1Code, err)
	}

	return rows, nil
}

// ListByKeyDetailed returns every version of one combination.
func (r *QuotaRepositoryImpl) ListByKeyDetailed(ctx context.Context, key models.CombinationKey) ([]*QuotaDetail, error) {
	db := r.getDB(ctx)

	var rows []*QuotaDetail
	err := db.Raw(quotaDetailSelect+`
	WHERE q.model_code = ? AND q.cat1_code = ? AND q.cat2_code = ? AND q.process_code = ?
	ORDER BY q.id`, key.ModelCode, key.Cat1Code, key.Cat2Code, key.ProcessCode).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotas for combination: %w", err)
	}

	return rows, nil
}

// GetByIDDetailed returns one quota joined with display names, or nil.
func (r *QuotaRepositoryImpl) GetByIDDetailed(ctx context.Context, id uint) (*QuotaDetail, error) {
	db := r.getDB(ctx)

	var rows []*QuotaDetail
	err := db.Raw(quotaDetailSelect+`
	WHERE q.id = ?`, id).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get quota %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// ByFilter retrieves quotas based on filter criteria.
func (r *QuotaRepositoryImpl) ByFilter(ctx context.Context, filter models.QuotaFilter, orderBy string, limit, offset int) ([]*models.Quota, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Quota{}), filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var quotas []*models.Quota
	if err := query.Find(&quotas).Error; err != nil {
		return nil, fmt.Errorf("failed to find quotas by filter: %w", err)
	}

	return quotas, nil
}

// Delete removes a quota by id; reports whether a row was deleted.
func (r *QuotaRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
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

	res := db.Delete(&models.Quota{}, id)
	if res.Error != nil {
		err = fmt.Errorf("failed to delete quota %d: %w", id, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *QuotaRepositoryImpl) applyFilter(db *gorm.DB, filter models.QuotaFilter) *gorm.DB {
	if filter.ModelCode != nil {
		db = db.Where("model_code = ?", *filter.ModelCode)
	}
	if filter.Cat1Code != nil {
		db = db.Where("cat1_code = ?", *filter.Cat1Code)
	}
	if filter.Cat2Code != nil {
		db = db.Where("cat2_code = ?", *filter.Cat2Code)
	}
	if filter.ProcessCode != nil {
		db = db.Where("process_code = ?", *filter.ProcessCode)
	}
	if filter.ValidOn != nil {
		db = db.Where("effective_date <= ? AND obsolete_date >= ?", *filter.ValidOn, *filter.ValidOn)
	}
	return db
}
