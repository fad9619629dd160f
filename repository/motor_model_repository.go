package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// MotorModelRepositoryImpl implements MotorModelRepository
type MotorModelRepositoryImpl struct {
	*BaseRepository[models.MotorModel, models.MotorModelFilter]
}

// NewMotorModelRepository creates a new repository for motor models
func NewMotorModelRepository(db *gorm.DB) MotorModelRepository {
	return &MotorModelRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MotorModel, models.MotorModelFilter](db),
	}
}

// ByCode retrieves a motor model by model code.
func (r *MotorModelRepositoryImpl) ByCode(ctx context.Context, code string) (*models.MotorModel, error) {
	db := r.getDB(ctx)

	var model models.MotorModel
	err := db.Where("model_code = ?", code).Last(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find motor model %s: %w", code, err)
	}

	return &model, nil
}

// List retrieves motor models ordered by model code.
func (r *MotorModelRepositoryImpl) List(ctx context.Context, filter models.MotorModelFilter, limit, offset int) ([]*models.MotorModel, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.MotorModel{}).Order("model_code ASC")

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.MotorModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list motor models: %w", err)
	}

	return rows, nil
}

// Delete removes a motor model by code; reports whether a row was deleted.
func (r *MotorModelRepositoryImpl) Delete(ctx context.Context, code string) (bool, error) {
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

	res := db.Where("model_code = ?", code).Delete(&models.MotorModel{})
	if res.Error != nil {
		err = fmt.Errorf("failed to delete motor model %s: %w", code, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}
