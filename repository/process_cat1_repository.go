package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// ProcessCat1RepositoryImpl implements ProcessCat1Repository
type ProcessCat1RepositoryImpl struct {
	*BaseRepository[models.ProcessCat1, models.ProcessCat1Filter]
}

// NewProcessCat1Repository creates a new repository for work-section categories
func NewProcessCat1Repository(db *gorm.DB) ProcessCat1Repository {
	return &ProcessCat1RepositoryImpl{
		BaseRepository: NewBaseRepository[models.ProcessCat1, models.ProcessCat1Filter](db),
	}
}

// ByCode retrieves a work-section category by code.
func (r *ProcessCat1RepositoryImpl) ByCode(ctx context.Context, code string) (*models.ProcessCat1, error) {
	db := r.getDB(ctx)

	var cat models.ProcessCat1
	err := db.Where("cat1_code = ?", code).Last(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cat1 %s: %w", code, err)
	}

	return &cat, nil
}

// List retrieves work-section categories ordered by code.
func (r *ProcessCat1RepositoryImpl) List(ctx context.Context, filter models.ProcessCat1Filter, limit, offset int) ([]*models.ProcessCat1, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ProcessCat1{}).Order("cat1_code ASC")

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ProcessCat1
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cat1: %w", err)
	}

	return rows, nil
}

// Delete removes a work-section category by code; reports whether a row was deleted.
func (r *ProcessCat1RepositoryImpl) Delete(ctx context.Context, code string) (bool, error) {
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

	res := db.Where("cat1_code = ?", code).Delete(&models.ProcessCat1{})
	if res.Error != nil {
		err = fmt.Errorf("failed to delete cat1 %s: %w", code, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}
