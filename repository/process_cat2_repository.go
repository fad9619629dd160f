package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// ProcessCat2RepositoryImpl implements ProcessCat2Repository
type ProcessCat2RepositoryImpl struct {
	*BaseRepository[models.ProcessCat2, models.ProcessCat2Filter]
}

// NewProcessCat2Repository creates a new repository for process categories
func NewProcessCat2Repository(db *gorm.DB) ProcessCat2Repository {
	return &ProcessCat2RepositoryImpl{
		BaseRepository: NewBaseRepository[models.ProcessCat2, models.ProcessCat2Filter](db),
	}
}

// ByCode retrieves a process category by code.
func (r *ProcessCat2RepositoryImpl) ByCode(ctx context.Context, code string) (*models.ProcessCat2, error) {
	db := r.getDB(ctx)

	var cat models.ProcessCat2
	err := db.Where("cat2_code = ?", code).Last(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cat2 %s: %w", code, err)
	}

	return &cat, nil
}

// List retrieves process categories ordered by code.
func (r *ProcessCat2RepositoryImpl) List(ctx context.Context, filter models.ProcessCat2Filter, limit, offset int) ([]*models.ProcessCat2, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ProcessCat2{}).Order("cat2_code ASC")

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ProcessCat2
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cat2: %w", err)
	}

	return rows, nil
}

// Delete removes a process category by code; reports whether a row was deleted.
func (r *ProcessCat2RepositoryImpl) Delete(ctx context.Context, code string) (bool, error) {
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

	res := db.Where("cat2_code = ?", code).Delete(&models.ProcessCat2{})
	if res.Error != nil {
		err = fmt.Errorf("failed to delete cat2 %s: %w", code, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}
