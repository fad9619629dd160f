package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// ProcessRepositoryImpl implements ProcessRepository
type ProcessRepositoryImpl struct {
	*BaseRepository[models.Process, models.ProcessFilter]
}

// NewProcessRepository creates a new repository for processes
func NewProcessRepository(db *gorm.DB) ProcessRepository {
	return &ProcessRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Process, models.ProcessFilter](db),
	}
}

// ByCode retrieves a process by process code.
func (r *ProcessRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Process, error) {
	db := r.getDB(ctx)

	var process models.Process
	err := db.Where("process_code = ?", code).Last(&process).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find process %s: %w", code, err)
	}

	return &process, nil
}

// List retrieves processes ordered by process code.
func (r *ProcessRepositoryImpl) List(ctx context.Context, filter models.ProcessFilter, limit, offset int) ([]*models.Process, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Process{}).Order("process_code ASC")

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Process
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	return rows, nil
}

// Delete removes a process by code; reports whether a row was deleted.
func (r *ProcessRepositoryImpl) Delete(ctx context.Context, code string) (bool, error) {
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

	res := db.Where("process_code = ?", code).Delete(&models.Process{})
	if res.Error != nil {
		err = fmt.Errorf("failed to delete process %s: %w", code, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}
