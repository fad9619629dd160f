package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dahe-motor/piecerate/models"
	"gorm.io/gorm"
)

// WorkerRepositoryImpl implements WorkerRepository
type WorkerRepositoryImpl struct {
	*BaseRepository[models.Worker, models.WorkerFilter]
}

// NewWorkerRepository creates a new repository for workers
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &WorkerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Worker, models.WorkerFilter](db),
	}
}

// ByCode retrieves a worker by worker code.
func (r *WorkerRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Worker, error) {
	db := r.getDB(ctx)

	var worker models.Worker
	err := db.Where("worker_code = ?", code).Last(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find worker %s: %w", code, err)
	}

	return &worker, nil
}

// List retrieves workers ordered by worker code.
func (r *WorkerRepositoryImpl) List(ctx context.Context, filter models.WorkerFilter, limit, offset int) ([]*models.Worker, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Worker{}).Order("worker_code ASC")

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var workers []*models.Worker
	if err := query.Find(&workers).Error; err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	return workers, nil
}

// Delete removes a worker by code; reports whether a row was deleted.
func (r *WorkerRepositoryImpl) Delete(ctx context.Context, code string) (bool, error) {
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

	res := db.Where("worker_code = ?", code).Delete(&models.Worker{})
	if res.Error != nil {
		err = fmt.Errorf("failed to delete worker %s: %w", code, res.Error)
		return false, err
	}

	return res.RowsAffected > 0, nil
}
