package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
)

// WorkerFlow maintains the worker roster.
type WorkerFlow interface {
	Create(ctx context.Context, req *dto.CreateWorkerRequest) (*dto.WorkerResponse, error)
	Get(ctx context.Context, code string) (*dto.WorkerResponse, error)
	List(ctx context.Context, filter models.WorkerFilter, limit, offset int) (*dto.ListWorkersResponse, error)
	Update(ctx context.Context, code string, req *dto.UpdateWorkerRequest) (*dto.WorkerResponse, error)
	Delete(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error)
}

type WorkerFlowImpl struct {
	workerRepo repository.WorkerRepository
}

func NewWorkerFlow(workerRepo repository.WorkerRepository) WorkerFlow {
	return &WorkerFlowImpl{workerRepo: workerRepo}
}

func (f *WorkerFlowImpl) Create(ctx context.Context, req *dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	code := strings.TrimSpace(req.WorkerCode)
	if code == "" {
		return nil, NewBusinessError("WORKER_CODE_REQUIRED", "Worker code is required", ErrCodeRequired)
	}

	existing, err := f.workerRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("WORKER_LOOKUP_FAILED", "Failed to look up worker", err)
	}
	if existing != nil {
		return nil, NewBusinessError("WORKER_CODE_EXISTS", "Worker code already exists", ErrCodeAlreadyExists)
	}

	worker := &models.Worker{WorkerCode: code, Name: strings.TrimSpace(req.Name)}
	if err := f.workerRepo.Save(ctx, worker); err != nil {
		return nil, NewBusinessError("WORKER_CREATE_FAILED", "Failed to create worker", err)
	}

	return &dto.WorkerResponse{
		Message: "Worker created successfully",
		Worker:  toWorkerDTO(worker),
	}, nil
}

func (f *WorkerFlowImpl) Get(ctx context.Context, code string) (*dto.WorkerResponse, error) {
	worker, err := f.workerRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("WORKER_LOOKUP_FAILED", "Failed to look up worker", err)
	}
	if worker == nil {
		return nil, NewBusinessError("WORKER_NOT_FOUND", "Worker not found", ErrWorkerNotFound)
	}
	return &dto.WorkerResponse{
		Message: "Worker retrieved successfully",
		Worker:  toWorkerDTO(worker),
	}, nil
}

func (f *WorkerFlowImpl) List(ctx context.Context, filter models.WorkerFilter, limit, offset int) (*dto.ListWorkersResponse, error) {
	workers, err := f.workerRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, NewBusinessError("WORKER_LIST_FAILED", "Failed to list workers", err)
	}
	items := make([]dto.WorkerDTO, 0, len(workers))
	for _, w := range workers {
		items = append(items, *toWorkerDTO(w))
	}
	return &dto.ListWorkersResponse{
		Message: "Workers retrieved successfully",
		Items:   items,
	}, nil
}

func (f *WorkerFlowImpl) Update(ctx context.Context, code string, req *dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	worker, err := f.workerRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("WORKER_LOOKUP_FAILED", "Failed to look up worker", err)
	}
	if worker == nil {
		return nil, NewBusinessError("WORKER_NOT_FOUND", "Worker not found", ErrWorkerNotFound)
	}

	worker.Name = strings.TrimSpace(req.Name)
	if err := f.workerRepo.Update(ctx, worker); err != nil {
		return nil, NewBusinessError("WORKER_UPDATE_FAILED", "Failed to update worker", err)
	}

	return &dto.WorkerResponse{
		Message: "Worker updated successfully",
		Worker:  toWorkerDTO(worker),
	}, nil
}

// Delete removes a worker. Existing wage records reference the code
// historically and are intentionally left in place.
func (f *WorkerFlowImpl) Delete(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error) {
	deleted, err := f.workerRepo.Delete(ctx, code)
	if err != nil {
		return nil, NewBusinessError("WORKER_DELETE_FAILED", "Failed to delete worker", err)
	}
	if !deleted {
		return nil, NewBusinessError("WORKER_NOT_FOUND", "Worker not found", ErrWorkerNotFound)
	}
	return &dto.DeleteByCodeResponse{
		Message: "Worker deleted successfully",
		Code:    code,
	}, nil
}

func toWorkerDTO(w *models.Worker) *dto.WorkerDTO {
	return &dto.WorkerDTO{
		WorkerCode: w.WorkerCode,
		Name:       w.Name,
		CreatedAt:  w.CreatedAt.Format(time.RFC3339),
	}
}
