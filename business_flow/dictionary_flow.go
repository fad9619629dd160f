package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
)

// DictionaryFlow maintains the combination dictionaries: motor models,
// processes and the two category levels. Quotas reference these by code;
// deleting an entry does not cascade, listings fall back to the bare code.
type DictionaryFlow interface {
	CreateMotorModel(ctx context.Context, req *dto.CreateMotorModelRequest) (*dto.MotorModelResponse, error)
	ListMotorModels(ctx context.Context, filter models.MotorModelFilter, limit, offset int) (*dto.ListMotorModelsResponse, error)
	UpdateMotorModel(ctx context.Context, code string, req *dto.UpdateMotorModelRequest) (*dto.MotorModelResponse, error)
	DeleteMotorModel(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error)

	CreateProcess(ctx context.Context, req *dto.CreateProcessRequest) (*dto.ProcessResponse, error)
	ListProcesses(ctx context.Context, filter models.ProcessFilter, limit, offset int) (*dto.ListProcessesResponse, error)
	UpdateProcess(ctx context.Context, code string, req *dto.UpdateProcessRequest) (*dto.ProcessResponse, error)
	DeleteProcess(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error)

	CreateCat1(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCat1(ctx context.Context, limit, offset int) (*dto.ListCategoriesResponse, error)
	UpdateCat1(ctx context.Context, code string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCat1(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error)

	CreateCat2(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCat2(ctx context.Context, limit, offset int) (*dto.ListCategoriesResponse, error)
	UpdateCat2(ctx context.Context, code string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCat2(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error)
}

type DictionaryFlowImpl struct {
	modelRepo repository.MotorModelRepository
	procRepo  repository.ProcessRepository
	cat1Repo  repository.ProcessCat1Repository
	cat2Repo  repository.ProcessCat2Repository
}

func NewDictionaryFlow(
	modelRepo repository.MotorModelRepository,
	procRepo repository.ProcessRepository,
	cat1Repo repository.ProcessCat1Repository,
	cat2Repo repository.ProcessCat2Repository,
) DictionaryFlow {
	return &DictionaryFlowImpl{
		modelRepo: modelRepo,
		procRepo:  procRepo,
		cat1Repo:  cat1Repo,
		cat2Repo:  cat2Repo,
	}
}

func (f *DictionaryFlowImpl) CreateMotorModel(ctx context.Context, req *dto.CreateMotorModelRequest) (*dto.MotorModelResponse, error) {
	code := strings.TrimSpace(req.ModelCode)
	if code == "" {
		return nil, NewBusinessError("MODEL_CODE_REQUIRED", "Model code is required", ErrCodeRequired)
	}
	existing, err := f.modelRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("MODEL_LOOKUP_FAILED", "Failed to look up motor model", err)
	}
	if existing != nil {
		return nil, NewBusinessError("MODEL_CODE_EXISTS", "Model code already exists", ErrCodeAlreadyExists)
	}

	model := &models.MotorModel{
		ModelCode: code,
		Name:      strings.TrimSpace(req.Name),
		Aliases:   req.Aliases,
	}
	if err := f.modelRepo.Save(ctx, model); err != nil {
		return nil, NewBusinessError("MODEL_CREATE_FAILED", "Failed to create motor model", err)
	}
	return &dto.MotorModelResponse{
		Message: "Motor model created successfully",
		Model:   toMotorModelDTO(model),
	}, nil
}

func (f *DictionaryFlowImpl) ListMotorModels(ctx context.Context, filter models.MotorModelFilter, limit, offset int) (*dto.ListMotorModelsResponse, error) {
	entries, err := f.modelRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, NewBusinessError("MODEL_LIST_FAILED", "Failed to list motor models", err)
	}
	items := make([]dto.MotorModelDTO, 0, len(entries))
	for _, m := range entries {
		items = append(items, *toMotorModelDTO(m))
	}
	return &dto.ListMotorModelsResponse{
		Message: "Motor models retrieved successfully",
		Items:   items,
	}, nil
}

func (f *DictionaryFlowImpl) UpdateMotorModel(ctx context.Context, code string, req *dto.UpdateMotorModelRequest) (*dto.MotorModelResponse, error) {
	model, err := f.modelRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("MODEL_LOOKUP_FAILED", "Failed to look up motor model", err)
	}
	if model == nil {
		return nil, NewBusinessError("MODEL_NOT_FOUND", "Motor model not found", ErrEntityNotFound)
	}

	model.Name = strings.TrimSpace(req.Name)
	model.Aliases = req.Aliases
	if err := f.modelRepo.Update(ctx, model); err != nil {
		return nil, NewBusinessError("MODEL_UPDATE_FAILED", "Failed to update motor model", err)
	}
	return &dto.MotorModelResponse{
		Message: "Motor model updated successfully",
		Model:   toMotorModelDTO(model),
	}, nil
}

func (f *DictionaryFlowImpl) DeleteMotorModel(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error) {
	deleted, err := f.modelRepo.Delete(ctx, code)
	if err != nil {
		return nil, NewBusinessError("MODEL_DELETE_FAILED", "Failed to delete motor model", err)
	}
	if !deleted {
		return nil, NewBusinessError("MODEL_NOT_FOUND", "Motor model not found", ErrEntityNotFound)
	}
	return &dto.DeleteByCodeResponse{
		Message: "Motor model deleted successfully",
		Code:    code,
	}, nil
}

func (f *DictionaryFlowImpl) CreateProcess(ctx context.Context, req *dto.CreateProcessRequest) (*dto.ProcessResponse, error) {
	code := strings.TrimSpace(req.ProcessCode)
	if code == "" {
		return nil, NewBusinessError("PROCESS_CODE_REQUIRED", "Process code is required", ErrCodeRequired)
	}
	existing, err := f.procRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("PROCESS_LOOKUP_FAILED", "Failed to look up process", err)
	}
	if existing != nil {
		return nil, NewBusinessError("PROCESS_CODE_EXISTS", "Process code already exists", ErrCodeAlreadyExists)
	}

	process := &models.Process{
		ProcessCode: code,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := f.procRepo.Save(ctx, process); err != nil {
		return nil, NewBusinessError("PROCESS_CREATE_FAILED", "Failed to create process", err)
	}
	return &dto.ProcessResponse{
		Message: "Process created successfully",
		Process: toProcessDTO(process),
	}, nil
}

func (f *DictionaryFlowImpl) ListProcesses(ctx context.Context, filter models.ProcessFilter, limit, offset int) (*dto.ListProcessesResponse, error) {
	entries, err := f.procRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, NewBusinessError("PROCESS_LIST_FAILED", "Failed to list processes", err)
	}
	items := make([]dto.ProcessDTO, 0, len(entries))
	for _, p := range entries {
		items = append(items, *toProcessDTO(p))
	}
	return &dto.ListProcessesResponse{
		Message: "Processes retrieved successfully",
		Items:   items,
	}, nil
}

func (f *DictionaryFlowImpl) UpdateProcess(ctx context.Context, code string, req *dto.UpdateProcessRequest) (*dto.ProcessResponse, error) {
	process, err := f.procRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("PROCESS_LOOKUP_FAILED", "Failed to look up process", err)
	}
	if process == nil {
		return nil, NewBusinessError("PROCESS_NOT_FOUND", "Process not found", ErrEntityNotFound)
	}

	process.Name = strings.TrimSpace(req.Name)
	process.Description = req.Description
	if err := f.procRepo.Update(ctx, process); err != nil {
		return nil, NewBusinessError("PROCESS_UPDATE_FAILED", "Failed to update process", err)
	}
	return &dto.ProcessResponse{
		Message: "Process updated successfully",
		Process: toProcessDTO(process),
	}, nil
}

func (f *DictionaryFlowImpl) DeleteProcess(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error) {
	deleted, err := f.procRepo.Delete(ctx, code)
	if err != nil {
		return nil, NewBusinessError("PROCESS_DELETE_FAILED", "Failed to delete process", err)
	}
	if !deleted {
		return nil, NewBusinessError("PROCESS_NOT_FOUND", "Process not found", ErrEntityNotFound)
	}
	return &dto.DeleteByCodeResponse{
		Message: "Process deleted successfully",
		Code:    code,
	}, nil
}

func (f *DictionaryFlowImpl) CreateCat1(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, NewBusinessError("CAT1_CODE_REQUIRED", "Category code is required", ErrCodeRequired)
	}
	existing, err := f.cat1Repo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("CAT1_LOOKUP_FAILED", "Failed to look up work-section category", err)
	}
	if existing != nil {
		return nil, NewBusinessError("CAT1_CODE_EXISTS", "Category code already exists", ErrCodeAlreadyExists)
	}

	cat := &models.ProcessCat1{Cat1Code: code, Name: strings.TrimSpace(req.Name)}
	if err := f.cat1Repo.Save(ctx, cat); err != nil {
		return nil, NewBusinessError("CAT1_CREATE_FAILED", "Failed to create work-section category", err)
	}
	return &dto.CategoryResponse{
		Message:  "Work-section category created successfully",
		Category: &dto.CategoryDTO{Code: cat.Cat1Code, Name: cat.Name, CreatedAt: cat.CreatedAt.Format(time.RFC3339)},
	}, nil
}

func (f *DictionaryFlowImpl) ListCat1(ctx context.Context, limit, offset int) (*dto.ListCategoriesResponse, error) {
	entries, err := f.cat1Repo.List(ctx, models.ProcessCat1Filter{}, limit, offset)
	if err != nil {
		return nil, NewBusinessError("CAT1_LIST_FAILED", "Failed to list work-section categories", err)
	}
	items := make([]dto.CategoryDTO, 0, len(entries))
	for _, c := range entries {
		items = append(items, dto.CategoryDTO{Code: c.Cat1Code, Name: c.Name, CreatedAt: c.CreatedAt.Format(time.RFC3339)})
	}
	return &dto.ListCategoriesResponse{
		Message: "Work-section categories retrieved successfully",
		Items:   items,
	}, nil
}

func (f *DictionaryFlowImpl) UpdateCat1(ctx context.Context, code string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := f.cat1Repo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("CAT1_LOOKUP_FAILED", "Failed to look up work-section category", err)
	}
	if cat == nil {
		return nil, NewBusinessError("CAT1_NOT_FOUND", "Work-section category not found", ErrEntityNotFound)
	}

	cat.Name = strings.TrimSpace(req.Name)
	if err := f.cat1Repo.Update(ctx, cat); err != nil {
		return nil, NewBusinessError("CAT1_UPDATE_FAILED", "Failed to update work-section category", err)
	}
	return &dto.CategoryResponse{
		Message:  "Work-section category updated successfully",
		Category: &dto.CategoryDTO{Code: cat.Cat1Code, Name: cat.Name, CreatedAt: cat.CreatedAt.Format(time.RFC3339)},
	}, nil
}

func (f *DictionaryFlowImpl) DeleteCat1(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error) {
	deleted, err := f.cat1Repo.Delete(ctx, code)
	if err != nil {
		return nil, NewBusinessError("CAT1_DELETE_FAILED", "Failed to delete work-section category", err)
	}
	if !deleted {
		return nil, NewBusinessError("CAT1_NOT_FOUND", "Work-section category not found", ErrEntityNotFound)
	}
	return &dto.DeleteByCodeResponse{
		Message: "Work-section category deleted successfully",
		Code:    code,
	}, nil
}

func (f *DictionaryFlowImpl) CreateCat2(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, NewBusinessError("CAT2_CODE_REQUIRED", "Category code is required", ErrCodeRequired)
	}
	existing, err := f.cat2Repo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("CAT2_LOOKUP_FAILED", "Failed to look up process category", err)
	}
	if existing != nil {
		return nil, NewBusinessError("CAT2_CODE_EXISTS", "Category code already exists", ErrCodeAlreadyExists)
	}

	cat := &models.ProcessCat2{Cat2Code: code, Name: strings.TrimSpace(req.Name)}
	if err := f.cat2Repo.Save(ctx, cat); err != nil {
		return nil, NewBusinessError("CAT2_CREATE_FAILED", "Failed to create process category", err)
	}
	return &dto.CategoryResponse{
		Message:  "Process category created successfully",
		Category: &dto.CategoryDTO{Code: cat.Cat2Code, Name: cat.Name, CreatedAt: cat.CreatedAt.Format(time.RFC3339)},
	}, nil
}

func (f *DictionaryFlowImpl) ListCat2(ctx context.Context, limit, offset int) (*dto.ListCategoriesResponse, error) {
	entries, err := f.cat2Repo.List(ctx, models.ProcessCat2Filter{}, limit, offset)
	if err != nil {
		return nil, NewBusinessError("CAT2_LIST_FAILED", "Failed to list process categories", err)
	}
	items := make([]dto.CategoryDTO, 0, len(entries))
	for _, c := range entries {
		items = append(items, dto.CategoryDTO{Code: c.Cat2Code, Name: c.Name, CreatedAt: c.CreatedAt.Format(time.RFC3339)})
	}
	return &dto.ListCategoriesResponse{
		Message: "Process categories retrieved successfully",
		Items:   items,
	}, nil
}

func (f *DictionaryFlowImpl) UpdateCat2(ctx context.Context, code string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := f.cat2Repo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("CAT2_LOOKUP_FAILED", "Failed to look up process category", err)
	}
	if cat == nil {
		return nil, NewBusinessError("CAT2_NOT_FOUND", "Process category not found", ErrEntityNotFound)
	}

	cat.Name = strings.TrimSpace(req.Name)
	if err := f.cat2Repo.Update(ctx, cat); err != nil {
		return nil, NewBusinessError("CAT2_UPDATE_FAILED", "Failed to update process category", err)
	}
	return &dto.CategoryResponse{
		Message:  "Process category updated successfully",
		Category: &dto.CategoryDTO{Code: cat.Cat2Code, Name: cat.Name, CreatedAt: cat.CreatedAt.Format(time.RFC3339)},
	}, nil
}

func (f *DictionaryFlowImpl) DeleteCat2(ctx context.Context, code string) (*dto.DeleteByCodeResponse, error) {
	deleted, err := f.cat2Repo.Delete(ctx, code)
	if err != nil {
		return nil, NewBusinessError("CAT2_DELETE_FAILED", "Failed to delete process category", err)
	}
	if !deleted {
		return nil, NewBusinessError("CAT2_NOT_FOUND", "Process category not found", ErrEntityNotFound)
	}
	return &dto.DeleteByCodeResponse{
		Message: "Process category deleted successfully",
		Code:    code,
	}, nil
}

func toMotorModelDTO(m *models.MotorModel) *dto.MotorModelDTO {
	return &dto.MotorModelDTO{
		ModelCode: m.ModelCode,
		Name:      m.Name,
		Aliases:   m.Aliases,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func toProcessDTO(p *models.Process) *dto.ProcessDTO {
	return &dto.ProcessDTO{
		ProcessCode: p.ProcessCode,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
