package handlers

import (
	"context"
	"log"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	businessflow "github.com/dahe-motor/piecerate/business_flow"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// DictionaryHandlerInterface defines the contract for reference-data handlers
type DictionaryHandlerInterface interface {
	CreateWorker(c fiber.Ctx) error
	GetWorker(c fiber.Ctx) error
	ListWorkers(c fiber.Ctx) error
	UpdateWorker(c fiber.Ctx) error
	DeleteWorker(c fiber.Ctx) error

	CreateMotorModel(c fiber.Ctx) error
	ListMotorModels(c fiber.Ctx) error
	UpdateMotorModel(c fiber.Ctx) error
	DeleteMotorModel(c fiber.Ctx) error

	CreateProcess(c fiber.Ctx) error
	ListProcesses(c fiber.Ctx) error
	UpdateProcess(c fiber.Ctx) error
	DeleteProcess(c fiber.Ctx) error

	CreateCat1(c fiber.Ctx) error
	ListCat1(c fiber.Ctx) error
	UpdateCat1(c fiber.Ctx) error
	DeleteCat1(c fiber.Ctx) error

	CreateCat2(c fiber.Ctx) error
	ListCat2(c fiber.Ctx) error
	UpdateCat2(c fiber.Ctx) error
	DeleteCat2(c fiber.Ctx) error
}

// DictionaryHandler handles worker and combination dictionary HTTP requests
type DictionaryHandler struct {
	workerFlow     businessflow.WorkerFlow
	dictionaryFlow businessflow.DictionaryFlow
	validator      *validator.Validate
}

func NewDictionaryHandler(workerFlow businessflow.WorkerFlow, dictionaryFlow businessflow.DictionaryFlow) DictionaryHandlerInterface {
	return &DictionaryHandler{
		workerFlow:     workerFlow,
		dictionaryFlow: dictionaryFlow,
		validator:      validator.New(),
	}
}

func (h *DictionaryHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *DictionaryHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// mapFlowError translates flow errors to HTTP responses shared by every
// dictionary endpoint.
func (h *DictionaryHandler) mapFlowError(c fiber.Ctx, err error, operation, failCode string) error {
	if businessflow.IsNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
	}
	if businessflow.IsCodeConflict(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
	}
	if businessflow.IsInvalidInput(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
	}
	log.Println(operation+" failed:", err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, operation+" failed", failCode, nil)
}

func (h *DictionaryHandler) validateRequest(c fiber.Ctx, req any) error {
	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}
	return nil
}

// CreateWorker adds a worker to the roster
// @Summary Create Worker
// @Tags Workers
// @Accept json
// @Produce json
// @Param request body dto.CreateWorkerRequest true "Worker data"
// @Success 201 {object} dto.APIResponse{data=dto.WorkerResponse} "Worker created"
// @Router /api/v1/workers [post]
func (h *DictionaryHandler) CreateWorker(c fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.workerFlow.Create(h.createRequestContext(c, "/api/v1/workers"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Worker creation", "WORKER_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// GetWorker returns one worker by code
// @Summary Get Worker
// @Tags Workers
// @Produce json
// @Param code path string true "Worker code"
// @Success 200 {object} dto.APIResponse{data=dto.WorkerResponse} "Worker retrieved"
// @Router /api/v1/workers/{code} [get]
func (h *DictionaryHandler) GetWorker(c fiber.Ctx) error {
	result, err := h.workerFlow.Get(h.createRequestContext(c, "/api/v1/workers/:code"), c.Params("code"))
	if err != nil {
		return h.mapFlowError(c, err, "Worker retrieval", "WORKER_GET_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListWorkers lists the worker roster
// @Summary List Workers
// @Tags Workers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListWorkersResponse} "Workers retrieved"
// @Router /api/v1/workers [get]
func (h *DictionaryHandler) ListWorkers(c fiber.Ctx) error {
	var filter models.WorkerFilter
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	limit, offset := parsePagination(c)

	result, err := h.workerFlow.List(h.createRequestContext(c, "/api/v1/workers"), filter, limit, offset)
	if err != nil {
		return h.mapFlowError(c, err, "Worker listing", "WORKER_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateWorker renames a worker
// @Summary Update Worker
// @Tags Workers
// @Accept json
// @Produce json
// @Param code path string true "Worker code"
// @Param request body dto.UpdateWorkerRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.WorkerResponse} "Worker updated"
// @Router /api/v1/workers/{code} [put]
func (h *DictionaryHandler) UpdateWorker(c fiber.Ctx) error {
	var req dto.UpdateWorkerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.workerFlow.Update(h.createRequestContext(c, "/api/v1/workers/:code"), c.Params("code"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Worker update", "WORKER_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteWorker removes a worker from the roster
// @Summary Delete Worker
// @Tags Workers
// @Produce json
// @Param code path string true "Worker code"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteByCodeResponse} "Worker deleted"
// @Router /api/v1/workers/{code} [delete]
func (h *DictionaryHandler) DeleteWorker(c fiber.Ctx) error {
	result, err := h.workerFlow.Delete(h.createRequestContext(c, "/api/v1/workers/:code"), c.Params("code"))
	if err != nil {
		return h.mapFlowError(c, err, "Worker deletion", "WORKER_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateMotorModel adds a motor model to the dictionary
// @Summary Create Motor Model
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param request body dto.CreateMotorModelRequest true "Model data"
// @Success 201 {object} dto.APIResponse{data=dto.MotorModelResponse} "Model created"
// @Router /api/v1/motor-models [post]
func (h *DictionaryHandler) CreateMotorModel(c fiber.Ctx) error {
	var req dto.CreateMotorModelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.CreateMotorModel(h.createRequestContext(c, "/api/v1/motor-models"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Motor model creation", "MODEL_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// ListMotorModels lists the motor model dictionary
// @Summary List Motor Models
// @Tags Dictionaries
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListMotorModelsResponse} "Models retrieved"
// @Router /api/v1/motor-models [get]
func (h *DictionaryHandler) ListMotorModels(c fiber.Ctx) error {
	var filter models.MotorModelFilter
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	limit, offset := parsePagination(c)

	result, err := h.dictionaryFlow.ListMotorModels(h.createRequestContext(c, "/api/v1/motor-models"), filter, limit, offset)
	if err != nil {
		return h.mapFlowError(c, err, "Motor model listing", "MODEL_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateMotorModel updates a motor model's name or aliases
// @Summary Update Motor Model
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param code path string true "Model code"
// @Param request body dto.UpdateMotorModelRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MotorModelResponse} "Model updated"
// @Router /api/v1/motor-models/{code} [put]
func (h *DictionaryHandler) UpdateMotorModel(c fiber.Ctx) error {
	var req dto.UpdateMotorModelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.UpdateMotorModel(h.createRequestContext(c, "/api/v1/motor-models/:code"), c.Params("code"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Motor model update", "MODEL_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteMotorModel removes a motor model from the dictionary
// @Summary Delete Motor Model
// @Tags Dictionaries
// @Produce json
// @Param code path string true "Model code"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteByCodeResponse} "Model deleted"
// @Router /api/v1/motor-models/{code} [delete]
func (h *DictionaryHandler) DeleteMotorModel(c fiber.Ctx) error {
	result, err := h.dictionaryFlow.DeleteMotorModel(h.createRequestContext(c, "/api/v1/motor-models/:code"), c.Params("code"))
	if err != nil {
		return h.mapFlowError(c, err, "Motor model deletion", "MODEL_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateProcess adds a process to the dictionary
// @Summary Create Process
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param request body dto.CreateProcessRequest true "Process data"
// @Success 201 {object} dto.APIResponse{data=dto.ProcessResponse} "Process created"
// @Router /api/v1/processes [post]
func (h *DictionaryHandler) CreateProcess(c fiber.Ctx) error {
	var req dto.CreateProcessRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.CreateProcess(h.createRequestContext(c, "/api/v1/processes"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Process creation", "PROCESS_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// ListProcesses lists the process dictionary
// @Summary List Processes
// @Tags Dictionaries
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListProcessesResponse} "Processes retrieved"
// @Router /api/v1/processes [get]
func (h *DictionaryHandler) ListProcesses(c fiber.Ctx) error {
	var filter models.ProcessFilter
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	limit, offset := parsePagination(c)

	result, err := h.dictionaryFlow.ListProcesses(h.createRequestContext(c, "/api/v1/processes"), filter, limit, offset)
	if err != nil {
		return h.mapFlowError(c, err, "Process listing", "PROCESS_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateProcess updates a process's name or description
// @Summary Update Process
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param code path string true "Process code"
// @Param request body dto.UpdateProcessRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProcessResponse} "Process updated"
// @Router /api/v1/processes/{code} [put]
func (h *DictionaryHandler) UpdateProcess(c fiber.Ctx) error {
	var req dto.UpdateProcessRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.UpdateProcess(h.createRequestContext(c, "/api/v1/processes/:code"), c.Params("code"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Process update", "PROCESS_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteProcess removes a process from the dictionary
// @Summary Delete Process
// @Tags Dictionaries
// @Produce json
// @Param code path string true "Process code"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteByCodeResponse} "Process deleted"
// @Router /api/v1/processes/{code} [delete]
func (h *DictionaryHandler) DeleteProcess(c fiber.Ctx) error {
	result, err := h.dictionaryFlow.DeleteProcess(h.createRequestContext(c, "/api/v1/processes/:code"), c.Params("code"))
	if err != nil {
		return h.mapFlowError(c, err, "Process deletion", "PROCESS_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateCat1 adds a work-section category
// @Summary Create Work-Section Category
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse} "Category created"
// @Router /api/v1/process-cat1 [post]
func (h *DictionaryHandler) CreateCat1(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.CreateCat1(h.createRequestContext(c, "/api/v1/process-cat1"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Work-section category creation", "CAT1_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// ListCat1 lists work-section categories
// @Summary List Work-Section Categories
// @Tags Dictionaries
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListCategoriesResponse} "Categories retrieved"
// @Router /api/v1/process-cat1 [get]
func (h *DictionaryHandler) ListCat1(c fiber.Ctx) error {
	limit, offset := parsePagination(c)
	result, err := h.dictionaryFlow.ListCat1(h.createRequestContext(c, "/api/v1/process-cat1"), limit, offset)
	if err != nil {
		return h.mapFlowError(c, err, "Work-section category listing", "CAT1_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateCat1 renames a work-section category
// @Summary Update Work-Section Category
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param code path string true "Category code"
// @Param request body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category updated"
// @Router /api/v1/process-cat1/{code} [put]
func (h *DictionaryHandler) UpdateCat1(c fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.UpdateCat1(h.createRequestContext(c, "/api/v1/process-cat1/:code"), c.Params("code"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Work-section category update", "CAT1_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteCat1 removes a work-section category
// @Summary Delete Work-Section Category
// @Tags Dictionaries
// @Produce json
// @Param code path string true "Category code"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteByCodeResponse} "Category deleted"
// @Router /api/v1/process-cat1/{code} [delete]
func (h *DictionaryHandler) DeleteCat1(c fiber.Ctx) error {
	result, err := h.dictionaryFlow.DeleteCat1(h.createRequestContext(c, "/api/v1/process-cat1/:code"), c.Params("code"))
	if err != nil {
		return h.mapFlowError(c, err, "Work-section category deletion", "CAT1_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateCat2 adds a process category
// @Summary Create Process Category
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse} "Category created"
// @Router /api/v1/process-cat2 [post]
func (h *DictionaryHandler) CreateCat2(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.CreateCat2(h.createRequestContext(c, "/api/v1/process-cat2"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Process category creation", "CAT2_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// ListCat2 lists process categories
// @Summary List Process Categories
// @Tags Dictionaries
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListCategoriesResponse} "Categories retrieved"
// @Router /api/v1/process-cat2 [get]
func (h *DictionaryHandler) ListCat2(c fiber.Ctx) error {
	limit, offset := parsePagination(c)
	result, err := h.dictionaryFlow.ListCat2(h.createRequestContext(c, "/api/v1/process-cat2"), limit, offset)
	if err != nil {
		return h.mapFlowError(c, err, "Process category listing", "CAT2_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateCat2 renames a process category
// @Summary Update Process Category
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param code path string true "Category code"
// @Param request body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category updated"
// @Router /api/v1/process-cat2/{code} [put]
func (h *DictionaryHandler) UpdateCat2(c fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validateRequest(c, &req); err != nil {
		return err
	}

	result, err := h.dictionaryFlow.UpdateCat2(h.createRequestContext(c, "/api/v1/process-cat2/:code"), c.Params("code"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Process category update", "CAT2_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteCat2 removes a process category
// @Summary Delete Process Category
// @Tags Dictionaries
// @Produce json
// @Param code path string true "Category code"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteByCodeResponse} "Category deleted"
// @Router /api/v1/process-cat2/{code} [delete]
func (h *DictionaryHandler) DeleteCat2(c fiber.Ctx) error {
	result, err := h.dictionaryFlow.DeleteCat2(h.createRequestContext(c, "/api/v1/process-cat2/:code"), c.Params("code"))
	if err != nil {
		return h.mapFlowError(c, err, "Process category deletion", "CAT2_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *DictionaryHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
