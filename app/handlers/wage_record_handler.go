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

// WageRecordHandlerInterface defines the contract for wage record handlers
type WageRecordHandlerInterface interface {
	CreateBatch(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// WageRecordHandler handles wage record HTTP requests
type WageRecordHandler struct {
	wageRecordFlow businessflow.WageRecordFlow
	validator      *validator.Validate
}

func NewWageRecordHandler(wageRecordFlow businessflow.WageRecordFlow) WageRecordHandlerInterface {
	return &WageRecordHandler{
		wageRecordFlow: wageRecordFlow,
		validator:      validator.New(),
	}
}

func (h *WageRecordHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *WageRecordHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateBatch creates one wage record per quota id
// @Summary Create Wage Records
// @Description Create a batch of wage records, one per quota id
// @Tags Wage Records
// @Accept json
// @Produce json
// @Param request body dto.CreateBatchRecordsRequest true "Batch data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateBatchRecordsResponse} "Batch processed"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Worker not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/salary-records/batch [post]
func (h *WageRecordHandler) CreateBatch(c fiber.Ctx) error {
	var req dto.CreateBatchRecordsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.wageRecordFlow.CreateBatch(h.createRequestContext(c, "/api/v1/salary-records/batch"), &req)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Worker not found", "WORKER_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Batch record creation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch record creation failed", "BATCH_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// List lists wage records with joined quota details
// @Summary List Wage Records
// @Tags Wage Records
// @Produce json
// @Param worker_code query string false "Worker code"
// @Param month query string false "Month (YYYY-MM)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.ListWageRecordsResponse} "Records retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/salary-records [get]
func (h *WageRecordHandler) List(c fiber.Ctx) error {
	var filter models.WageRecordFilter
	if v := c.Query("worker_code"); v != "" {
		filter.WorkerCode = &v
	}
	if v := c.Query("month"); v != "" {
		filter.Month = &v
	}
	limit, offset := parsePagination(c)

	result, err := h.wageRecordFlow.List(h.createRequestContext(c, "/api/v1/salary-records"), filter, limit, offset)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Wage record listing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Wage record listing failed", "RECORD_LIST_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Update changes a record's quota, quantity or date and re-snapshots price
// @Summary Update Wage Record
// @Tags Wage Records
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param request body dto.UpdateWageRecordRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateWageRecordResponse} "Record updated"
// @Failure 400 {object} dto.APIResponse "Validation error or quota unresolvable"
// @Failure 404 {object} dto.APIResponse "Record not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/salary-records/{id} [put]
func (h *WageRecordHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid record id", "INVALID_RECORD_ID", nil)
	}

	var req dto.UpdateWageRecordRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.wageRecordFlow.Update(h.createRequestContext(c, "/api/v1/salary-records/:id"), id, &req)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		if businessflow.IsInvalidInput(err) || businessflow.ErrorCode(err) == "RECORD_QUOTA_UNRESOLVED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Wage record update failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Wage record update failed", "RECORD_UPDATE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Delete removes a wage record
// @Summary Delete Wage Record
// @Tags Wage Records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteWageRecordResponse} "Record deleted"
// @Failure 404 {object} dto.APIResponse "Record not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/salary-records/{id} [delete]
func (h *WageRecordHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid record id", "INVALID_RECORD_ID", nil)
	}

	result, err := h.wageRecordFlow.Delete(h.createRequestContext(c, "/api/v1/salary-records/:id"), id)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Wage record not found", "RECORD_NOT_FOUND", nil)
		}
		log.Println("Wage record deletion failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Wage record deletion failed", "RECORD_DELETE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *WageRecordHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
