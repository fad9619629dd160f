package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	businessflow "github.com/dahe-motor/piecerate/business_flow"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// QuotaHandlerInterface defines the contract for quota handlers
type QuotaHandlerInterface interface {
	Resolve(c fiber.Ctx) error
	GetMatrix(c fiber.Ctx) error
	ListCombinations(c fiber.Ctx) error
	ListEffectiveDates(c fiber.Ctx) error
	GetOptions(c fiber.Ctx) error
	CreateQuota(c fiber.Ctx) error
	GetQuota(c fiber.Ctx) error
	ListQuotas(c fiber.Ctx) error
	UpdateQuota(c fiber.Ctx) error
	DeleteQuota(c fiber.Ctx) error
}

// QuotaHandler handles quota resolution, matrix and CRUD requests
type QuotaHandler struct {
	resolutionFlow businessflow.QuotaResolutionFlow
	matrixFlow     businessflow.QuotaMatrixFlow
	optionsFlow    businessflow.QuotaOptionsFlow
	quotaFlow      businessflow.QuotaFlow
	validator      *validator.Validate
}

func NewQuotaHandler(
	resolutionFlow businessflow.QuotaResolutionFlow,
	matrixFlow businessflow.QuotaMatrixFlow,
	optionsFlow businessflow.QuotaOptionsFlow,
	quotaFlow businessflow.QuotaFlow,
) QuotaHandlerInterface {
	return &QuotaHandler{
		resolutionFlow: resolutionFlow,
		matrixFlow:     matrixFlow,
		optionsFlow:    optionsFlow,
		quotaFlow:      quotaFlow,
		validator:      validator.New(),
	}
}

func (h *QuotaHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *QuotaHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Resolve resolves a quota reference against a record date
// @Summary Resolve Quota
// @Description Resolve a quota id or combination against a record date
// @Tags Quotas
// @Accept json
// @Produce json
// @Param request body dto.ResolveQuotaRequest true "Resolution request"
// @Success 200 {object} dto.APIResponse{data=dto.ResolveQuotaResponse} "Resolution outcome"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/resolve [post]
func (h *QuotaHandler) Resolve(c fiber.Ctx) error {
	var req dto.ResolveQuotaRequest
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

	result, err := h.resolutionFlow.Resolve(h.createRequestContext(c, "/api/v1/quotas/resolve"), &req)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Quota resolution failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota resolution failed", "QUOTA_RESOLUTION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetMatrix returns the pivoted price matrix for one work-section category
// @Summary Get Quota Matrix
// @Description Pivot the quotas of a work-section category valid on a date
// @Tags Quotas
// @Produce json
// @Param cat1_code query string true "Work-section category code"
// @Param cat2_code query string false "Process category code"
// @Param effective_date query string true "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.GetQuotaMatrixResponse} "Matrix retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/matrix [get]
func (h *QuotaHandler) GetMatrix(c fiber.Ctx) error {
	cat1Code := c.Query("cat1_code")
	var cat2Code *string
	if v := c.Query("cat2_code"); v != "" {
		cat2Code = &v
	}
	effectiveDate := c.Query("effective_date")

	result, err := h.matrixFlow.GetMatrix(h.createRequestContext(c, "/api/v1/quotas/matrix"), cat1Code, cat2Code, effectiveDate)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Quota matrix retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota matrix retrieval failed", "QUOTA_MATRIX_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListCombinations returns every (cat1, cat2) pair that has quota data
// @Summary List Matrix Combinations
// @Tags Quotas
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListMatrixCombinationsResponse} "Combinations retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/matrix/combinations [get]
func (h *QuotaHandler) ListCombinations(c fiber.Ctx) error {
	result, err := h.matrixFlow.ListCombinations(h.createRequestContext(c, "/api/v1/quotas/matrix/combinations"))
	if err != nil {
		log.Println("Matrix combinations retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Matrix combinations retrieval failed", "MATRIX_COMBINATIONS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListEffectiveDates returns the distinct effective dates under a filter
// @Summary List Effective Dates
// @Tags Quotas
// @Produce json
// @Param cat1_code query string false "Work-section category code"
// @Param cat2_code query string false "Process category code"
// @Success 200 {object} dto.APIResponse{data=dto.ListEffectiveDatesResponse} "Dates retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/effective-dates [get]
func (h *QuotaHandler) ListEffectiveDates(c fiber.Ctx) error {
	var cat1Code, cat2Code *string
	if v := c.Query("cat1_code"); v != "" {
		cat1Code = &v
	}
	if v := c.Query("cat2_code"); v != "" {
		cat2Code = &v
	}

	result, err := h.matrixFlow.ListEffectiveDates(h.createRequestContext(c, "/api/v1/quotas/effective-dates"), cat1Code, cat2Code)
	if err != nil {
		log.Println("Effective dates retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Effective dates retrieval failed", "EFFECTIVE_DATES_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetOptions returns the cascade option index for the entry form
// @Summary Get Quota Options
// @Tags Quotas
// @Produce json
// @Param record_date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.GetQuotaOptionsResponse} "Options retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/options [get]
func (h *QuotaHandler) GetOptions(c fiber.Ctx) error {
	var recordDate *string
	if v := c.Query("record_date"); v != "" {
		recordDate = &v
	}

	result, err := h.optionsFlow.GetOptions(h.createRequestContext(c, "/api/v1/quotas/options"), recordDate)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Quota options retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota options retrieval failed", "QUOTA_OPTIONS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CreateQuota creates one quota version
// @Summary Create Quota
// @Tags Quotas
// @Accept json
// @Produce json
// @Param request body dto.CreateQuotaRequest true "Quota data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateQuotaResponse} "Quota created"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas [post]
func (h *QuotaHandler) CreateQuota(c fiber.Ctx) error {
	var req dto.CreateQuotaRequest
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

	result, err := h.quotaFlow.Create(h.createRequestContext(c, "/api/v1/quotas"), &req)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Quota creation failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota creation failed", "QUOTA_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// GetQuota returns one quota by id
// @Summary Get Quota
// @Tags Quotas
// @Produce json
// @Param id path int true "Quota ID"
// @Success 200 {object} dto.APIResponse{data=dto.GetQuotaResponse} "Quota retrieved"
// @Failure 404 {object} dto.APIResponse "Quota not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/{id} [get]
func (h *QuotaHandler) GetQuota(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid quota id", "INVALID_QUOTA_ID", nil)
	}

	result, err := h.quotaFlow.Get(h.createRequestContext(c, "/api/v1/quotas/:id"), id)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Quota not found", "QUOTA_NOT_FOUND", nil)
		}
		log.Println("Quota retrieval failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota retrieval failed", "QUOTA_GET_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListQuotas lists quotas under optional combination filters
// @Summary List Quotas
// @Tags Quotas
// @Produce json
// @Param model_code query string false "Model code"
// @Param cat1_code query string false "Work-section category code"
// @Param cat2_code query string false "Process category code"
// @Param process_code query string false "Process code"
// @Param valid_on query string false "Only quotas valid on this date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.ListQuotasResponse} "Quotas retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas [get]
func (h *QuotaHandler) ListQuotas(c fiber.Ctx) error {
	var filter models.QuotaFilter
	if v := c.Query("model_code"); v != "" {
		filter.ModelCode = &v
	}
	if v := c.Query("cat1_code"); v != "" {
		filter.Cat1Code = &v
	}
	if v := c.Query("cat2_code"); v != "" {
		filter.Cat2Code = &v
	}
	if v := c.Query("process_code"); v != "" {
		filter.ProcessCode = &v
	}
	if v := c.Query("valid_on"); v != "" {
		d, err := utils.ParseDate(v)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "valid_on must be YYYY-MM-DD", "INVALID_DATE", nil)
		}
		filter.ValidOn = &d
	}
	limit, offset := parsePagination(c)

	result, err := h.quotaFlow.List(h.createRequestContext(c, "/api/v1/quotas"), filter, limit, offset)
	if err != nil {
		log.Println("Quota listing failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota listing failed", "QUOTA_LIST_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// UpdateQuota updates a quota's price or validity window
// @Summary Update Quota
// @Tags Quotas
// @Accept json
// @Produce json
// @Param id path int true "Quota ID"
// @Param request body dto.UpdateQuotaRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateQuotaResponse} "Quota updated"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Quota not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/{id} [put]
func (h *QuotaHandler) UpdateQuota(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid quota id", "INVALID_QUOTA_ID", nil)
	}

	var req dto.UpdateQuotaRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.quotaFlow.Update(h.createRequestContext(c, "/api/v1/quotas/:id"), id, &req)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Quota not found", "QUOTA_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Quota update failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota update failed", "QUOTA_UPDATE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// DeleteQuota deletes a quota version
// @Summary Delete Quota
// @Tags Quotas
// @Produce json
// @Param id path int true "Quota ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteQuotaResponse} "Quota deleted"
// @Failure 404 {object} dto.APIResponse "Quota not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotas/{id} [delete]
func (h *QuotaHandler) DeleteQuota(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid quota id", "INVALID_QUOTA_ID", nil)
	}

	result, err := h.quotaFlow.Delete(h.createRequestContext(c, "/api/v1/quotas/:id"), id)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Quota not found", "QUOTA_NOT_FOUND", nil)
		}
		log.Println("Quota deletion failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quota deletion failed", "QUOTA_DELETE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *QuotaHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *QuotaHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}

func parseIDParam(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parsePagination(c fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
