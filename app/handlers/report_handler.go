package handlers

import (
	"context"
	"log"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	businessflow "github.com/dahe-motor/piecerate/business_flow"
	"github.com/dahe-motor/piecerate/utils"
	"github.com/gofiber/fiber/v3"
)

// ReportHandlerInterface defines the contract for report handlers
type ReportHandlerInterface interface {
	WorkerMonthly(c fiber.Ctx) error
	SalarySummary(c fiber.Ctx) error
	ExportSalarySummary(c fiber.Ctx) error
	ProcessWorkload(c fiber.Ctx) error
	Stats(c fiber.Ctx) error
}

// ReportHandler handles payroll report HTTP requests
type ReportHandler struct {
	reportFlow businessflow.ReportFlow
}

func NewReportHandler(reportFlow businessflow.ReportFlow) ReportHandlerInterface {
	return &ReportHandler{reportFlow: reportFlow}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WorkerMonthly returns one worker's records and total for a month
// @Summary Worker Monthly Report
// @Tags Reports
// @Produce json
// @Param code path string true "Worker code"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=dto.WorkerMonthlyReportResponse} "Report retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid month"
// @Failure 404 {object} dto.APIResponse "Worker not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports/workers/{code} [get]
func (h *ReportHandler) WorkerMonthly(c fiber.Ctx) error {
	result, err := h.reportFlow.WorkerMonthly(h.createRequestContext(c, "/api/v1/reports/workers/:code"), c.Params("code"), c.Query("month"))
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Worker not found", "WORKER_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Worker monthly report failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Worker monthly report failed", "WORKER_REPORT_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// SalarySummary returns per-worker totals for a month
// @Summary Salary Summary
// @Tags Reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=dto.SalarySummaryResponse} "Summary retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid month"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports/salary-summary [get]
func (h *ReportHandler) SalarySummary(c fiber.Ctx) error {
	result, err := h.reportFlow.SalarySummary(h.createRequestContext(c, "/api/v1/reports/salary-summary"), c.Query("month"))
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Salary summary failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Salary summary failed", "SALARY_SUMMARY_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ExportSalarySummary downloads the monthly summary workbook
// @Summary Export Salary Summary
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {file} binary "Workbook"
// @Failure 400 {object} dto.APIResponse "Invalid month"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports/salary-summary/export [get]
func (h *ReportHandler) ExportSalarySummary(c fiber.Ctx) error {
	filename, data, err := h.reportFlow.ExportSalarySummary(h.createRequestContext(c, "/api/v1/reports/salary-summary/export"), c.Query("month"))
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Salary summary export failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Salary summary export failed", "SALARY_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// ProcessWorkload returns per-process quantity and amount totals for a month
// @Summary Process Workload Report
// @Tags Reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=dto.ProcessWorkloadResponse} "Report retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid month"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reports/process-workload [get]
func (h *ReportHandler) ProcessWorkload(c fiber.Ctx) error {
	result, err := h.reportFlow.ProcessWorkload(h.createRequestContext(c, "/api/v1/reports/process-workload"), c.Query("month"))
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.ErrorMessage(err), businessflow.ErrorCode(err), nil)
		}
		log.Println("Process workload report failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Process workload report failed", "WORKLOAD_REPORT_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Stats returns the dashboard row counts
// @Summary System Statistics
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SystemStatsResponse} "Statistics retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/stats [get]
func (h *ReportHandler) Stats(c fiber.Ctx) error {
	result, err := h.reportFlow.Stats(h.createRequestContext(c, "/api/v1/stats"))
	if err != nil {
		log.Println("System statistics failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "System statistics failed", "STATS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *ReportHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
