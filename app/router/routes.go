// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/app/handlers"
	"github.com/dahe-motor/piecerate/app/middleware"
	"github.com/dahe-motor/piecerate/config"
	"github.com/dahe-motor/piecerate/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app               *fiber.App
	cfg               *config.ProductionConfig
	quotaHandler      handlers.QuotaHandlerInterface
	wageRecordHandler handlers.WageRecordHandlerInterface
	dictionaryHandler handlers.DictionaryHandlerInterface
	reportHandler     handlers.ReportHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	quotaHandler handlers.QuotaHandlerInterface,
	wageRecordHandler handlers.WageRecordHandlerInterface,
	dictionaryHandler handlers.DictionaryHandlerInterface,
	reportHandler handlers.ReportHandlerInterface,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Piece Rate API",
		ServerHeader: "piecerate",
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:               app,
		cfg:               cfg,
		quotaHandler:      quotaHandler,
		wageRecordHandler: wageRecordHandler,
		dictionaryHandler: dictionaryHandler,
		reportHandler:     reportHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// Rate limiting for all API routes (aligned with nginx)
	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Quota resolution and matrix
	quotas := api.Group("/quotas")
	quotas.Post("/resolve", r.quotaHandler.Resolve)
	quotas.Get("/matrix", r.quotaHandler.GetMatrix)
	quotas.Get("/matrix/combinations", r.quotaHandler.ListCombinations)
	quotas.Get("/effective-dates", r.quotaHandler.ListEffectiveDates)
	quotas.Get("/options", r.quotaHandler.GetOptions)

	// Quota CRUD
	quotas.Post("/", r.quotaHandler.CreateQuota)
	quotas.Get("/", r.quotaHandler.ListQuotas)
	quotas.Get("/:id", r.quotaHandler.GetQuota)
	quotas.Put("/:id", r.quotaHandler.UpdateQuota)
	quotas.Delete("/:id", r.quotaHandler.DeleteQuota)

	// Wage records
	records := api.Group("/salary-records")
	records.Post("/batch", r.wageRecordHandler.CreateBatch)
	records.Get("/", r.wageRecordHandler.List)
	records.Put("/:id", r.wageRecordHandler.Update)
	records.Delete("/:id", r.wageRecordHandler.Delete)

	// Workers
	workers := api.Group("/workers")
	workers.Post("/", r.dictionaryHandler.CreateWorker)
	workers.Get("/", r.dictionaryHandler.ListWorkers)
	workers.Get("/:code", r.dictionaryHandler.GetWorker)
	workers.Put("/:code", r.dictionaryHandler.UpdateWorker)
	workers.Delete("/:code", r.dictionaryHandler.DeleteWorker)

	// Combination dictionaries
	motorModels := api.Group("/motor-models")
	motorModels.Post("/", r.dictionaryHandler.CreateMotorModel)
	motorModels.Get("/", r.dictionaryHandler.ListMotorModels)
	motorModels.Put("/:code", r.dictionaryHandler.UpdateMotorModel)
	motorModels.Delete("/:code", r.dictionaryHandler.DeleteMotorModel)

	processes := api.Group("/processes")
	processes.Post("/", r.dictionaryHandler.CreateProcess)
	processes.Get("/", r.dictionaryHandler.ListProcesses)
	processes.Put("/:code", r.dictionaryHandler.UpdateProcess)
	processes.Delete("/:code", r.dictionaryHandler.DeleteProcess)

	cat1 := api.Group("/process-cat1")
	cat1.Post("/", r.dictionaryHandler.CreateCat1)
	cat1.Get("/", r.dictionaryHandler.ListCat1)
	cat1.Put("/:code", r.dictionaryHandler.UpdateCat1)
	cat1.Delete("/:code", r.dictionaryHandler.DeleteCat1)

	cat2 := api.Group("/process-cat2")
	cat2.Post("/", r.dictionaryHandler.CreateCat2)
	cat2.Get("/", r.dictionaryHandler.ListCat2)
	cat2.Put("/:code", r.dictionaryHandler.UpdateCat2)
	cat2.Delete("/:code", r.dictionaryHandler.DeleteCat2)

	// Reports
	reports := api.Group("/reports")
	reports.Get("/workers/:code", r.reportHandler.WorkerMonthly)
	reports.Get("/salary-summary", r.reportHandler.SalarySummary)
	reports.Get("/salary-summary/export", r.reportHandler.ExportSalarySummary)
	reports.Get("/process-workload", r.reportHandler.ProcessWorkload)

	// Dashboard statistics
	api.Get("/stats", r.reportHandler.Stats)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000, // 1 year
		HSTSExcludeSubdomains:     false,
		ContentSecurityPolicy:     "default-src 'self'; frame-ancestors 'none';",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// CORS middleware
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.CORSAllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"X-Response-Time",
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return contains(contentType, "image/") ||
				contains(contentType, "video/") ||
				contains(contentType, "audio/")
		},
	}))

	// Access logging with rotation
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Stream:     r.accessLogWriter(),
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Prometheus metrics middleware
	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Custom security middleware
	r.app.Use(r.securityMiddleware)

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// accessLogWriter returns the rotating file writer when a log file is
// configured, stdout otherwise.
func (r *FiberRouter) accessLogWriter() io.Writer {
	if r.cfg.Logging.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   r.cfg.Logging.File,
		MaxSize:    r.cfg.Logging.MaxSizeMB,
		MaxBackups: r.cfg.Logging.MaxBackups,
		MaxAge:     r.cfg.Logging.MaxAgeDays,
		Compress:   r.cfg.Logging.Compress,
	}
}

// Custom security middleware
func (r *FiberRouter) securityMiddleware(c fiber.Ctx) error {
	c.Set("X-Response-Time", utils.UTCNow().Format(time.RFC3339))
	c.Set("Server", "piecerate")

	clientIP := c.IP()
	for _, blockedIP := range r.cfg.Security.BlockedIPs {
		if clientIP == blockedIP {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Access denied from this IP address",
				Error: dto.ErrorDetail{
					Code: "ACCESS_DENIED",
				},
			})
		}
	}

	return c.Next()
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "piecerate-api",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// Helper functions

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// contains checks if a string contains a substring
func contains(str, substr string) bool {
	return strings.Contains(str, substr)
}
