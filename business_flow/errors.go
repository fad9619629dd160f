// Package businessflow contains the business logic for the application.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Input validation errors
	ErrRecordDateRequired   = errors.New("record date is required")
	ErrRecordDateMalformed  = errors.New("record date must be YYYY-MM-DD")
	ErrMonthMalformed       = errors.New("month must be YYYY-MM")
	ErrQuotaKeyRequired     = errors.New("either quota ID or the full combination is required")
	ErrQuotaIDListEmpty     = errors.New("at least one quota ID is required")
	ErrQuantityNegative     = errors.New("quantity must not be negative")
	ErrUnitPriceNegative    = errors.New("unit price must not be negative")
	ErrWindowInverted       = errors.New("effective date must not be after obsolete date")
	ErrCat1Required         = errors.New("work-section category is required")
	ErrCodeRequired         = errors.New("code is required")
	ErrNameRequired         = errors.New("name is required")

	// Entity lookup errors
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrQuotaNotFound      = errors.New("quota not found")
	ErrWageRecordNotFound = errors.New("wage record not found")
	ErrEntityNotFound     = errors.New("entity not found")
	ErrCodeAlreadyExists  = errors.New("code already exists")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions to check business error types

func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrQuotaNotFound) ||
		errors.Is(err, ErrWageRecordNotFound) ||
		errors.Is(err, ErrEntityNotFound)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrRecordDateRequired) ||
		errors.Is(err, ErrRecordDateMalformed) ||
		errors.Is(err, ErrMonthMalformed) ||
		errors.Is(err, ErrQuotaKeyRequired) ||
		errors.Is(err, ErrQuotaIDListEmpty) ||
		errors.Is(err, ErrQuantityNegative) ||
		errors.Is(err, ErrUnitPriceNegative) ||
		errors.Is(err, ErrWindowInverted) ||
		errors.Is(err, ErrCat1Required) ||
		errors.Is(err, ErrCodeRequired) ||
		errors.Is(err, ErrNameRequired)
}

func IsCodeConflict(err error) bool {
	return errors.Is(err, ErrCodeAlreadyExists)
}

// ErrorCode extracts the machine code of a business error, empty otherwise.
func ErrorCode(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// ErrorMessage extracts the user-facing message of a business error.
func ErrorMessage(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return "Internal error"
}
