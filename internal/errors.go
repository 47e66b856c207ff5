package internal

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeStorage    ErrorType = "STORAGE_FAILURE"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate        ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDateRange   ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeRequiredField      ErrorCode = "REQUIRED_FIELD"
	ErrCodeUnknownReference   ErrorCode = "UNKNOWN_REFERENCE"
	ErrCodeStorageRead        ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageWrite       ErrorCode = "STORAGE_WRITE_FAILED"
	ErrCodeStorageEncode      ErrorCode = "STORAGE_ENCODE_FAILED"
	ErrCodeStorageDecode      ErrorCode = "STORAGE_DECODE_FAILED"
	ErrCodeStoreClosed        ErrorCode = "STORE_CLOSED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeExpenseNotFound    ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeTripNotFound       ErrorCode = "TRIP_NOT_FOUND"
	ErrCodeInvalidStatus      ErrorCode = "INVALID_EXPENSE_STATUS"
	ErrCodeInvalidTripStatus  ErrorCode = "INVALID_TRIP_STATUS"
	ErrCodeInvalidTransition  ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeUnsupportedBackend ErrorCode = "UNSUPPORTED_BACKEND"
)

type AppError struct {
	Type    ErrorType   `json:"type"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Cause   error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e with the cause attached. Sentinels are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

func NewStorageError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternal,
		Message: message,
		Cause:   cause,
	}
}

var (
	ErrExpenseNotFound         = NewNotFoundError("expense not found", ErrCodeExpenseNotFound)
	ErrTripNotFound            = NewNotFoundError("trip not found", ErrCodeTripNotFound)
	ErrInvalidExpenseStatus    = NewValidationError("invalid expense status", ErrCodeInvalidStatus)
	ErrInvalidTripStatus       = NewValidationError("invalid trip status", ErrCodeInvalidTripStatus)
	ErrInvalidStatusTransition = NewValidationError("status transition not allowed", ErrCodeInvalidTransition)
	ErrStoreClosed             = &AppError{Type: ErrorTypeInternal, Code: ErrCodeStoreClosed, Message: "store is closed"}
	ErrUnsupportedBackend      = NewValidationError("unsupported storage backend", ErrCodeUnsupportedBackend)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
