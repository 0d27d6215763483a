package models

import (
	"errors"
	"fmt"
)

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

// Predefined error codes for common API errors.
const (
	// Generic
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeMethodNotAllowed    ErrorCode = "method_not_allowed"

	// Validation
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeInvalidFormat    ErrorCode = "invalid_format"
	ErrorCodeRangeInvalid     ErrorCode = "range_invalid"

	// Resource Specific
	ErrorCodeResourceNotFound  ErrorCode = "resource_not_found"
	ErrorCodeDuplicateResource ErrorCode = "duplicate_resource"
)

// Messages returned to API callers.
const (
	MsgSensorNotFound   = "Sensor not found"
	MsgSensorExists     = "Sensor already exists"
	MsgValidationFailed = "Validation failed"
	MsgUnauthorized     = "Unauthorized - Invalid or missing API key"
	MsgInternalError    = "Internal server error"
	MsgInvalidJSON      = "Invalid JSON body"
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
)

var (
	// ErrSensorNotFound is returned when no record has the requested id.
	ErrSensorNotFound = errors.New("sensor not found")
	// ErrSensorExists is returned when a create would overwrite a record.
	ErrSensorExists = errors.New("sensor already exists")
)

// RangeError reports a value outside the range allowed for its type and unit.
type RangeError struct {
	Type    SensorType
	Unit    string
	Value   float64
	Message string
}

func (e *RangeError) Error() string {
	return e.Message
}

// APIError is the JSON body of every error response. Code and StatusCode
// are kept for logging and are not serialised.
type APIError struct {
	Code       ErrorCode `json:"-"`
	Message    string    `json:"error"`
	Details    []string  `json:"details,omitempty"`
	StatusCode int       `json:"-"`
}

// Error makes APIError implement the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAPIError is a constructor for APIError.
func NewAPIError(code ErrorCode, message string, details []string, statusCode int) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}
