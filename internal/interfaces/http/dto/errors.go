package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeEmptySelection is used when a batch operation names no items
	ErrCodeEmptySelection = "ERR_EMPTY_SELECTION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeSerialConflict is used when a cylinder serial is already taken
	ErrCodeSerialConflict = "ERR_SERIAL_CONFLICT"
	// ErrCodeRelationConflict is used when dependent records block a deletion
	ErrCodeRelationConflict = "ERR_RELATION_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeCrossCustomerBatch is used when a certificate batch mixes customers
	ErrCodeCrossCustomerBatch = "ERR_CROSS_CUSTOMER_BATCH"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeEmptySelection: http.StatusBadRequest,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeSerialConflict:   http.StatusConflict,
	ErrCodeRelationConflict: http.StatusConflict,

	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,
	ErrCodeCrossCustomerBatch: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"EMPTY_SELECTION":      ErrCodeEmptySelection,
	"MISSING_CUSTOMER":     ErrCodeValidation,
	"MISSING_SERIAL":       ErrCodeValidation,
	"MISSING_CATEGORY":     ErrCodeValidation,
	"MISSING_FILL_DATE":    ErrCodeValidation,
	"MISSING_CYLINDER":     ErrCodeValidation,
	"MISSING_NUMBER":       ErrCodeValidation,
	"MISSING_NAME":         ErrCodeValidation,
	"INVALID_WEIGHT":       ErrCodeValidation,
	"INVALID_QUANTITY":     ErrCodeValidation,
	"INVALID_NAME":         ErrCodeValidation,
	"INVALID_TOTAL":        ErrCodeValidation,
	"CROSS_CUSTOMER_BATCH": ErrCodeCrossCustomerBatch,
}

// NormalizeErrorCode converts a domain error code to the standardized wire
// format. Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
