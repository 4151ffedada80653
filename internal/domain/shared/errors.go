package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound       = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists  = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput   = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrEmptySelection = NewDomainError("EMPTY_SELECTION", "At least one item must be selected")
)

// SerialConflictError reports an attempt to insert a cylinder whose serial
// is already taken. Batch operations halt on the first occurrence; rows
// committed before the conflict are not rolled back.
type SerialConflictError struct {
	Serial string `json:"serial"`
}

// Error implements the error interface
func (e *SerialConflictError) Error() string {
	return fmt.Sprintf("serial %q already exists", e.Serial)
}

// NewSerialConflictError creates a conflict error for the given serial
func NewSerialConflictError(serial string) *SerialConflictError {
	return &SerialConflictError{Serial: serial}
}

// RelationCounts itemizes the dependent rows that block a customer deletion.
type RelationCounts struct {
	Tubes        int64 `json:"tubes"`
	Quotes       int64 `json:"quotes"`
	Invoices     int64 `json:"invoices"`
	Certificates int64 `json:"certificates"`
}

// Total returns the number of dependent rows across all relation tables
func (c RelationCounts) Total() int64 {
	return c.Tubes + c.Quotes + c.Invoices + c.Certificates
}

// RelationConflictError reports a customer deletion blocked by dependent
// rows. It always carries the itemized counts so callers can present
// "3 cylinders, 1 quote" instead of a bare refusal.
type RelationConflictError struct {
	Relations RelationCounts `json:"relations"`
}

// Error implements the error interface
func (e *RelationConflictError) Error() string {
	return fmt.Sprintf("customer has dependent records: %d cylinders, %d quotes, %d invoices, %d certificates",
		e.Relations.Tubes, e.Relations.Quotes, e.Relations.Invoices, e.Relations.Certificates)
}

// NewRelationConflictError creates a relation conflict with itemized counts
func NewRelationConflictError(counts RelationCounts) *RelationConflictError {
	return &RelationConflictError{Relations: counts}
}
