package docs

import (
	"strings"
	"time"

	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a billing document issued to a customer. Its number is minted
// under the invoice category in the same transaction as the insert.
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string
	CustomerID    uuid.UUID
	IssueDate     time.Time
	Total         decimal.Decimal
	Paid          bool
	Notes         string
}

// NewInvoice creates an unpaid invoice with a minted number
func NewInvoice(number string, customerID uuid.UUID, issueDate time.Time, total decimal.Decimal, notes string) (*Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("MISSING_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CUSTOMER", "Invoice must reference a customer")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Invoice total cannot be negative")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	return &Invoice{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceNumber: strings.TrimSpace(number),
		CustomerID:    customerID,
		IssueDate:     issueDate,
		Total:         total,
		Notes:         notes,
	}, nil
}

// MarkPaid flags the invoice as settled
func (i *Invoice) MarkPaid() {
	i.Paid = true
	i.UpdatedAt = time.Now()
}
