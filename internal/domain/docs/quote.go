package docs

import (
	"strings"
	"time"

	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is a priced offer issued to a customer. Its number is minted under
// the quote category in the same transaction as the insert.
type Quote struct {
	shared.BaseEntity
	QuoteNumber string
	CustomerID  uuid.UUID
	IssueDate   time.Time
	Total       decimal.Decimal
	Notes       string
}

// NewQuote creates a quote with a minted number
func NewQuote(number string, customerID uuid.UUID, issueDate time.Time, total decimal.Decimal, notes string) (*Quote, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("MISSING_NUMBER", "Quote number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CUSTOMER", "Quote must reference a customer")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Quote total cannot be negative")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	return &Quote{
		BaseEntity:  shared.NewBaseEntity(),
		QuoteNumber: strings.TrimSpace(number),
		CustomerID:  customerID,
		IssueDate:   issueDate,
		Total:       total,
		Notes:       notes,
	}, nil
}
