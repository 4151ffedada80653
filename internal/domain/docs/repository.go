package docs

import (
	"context"

	"github.com/google/uuid"
)

// QuoteRepository manages persistence of quotes
type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Quote, error)
	Save(ctx context.Context, quote *Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// InvoiceRepository manages persistence of invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
