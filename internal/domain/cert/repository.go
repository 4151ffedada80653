package cert

import (
	"context"

	"github.com/google/uuid"
)

// CertificateRepository manages persistence of certificate batches
type CertificateRepository interface {
	// InsertBatch persists all rows of one certificate batch. Callers run
	// it inside a transaction together with the certificate-number
	// allocation so the batch commits whole or not at all.
	InsertBatch(ctx context.Context, rows []Certificate) error
	FindByNumber(ctx context.Context, certificateNumber string) ([]Certificate, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Certificate, error)
	// DeleteByNumber removes every row sharing the certificate number and
	// returns how many rows were removed.
	DeleteByNumber(ctx context.Context, certificateNumber string) (int64, error)
	// CountBatchesByCustomer counts distinct certificate numbers issued to
	// the customer. Feeds the customer relation guard.
	CountBatchesByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
