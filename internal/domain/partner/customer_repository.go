package partner

import (
	"context"

	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository manages persistence of the Customer aggregate
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RelationCounter reports the dependent rows that reference a customer
// across the cylinder, quote, and certificate tables. Customer deletion
// consults it and refuses with the itemized counts when any are non-zero.
type RelationCounter interface {
	CountRelations(ctx context.Context, customerID uuid.UUID) (shared.RelationCounts, error)
}
