package fleet

import (
	"context"
	"time"

	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CylinderRepository manages persistence of the Cylinder aggregate
type CylinderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cylinder, error)
	FindBySerial(ctx context.Context, serial string) (*Cylinder, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Cylinder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Cylinder, error)
	// FindExpiringBy returns cylinders whose expiry date falls on or before
	// the given cutoff, ordered soonest first. Feeds the due-for-service
	// worklist.
	FindExpiringBy(ctx context.Context, cutoff time.Time) ([]Cylinder, error)
	ExistsBySerial(ctx context.Context, serial string) (bool, error)
	Save(ctx context.Context, cylinder *Cylinder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
