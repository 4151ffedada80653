package fleet

import (
	"strings"
	"time"

	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceInterval is how long a fill is valid before the cylinder is due
// again. Expiry is derived as fill date + one year unless the caller
// supplies an explicit override at creation.
const ServiceIntervalYears = 1

// Cylinder represents one tracked physical cylinder. It is the aggregate
// root for fleet operations. Serial is globally unique across all years and
// categories and matches the printed label.
type Cylinder struct {
	shared.BaseAggregateRoot
	Serial     string
	CustomerID uuid.UUID
	Category   string
	Weight     decimal.Decimal
	FillDate   time.Time
	ExpiryDate time.Time
	Location   string
}

// NewCylinder creates a cylinder for a customer. expiryOverride, when
// non-nil, is accepted verbatim and never re-derived; otherwise expiry is
// fill date + one year.
func NewCylinder(customerID uuid.UUID, serial, category string, weight decimal.Decimal, fillDate time.Time, expiryOverride *time.Time) (*Cylinder, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CUSTOMER", "Cylinder must belong to a customer")
	}
	if strings.TrimSpace(serial) == "" {
		return nil, shared.NewDomainError("MISSING_SERIAL", "Cylinder serial cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewDomainError("MISSING_CATEGORY", "Cylinder category cannot be empty")
	}
	if weight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Cylinder weight cannot be negative")
	}
	if fillDate.IsZero() {
		return nil, shared.NewDomainError("MISSING_FILL_DATE", "Cylinder fill date is required")
	}

	expiry := fillDate.AddDate(ServiceIntervalYears, 0, 0)
	if expiryOverride != nil {
		expiry = *expiryOverride
	}

	return &Cylinder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Serial:            strings.TrimSpace(serial),
		CustomerID:        customerID,
		Category:          strings.TrimSpace(category),
		Weight:            weight,
		FillDate:          fillDate,
		ExpiryDate:        expiry,
	}, nil
}

// Refill records a new fill. Expiry is recomputed as the new fill date plus
// one year, discarding any manual override from creation.
func (c *Cylinder) Refill(fillDate time.Time) error {
	if fillDate.IsZero() {
		return shared.NewDomainError("MISSING_FILL_DATE", "Refill date is required")
	}
	c.FillDate = fillDate
	c.ExpiryDate = fillDate.AddDate(ServiceIntervalYears, 0, 0)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetLocation updates the free-text location note
func (c *Cylinder) SetLocation(location string) {
	c.Location = strings.TrimSpace(location)
	c.UpdatedAt = time.Now()
}

// Tier classifies the cylinder against the given reference time
func (c *Cylinder) Tier(now time.Time) Tier {
	return Classify(c.ExpiryDate, now)
}
