package fleet

import (
	"time"

	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCylinderRequest describes a single cylinder to register. When
// ManualSerial is empty a serial is minted from the cylinder counter for the
// fill date's year; a supplied serial is checked for uniqueness and used
// verbatim. ExpiryDate, when non-nil, overrides the derived fill+1y expiry.
type AddCylinderRequest struct {
	CustomerID   uuid.UUID
	Category     string
	Weight       decimal.Decimal
	FillDate     time.Time
	ExpiryDate   *time.Time
	ManualSerial string
	Location     string
}

// AddCylinderResult carries the serial of the registered cylinder
type AddCylinderResult struct {
	ID     uuid.UUID `json:"id"`
	Serial string    `json:"serial"`
}

// BulkAddLine is one cart line of a bulk add. Quantity expands the line
// into that many units; a manual serial is only valid for a single unit.
type BulkAddLine struct {
	Category     string
	Weight       decimal.Decimal
	FillDate     time.Time
	ExpiryDate   *time.Time
	ManualSerial string
	Quantity     int
}

// BulkAddRequest is a cart checkout: every line belongs to one customer
type BulkAddRequest struct {
	CustomerID uuid.UUID
	Lines      []BulkAddLine
}

// SerialGroup counts the units added for one (category, weight) pair.
// Label printing consumes these counts.
type SerialGroup struct {
	Category string          `json:"category"`
	Weight   decimal.Decimal `json:"weight"`
	Count    int             `json:"count"`
	Serials  []string        `json:"serials"`
}

// BulkAddResult reports the outcome of a bulk add. On a serial conflict the
// operation stops at the conflicting unit: AddedSerials holds everything
// committed before the stop and ConflictSerial names the loser.
type BulkAddResult struct {
	AddedSerials   []string      `json:"added_serials"`
	Groups         []SerialGroup `json:"groups"`
	ConflictSerial string        `json:"conflict_serial,omitempty"`
}

// BulkDeleteResult is the partial-failure outcome of a bulk delete
type BulkDeleteResult struct {
	Deleted   int         `json:"deleted"`
	Failed    int         `json:"failed"`
	FailedIDs []uuid.UUID `json:"failed_ids,omitempty"`
}

// BulkRefillResult reports how many rows an atomic bulk refill updated
type BulkRefillResult struct {
	Updated int `json:"updated"`
}

// CylinderResponse is the read-model view of a cylinder, with the lifecycle
// tier computed at read time.
type CylinderResponse struct {
	ID         uuid.UUID       `json:"id"`
	Serial     string          `json:"serial"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Category   string          `json:"category"`
	Weight     decimal.Decimal `json:"weight"`
	FillDate   time.Time       `json:"fill_date"`
	ExpiryDate time.Time       `json:"expiry_date"`
	Location   string          `json:"location,omitempty"`
	Tier       fleet.Tier      `json:"tier"`
}

// NewCylinderResponse builds the read model, classifying against now
func NewCylinderResponse(c *fleet.Cylinder, now time.Time) CylinderResponse {
	return CylinderResponse{
		ID:         c.ID,
		Serial:     c.Serial,
		CustomerID: c.CustomerID,
		Category:   c.Category,
		Weight:     c.Weight,
		FillDate:   c.FillDate,
		ExpiryDate: c.ExpiryDate,
		Location:   c.Location,
		Tier:       c.Tier(now),
	}
}
