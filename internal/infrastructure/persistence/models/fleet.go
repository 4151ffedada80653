package models

import (
	"time"

	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CylinderModel is the persistence model for the Cylinder aggregate.
// Serial carries a unique index: the store is the last line of defense for
// global serial uniqueness.
type CylinderModel struct {
	AggregateModel
	Serial     string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_cylinder_serial"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category   string          `gorm:"type:varchar(100);not null"`
	Weight     decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	FillDate   time.Time       `gorm:"not null"`
	ExpiryDate time.Time       `gorm:"not null;index"`
	Location   string          `gorm:"type:text"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CylinderModel) TableName() string {
	return "cylinders"
}

// ToDomain converts the model to the domain aggregate
func (m *CylinderModel) ToDomain() *fleet.Cylinder {
	return &fleet.Cylinder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Serial:            m.Serial,
		CustomerID:        m.CustomerID,
		Category:          m.Category,
		Weight:            m.Weight,
		FillDate:          m.FillDate,
		ExpiryDate:        m.ExpiryDate,
		Location:          m.Location,
	}
}

// FromDomain populates the model from the domain aggregate
func (m *CylinderModel) FromDomain(c *fleet.Cylinder) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Serial = c.Serial
	m.CustomerID = c.CustomerID
	m.Category = c.Category
	m.Weight = c.Weight
	m.FillDate = c.FillDate
	m.ExpiryDate = c.ExpiryDate
	m.Location = c.Location
}
