package models

import (
	"github.com/cylserv/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	Name       string `gorm:"type:varchar(200);not null;index"`
	Phone      string `gorm:"type:varchar(50);index"`
	Email      string `gorm:"type:varchar(200);index"`
	Address    string `gorm:"type:text"`
	VesselName string `gorm:"type:varchar(200)"`
	Notes      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to the domain aggregate
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		VesselName:        m.VesselName,
		Notes:             m.Notes,
	}
}

// FromDomain populates the model from the domain aggregate
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.VesselName = c.VesselName
	m.Notes = c.Notes
}
