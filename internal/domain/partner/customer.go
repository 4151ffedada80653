package partner

import (
	"strings"
	"time"

	"github.com/cylserv/backend/internal/domain/shared"
)

// Customer represents a customer of the cylinder service business. It is
// the aggregate root for the rolodex. Most customers are vessel operators,
// so a default vessel name travels with the customer and pre-fills
// certificate metadata.
type Customer struct {
	shared.BaseAggregateRoot
	Name       string
	Phone      string
	Email      string
	Address    string
	VesselName string
	Notes      string
}

// NewCustomer creates a customer with the required name
func NewCustomer(name string) (*Customer, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}, nil
}

// Update replaces the customer's editable details
func (c *Customer) Update(name, phone, email, address, vesselName, notes string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Address = strings.TrimSpace(address)
	c.VesselName = strings.TrimSpace(vesselName)
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact updates phone and email only
func (c *Customer) SetContact(phone, email string) {
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.UpdatedAt = time.Now()
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("MISSING_NAME", "Customer name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
