package partner

import (
	"time"

	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest carries the fields for a new rolodex entry
type CreateCustomerRequest struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	VesselName string
	Notes      string
}

// UpdateCustomerRequest carries the replacement details for a customer
type UpdateCustomerRequest struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	VesselName string
	Notes      string
}

// CustomerResponse is the read-model view of a customer
type CustomerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	VesselName string    `json:"vessel_name,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCustomerResponse builds the read model from the aggregate
func NewCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		VesselName: c.VesselName,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
