package partner

import (
	"context"

	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles the customer rolodex. Deletion is guarded: a
// customer owning any cylinders, quotes, invoices, or certificates is never
// deleted; the caller gets the itemized dependent counts instead.
type CustomerService struct {
	customerRepo    partner.CustomerRepository
	relationCounter partner.RelationCounter
	logger          *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, relationCounter partner.RelationCounter, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		relationCounter: relationCounter,
		logger:          logger.Named("partner"),
	}
}

// Create adds a customer to the rolodex
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Phone, req.Email, req.Address, req.VesselName, req.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.String("id", customer.ID.String()))
	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// Update replaces a customer's editable details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.Phone, req.Email, req.Address, req.VesselName, req.Notes); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// List returns customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = NewCustomerResponse(&customers[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Delete removes a customer if nothing references it. When dependent rows
// exist the deletion is refused with a RelationConflictError carrying the
// itemized counts; nothing is removed.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}

	counts, err := s.relationCounter.CountRelations(ctx, id)
	if err != nil {
		return err
	}
	if counts.Total() > 0 {
		s.logger.Warn("customer delete refused",
			zap.String("id", id.String()),
			zap.Int64("tubes", counts.Tubes),
			zap.Int64("quotes", counts.Quotes),
			zap.Int64("invoices", counts.Invoices),
			zap.Int64("certificates", counts.Certificates))
		return shared.NewRelationConflictError(counts)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("id", id.String()))
	return nil
}
