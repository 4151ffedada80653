package partner

import (
	"context"
	"testing"

	domainpartner "github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainpartner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainpartner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainpartner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domainpartner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *domainpartner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRelationCounter is a mock implementation of partner.RelationCounter
type MockRelationCounter struct {
	mock.Mock
}

func (m *MockRelationCounter) CountRelations(ctx context.Context, customerID uuid.UUID) (shared.RelationCounts, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(shared.RelationCounts), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and saves", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockRelationCounter), zap.NewNop())

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, CreateCustomerRequest{
			Name:  "  Poseidon Shipping  ",
			Email: "OPS@Poseidon.example",
		})
		require.NoError(t, err)
		assert.Equal(t, "Poseidon Shipping", resp.Name)
		assert.Equal(t, "ops@poseidon.example", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, new(MockRelationCounter), zap.NewNop())

		_, err := svc.Create(ctx, CreateCustomerRequest{Name: "   "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_NAME", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refused while dependents exist", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		counter := new(MockRelationCounter)
		svc := NewCustomerService(repo, counter, zap.NewNop())

		customer, err := domainpartner.NewCustomer("Poseidon Shipping")
		require.NoError(t, err)
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		counter.On("CountRelations", ctx, customer.ID).
			Return(shared.RelationCounts{Tubes: 2, Quotes: 1}, nil)

		err = svc.Delete(ctx, customer.ID)

		var conflict *shared.RelationConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, int64(2), conflict.Relations.Tubes)
		assert.Equal(t, int64(1), conflict.Relations.Quotes)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("succeeds once unreferenced", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		counter := new(MockRelationCounter)
		svc := NewCustomerService(repo, counter, zap.NewNop())

		customer, err := domainpartner.NewCustomer("Poseidon Shipping")
		require.NoError(t, err)
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		counter.On("CountRelations", ctx, customer.ID).Return(shared.RelationCounts{}, nil)
		repo.On("Delete", ctx, customer.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, customer.ID))
		repo.AssertExpectations(t)
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		counter := new(MockRelationCounter)
		svc := NewCustomerService(repo, counter, zap.NewNop())

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, id), shared.ErrNotFound)
		counter.AssertNotCalled(t, "CountRelations", mock.Anything, mock.Anything)
	})
}
