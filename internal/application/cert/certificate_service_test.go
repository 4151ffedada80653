package cert

import (
	"context"
	"testing"
	"time"

	domaincert "github.com/cylserv/backend/internal/domain/cert"
	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/numbering"
	domainpartner "github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCertificateRepository is a mock implementation of cert.CertificateRepository
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) InsertBatch(ctx context.Context, rows []domaincert.Certificate) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindByNumber(ctx context.Context, certificateNumber string) ([]domaincert.Certificate, error) {
	args := m.Called(ctx, certificateNumber)
	return args.Get(0).([]domaincert.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]domaincert.Certificate, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domaincert.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) DeleteByNumber(ctx context.Context, certificateNumber string) (int64, error) {
	args := m.Called(ctx, certificateNumber)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCertificateRepository) CountBatchesByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCylinderRepository is a mock implementation of fleet.CylinderRepository
type MockCylinderRepository struct {
	mock.Mock
}

func (m *MockCylinderRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Cylinder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) FindBySerial(ctx context.Context, serial string) (*fleet.Cylinder, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]fleet.Cylinder, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]fleet.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Cylinder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fleet.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) FindExpiringBy(ctx context.Context, cutoff time.Time) ([]fleet.Cylinder, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]fleet.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	args := m.Called(ctx, serial)
	return args.Bool(0), args.Error(1)
}

func (m *MockCylinderRepository) Save(ctx context.Context, cylinder *fleet.Cylinder) error {
	args := m.Called(ctx, cylinder)
	return args.Error(0)
}

func (m *MockCylinderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCylinderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCylinderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCounterRepository is a mock implementation of numbering.CounterRepository
type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) Next(ctx context.Context, category numbering.Category, year int) (int, error) {
	args := m.Called(ctx, category, year)
	return args.Int(0), args.Error(1)
}

func (m *MockCounterRepository) Current(ctx context.Context, category numbering.Category, year int) (int, error) {
	args := m.Called(ctx, category, year)
	return args.Int(0), args.Error(1)
}

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

// =============================================================================
// Fixtures
// =============================================================================

type certMocks struct {
	certs     *MockCertificateRepository
	cylinders *MockCylinderRepository
	counters  *MockCounterRepository
	customers *MockCustomerRepository
}

func newCertificateServiceUnderTest() (*CertificateService, certMocks) {
	m := certMocks{
		certs:     new(MockCertificateRepository),
		cylinders: new(MockCylinderRepository),
		counters:  new(MockCounterRepository),
		customers: new(MockCustomerRepository),
	}
	scope := NewNoOpTransactionScope(m.certs, m.counters)
	svc := NewCertificateService(scope, m.certs, m.cylinders, m.customers, zap.NewNop())
	return svc, m
}

func ownedCylinder(t *testing.T, customerID uuid.UUID, serial string) *fleet.Cylinder {
	t.Helper()
	c, err := fleet.NewCylinder(customerID, serial, "CO2",
		decimal.NewFromInt(6), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return c
}

// =============================================================================
// Tests
// =============================================================================

func TestCertificateService_IssueBatch(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("mints one number covering every row", func(t *testing.T) {
		svc, m := newCertificateServiceUnderTest()

		customerID := uuid.New()
		first := ownedCylinder(t, customerID, "CYL-2025-00001")
		second := ownedCylinder(t, customerID, "CYL-2025-00002")

		m.customers.On("ExistsByID", ctx, customerID).Return(true, nil)
		m.cylinders.On("FindByID", ctx, first.ID).Return(first, nil)
		m.cylinders.On("FindByID", ctx, second.ID).Return(second, nil)
		m.counters.On("Next", ctx, numbering.CategoryCertificate, 2025).Return(3, nil)
		m.certs.On("InsertBatch", ctx, mock.MatchedBy(func(rows []domaincert.Certificate) bool {
			if len(rows) != 2 {
				return false
			}
			return rows[0].CertificateNumber == "CERT-2025-00003" &&
				rows[1].CertificateNumber == "CERT-2025-00003"
		})).Return(nil)

		result, err := svc.IssueBatch(ctx, IssueBatchRequest{
			CustomerID:  customerID,
			CylinderIDs: []uuid.UUID{first.ID, second.ID},
			IssueDate:   issueDate,
			VesselName:  "MV Kalypso",
			Tonnage:     decimal.NewFromInt(4800),
		})
		require.NoError(t, err)
		assert.Equal(t, "CERT-2025-00003", result.CertificateNumber)
		assert.Equal(t, 2, result.Rows)
		m.certs.AssertExpectations(t)
	})

	t.Run("rejects a cross customer batch before minting a number", func(t *testing.T) {
		svc, m := newCertificateServiceUnderTest()

		customerID := uuid.New()
		owned := ownedCylinder(t, customerID, "CYL-2025-00001")
		foreign := ownedCylinder(t, uuid.New(), "CYL-2025-00002")

		m.customers.On("ExistsByID", ctx, customerID).Return(true, nil)
		m.cylinders.On("FindByID", ctx, owned.ID).Return(owned, nil)
		m.cylinders.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err := svc.IssueBatch(ctx, IssueBatchRequest{
			CustomerID:  customerID,
			CylinderIDs: []uuid.UUID{owned.ID, foreign.ID},
			IssueDate:   issueDate,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CROSS_CUSTOMER_BATCH", domainErr.Code)
		m.counters.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
		m.certs.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty selection", func(t *testing.T) {
		svc, _ := newCertificateServiceUnderTest()

		_, err := svc.IssueBatch(ctx, IssueBatchRequest{CustomerID: uuid.New()})
		assert.ErrorIs(t, err, shared.ErrEmptySelection)
	})
}

func TestCertificateService_DeleteByNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the whole batch", func(t *testing.T) {
		svc, m := newCertificateServiceUnderTest()
		m.certs.On("DeleteByNumber", ctx, "CERT-2025-00003").Return(int64(2), nil)

		deleted, err := svc.DeleteByNumber(ctx, "CERT-2025-00003")
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		svc, m := newCertificateServiceUnderTest()
		m.certs.On("DeleteByNumber", ctx, "CERT-2025-09999").Return(int64(0), nil)

		_, err := svc.DeleteByNumber(ctx, "CERT-2025-09999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
