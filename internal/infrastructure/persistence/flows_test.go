package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	appcert "github.com/cylserv/backend/internal/application/cert"
	appdocs "github.com/cylserv/backend/internal/application/docs"
	appfleet "github.com/cylserv/backend/internal/application/fleet"
	apppartner "github.com/cylserv/backend/internal/application/partner"
	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv wires the full stack onto one in-memory store, the same way
// cmd/server does it against the on-disk file.
type testEnv struct {
	db           *gorm.DB
	cylinders    *appfleet.CylinderService
	certificates *appcert.CertificateService
	customers    *apppartner.CustomerService
	documents    *appdocs.DocumentService
	cylinderRepo *GormCylinderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	logger := zap.NewNop()

	cylinderRepo := NewGormCylinderRepository(db)
	customerRepo := NewGormCustomerRepository(db)
	certRepo := NewGormCertificateRepository(db)

	return &testEnv{
		db: db,
		cylinders: appfleet.NewCylinderService(
			NewGormFleetScope(db), cylinderRepo, customerRepo, logger),
		certificates: appcert.NewCertificateService(
			NewGormCertScope(db), certRepo, cylinderRepo, customerRepo, logger),
		customers: apppartner.NewCustomerService(
			customerRepo, NewGormRelationCounter(db), logger),
		documents: appdocs.NewDocumentService(
			NewGormDocsScope(db), NewGormQuoteRepository(db), NewGormInvoiceRepository(db),
			customerRepo, logger),
		cylinderRepo: cylinderRepo,
	}
}

func (e *testEnv) mustCustomer(t *testing.T, name string) uuid.UUID {
	t.Helper()
	resp, err := e.customers.Create(context.Background(), apppartner.CreateCustomerRequest{Name: name})
	require.NoError(t, err)
	return resp.ID
}

func (e *testEnv) cylinderCount(t *testing.T) int64 {
	t.Helper()
	count, err := e.cylinderRepo.Count(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	return count
}

var (
	testFillDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	testWeight   = decimal.NewFromInt(6)
)

func issueRequest(customerID uuid.UUID, cylinderIDs ...uuid.UUID) appcert.IssueBatchRequest {
	return appcert.IssueBatchRequest{
		CustomerID:  customerID,
		CylinderIDs: cylinderIDs,
		IssueDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	}
}

func addRequest(customerID uuid.UUID) appfleet.AddCylinderRequest {
	return appfleet.AddCylinderRequest{
		CustomerID: customerID,
		Category:   "CO2",
		Weight:     testWeight,
		FillDate:   testFillDate,
	}
}

func TestCylinderSerialsAreSequentialWithinYear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Poseidon Shipping")

	want := []string{"CYL-2025-00001", "CYL-2025-00002", "CYL-2025-00003"}
	for _, serial := range want {
		res, err := env.cylinders.Add(ctx, addRequest(customerID))
		require.NoError(t, err)
		assert.Equal(t, serial, res.Serial)
	}

	// A different fill year draws from its own counter.
	req := addRequest(customerID)
	req.FillDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	res, err := env.cylinders.Add(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "CYL-2026-00001", res.Serial)
}

func TestBulkAddStopsAtSerialConflictKeepingEarlierUnits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Nereus Marine")

	taken := addRequest(customerID)
	taken.ManualSerial = "CYL-2024-00009"
	_, err := env.cylinders.Add(ctx, taken)
	require.NoError(t, err)

	line := func(manual string) appfleet.BulkAddLine {
		return appfleet.BulkAddLine{
			Category:     "CO2",
			Weight:       testWeight,
			FillDate:     testFillDate,
			ManualSerial: manual,
			Quantity:     1,
		}
	}
	result, err := env.cylinders.BulkAdd(ctx, appfleet.BulkAddRequest{
		CustomerID: customerID,
		Lines: []appfleet.BulkAddLine{
			line(""), line(""), line("CYL-2024-00009"), line(""), line(""),
		},
	})

	var conflict *shared.SerialConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "CYL-2024-00009", conflict.Serial)

	require.NotNil(t, result)
	assert.Equal(t, "CYL-2024-00009", result.ConflictSerial)
	assert.Equal(t, []string{"CYL-2025-00001", "CYL-2025-00002"}, result.AddedSerials)

	// The two units before the conflict stay committed; the conflicting
	// unit and everything after it never reached the store.
	assert.Equal(t, int64(3), env.cylinderCount(t))
	_, err = env.cylinderRepo.FindBySerial(ctx, "CYL-2025-00001")
	assert.NoError(t, err)
	_, err = env.cylinderRepo.FindBySerial(ctx, "CYL-2025-00003")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBulkAddExpandsQuantities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Triton Lines")

	result, err := env.cylinders.BulkAdd(ctx, appfleet.BulkAddRequest{
		CustomerID: customerID,
		Lines: []appfleet.BulkAddLine{
			{Category: "CO2", Weight: decimal.NewFromInt(6), FillDate: testFillDate, Quantity: 3},
			{Category: "DryPowder", Weight: decimal.NewFromInt(9), FillDate: testFillDate, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Len(t, result.AddedSerials, 5)
	assert.Empty(t, result.ConflictSerial)
	require.Len(t, result.Groups, 2)
	assert.Equal(t, 3, result.Groups[0].Count)
	assert.Equal(t, 2, result.Groups[1].Count)
	assert.Equal(t, int64(5), env.cylinderCount(t))
}

func TestBulkDeleteReportsPartialFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Calypso Ferries")

	first, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)
	second, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)

	missing := uuid.New()
	result, err := env.cylinders.BulkDelete(ctx, []uuid.UUID{first.ID, missing, second.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Deleted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []uuid.UUID{missing}, result.FailedIDs)
	assert.Equal(t, int64(0), env.cylinderCount(t))
}

func TestBulkRefillIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Amphitrite Tankers")

	first, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)
	second, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)

	refillDate := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("a missing cylinder rolls back the whole batch", func(t *testing.T) {
		_, err := env.cylinders.BulkRefill(ctx, []uuid.UUID{first.ID, uuid.New(), second.ID}, refillDate)
		require.Error(t, err)

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			c, err := env.cylinderRepo.FindByID(ctx, id)
			require.NoError(t, err)
			assert.True(t, c.FillDate.Equal(testFillDate), "fill date must be untouched after rollback")
		}
	})

	t.Run("every member updates when all exist", func(t *testing.T) {
		result, err := env.cylinders.BulkRefill(ctx, []uuid.UUID{first.ID, second.ID}, refillDate)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Updated)

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			c, err := env.cylinderRepo.FindByID(ctx, id)
			require.NoError(t, err)
			assert.True(t, c.FillDate.Equal(refillDate))
			assert.True(t, c.ExpiryDate.Equal(refillDate.AddDate(1, 0, 0)))
		}
	})
}

func TestCertificateBatchLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Oceanus Cargo")

	first, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)
	second, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)

	issued, err := env.certificates.IssueBatch(ctx, appcert.IssueBatchRequest{
		CustomerID:  customerID,
		CylinderIDs: []uuid.UUID{first.ID, second.ID},
		IssueDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		VesselName:  "MV Thetis",
		Tonnage:     decimal.NewFromInt(12000),
		Flag:        "MT",
		Port:        "Valletta",
	})
	require.NoError(t, err)
	assert.Equal(t, "CERT-2025-00001", issued.CertificateNumber)
	assert.Equal(t, 2, issued.Rows)

	batch, err := env.certificates.GetByNumber(ctx, issued.CertificateNumber)
	require.NoError(t, err)
	assert.Equal(t, "MV Thetis", batch.VesselName)
	assert.Len(t, batch.Rows, 2)

	deleted, err := env.certificates.DeleteByNumber(ctx, issued.CertificateNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = env.certificates.GetByNumber(ctx, issued.CertificateNumber)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCertificateBatchRejectsForeignCylinders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ownerID := env.mustCustomer(t, "Oceanus Cargo")
	otherID := env.mustCustomer(t, "Rival Shipping")

	owned, err := env.cylinders.Add(ctx, addRequest(ownerID))
	require.NoError(t, err)
	foreign, err := env.cylinders.Add(ctx, addRequest(otherID))
	require.NoError(t, err)

	_, err = env.certificates.IssueBatch(ctx, appcert.IssueBatchRequest{
		CustomerID:  ownerID,
		CylinderIDs: []uuid.UUID{owned.ID, foreign.ID},
		IssueDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CROSS_CUSTOMER_BATCH", domainErr.Code)

	// Zero rows written and no certificate number burned.
	_, err = env.certificates.GetByNumber(ctx, "CERT-2025-00001")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	rows, err := env.certificates.ListByCustomer(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCustomerDeleteBlockedByDependents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Poseidon Shipping")

	first, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)
	second, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)

	err = env.customers.Delete(ctx, customerID)
	var conflict *shared.RelationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.Relations.Tubes)
	assert.Equal(t, int64(0), conflict.Relations.Quotes)

	// The refusal leaves everything in place.
	_, err = env.customers.Get(ctx, customerID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), env.cylinderCount(t))

	// Once the fleet is gone the deletion goes through.
	_, err = env.cylinders.BulkDelete(ctx, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	require.NoError(t, env.customers.Delete(ctx, customerID))
	_, err = env.customers.Get(ctx, customerID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDocumentNumbersUseTheirOwnCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Calypso Ferries")

	issueDate := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	quote, err := env.documents.CreateQuote(ctx, appdocs.CreateDocumentRequest{
		CustomerID: customerID,
		IssueDate:  issueDate,
		Total:      decimal.NewFromFloat(1480.50),
	})
	require.NoError(t, err)
	assert.Equal(t, "QUO-2025-00001", quote.QuoteNumber)

	invoice, err := env.documents.CreateInvoice(ctx, appdocs.CreateDocumentRequest{
		CustomerID: customerID,
		IssueDate:  issueDate,
		Total:      decimal.NewFromFloat(1480.50),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-00001", invoice.InvoiceNumber)
	assert.False(t, invoice.Paid)

	paid, err := env.documents.MarkInvoicePaid(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	// Both document kinds count against the customer's deletable relations.
	err = env.customers.Delete(ctx, customerID)
	var conflict *shared.RelationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), conflict.Relations.Quotes)
	assert.Equal(t, int64(1), conflict.Relations.Invoices)
}

func TestDueForServiceAgreesWithTierAtDayBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Thetis Towage")

	// Late evening west of UTC: a raw instant cutoff at now+30d lands in
	// the middle of the last due-soon calendar day.
	zone := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, zone)
	env.cylinders.WithClock(func() time.Time { return now })

	// 30 calendar days out for the clock above, but past now+30d as an
	// instant (23:45 local on the last due-soon day).
	expiry := time.Date(2025, 7, 2, 4, 45, 0, 0, time.UTC)
	req := addRequest(customerID)
	req.FillDate = expiry.AddDate(-1, 0, 0)
	req.ExpiryDate = &expiry
	added, err := env.cylinders.Add(ctx, req)
	require.NoError(t, err)

	got, err := env.cylinders.Get(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, fleet.TierDueSoon, got.Tier)

	due, err := env.cylinders.DueForService(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, added.Serial, due[0].Serial)
}

func TestCustomerDeleteBlockedByInvoiceOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Amphitrite Lines")

	invoice, err := env.documents.CreateInvoice(ctx, appdocs.CreateDocumentRequest{
		CustomerID: customerID,
		IssueDate:  time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		Total:      decimal.NewFromFloat(320.00),
	})
	require.NoError(t, err)

	err = env.customers.Delete(ctx, customerID)
	var conflict *shared.RelationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), conflict.Relations.Invoices)
	assert.Equal(t, int64(0), conflict.Relations.Quotes)

	// The refusal leaves both the customer and the invoice in place.
	_, err = env.customers.Get(ctx, customerID)
	assert.NoError(t, err)
	invoices, err := env.documents.ListInvoicesByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, invoice.InvoiceNumber, invoices[0].InvoiceNumber)

	// Settling the paperwork does not unblock it; only deletion does.
	require.NoError(t, env.documents.DeleteInvoice(ctx, invoice.ID))
	require.NoError(t, env.customers.Delete(ctx, customerID))
}
