package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCustomer(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	customer, err := partner.NewCustomer(name)
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), customer))
	return customer.ID
}

func seedCylinder(t *testing.T, db *gorm.DB, customerID uuid.UUID, serial string, fillDate time.Time) *fleet.Cylinder {
	t.Helper()
	c, err := fleet.NewCylinder(customerID, serial, "CO2", decimal.NewFromInt(6), fillDate, nil)
	require.NoError(t, err)
	require.NoError(t, NewGormCylinderRepository(db).Save(context.Background(), c))
	return c
}

func TestGormCylinderRepository_FindExpiringBy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormCylinderRepository(db)
	customerID := seedCustomer(t, db, "Oceanus Cargo")

	// Expiry is fill date plus one year, so the fill dates below put one
	// cylinder past the cutoff, one exactly on it, and one beyond it.
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedCylinder(t, db, customerID, "CYL-2024-00001", base.AddDate(-1, 0, -10))
	seedCylinder(t, db, customerID, "CYL-2024-00002", base.AddDate(-1, 0, 0))
	seedCylinder(t, db, customerID, "CYL-2025-00001", base.AddDate(0, -1, 0))

	due, err := repo.FindExpiringBy(ctx, base)
	require.NoError(t, err)
	require.Len(t, due, 2)

	// Soonest expiry first.
	assert.Equal(t, "CYL-2024-00001", due[0].Serial)
	assert.Equal(t, "CYL-2024-00002", due[1].Serial)
}

func TestGormCylinderRepository_SerialLookups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormCylinderRepository(db)
	customerID := seedCustomer(t, db, "Triton Lines")

	fillDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seeded := seedCylinder(t, db, customerID, "CYL-2025-00007", fillDate)

	taken, err := repo.ExistsBySerial(ctx, "CYL-2025-00007")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.ExistsBySerial(ctx, "CYL-2025-00008")
	require.NoError(t, err)
	assert.False(t, free)

	found, err := repo.FindBySerial(ctx, "CYL-2025-00007")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, customerID, found.CustomerID)

	_, err = repo.FindBySerial(ctx, "CYL-2025-00008")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCylinderRepository_DeleteMissingIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCylinderRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormRelationCounter_CountsBatchesNotRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customerID := env.mustCustomer(t, "Nereus Marine")

	first, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)
	second, err := env.cylinders.Add(ctx, addRequest(customerID))
	require.NoError(t, err)

	// One batch covering two cylinders is one certificate to the user.
	_, err = env.certificates.IssueBatch(ctx, issueRequest(customerID, first.ID, second.ID))
	require.NoError(t, err)

	counter := NewGormRelationCounter(env.db)
	counts, err := counter.CountRelations(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Tubes)
	assert.Equal(t, int64(1), counts.Certificates)
	assert.Equal(t, int64(0), counts.Quotes)
	assert.Equal(t, int64(0), counts.Invoices)
	assert.Equal(t, int64(3), counts.Total())
}
