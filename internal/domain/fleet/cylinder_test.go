package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCylinder(t *testing.T) {
	customerID := uuid.New()
	fill := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("derives expiry as fill date plus one year", func(t *testing.T) {
		c, err := NewCylinder(customerID, "CYL-2025-00001", "CO2", decimal.NewFromInt(6), fill, nil)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), c.ExpiryDate)
		assert.Equal(t, 1, c.Version)
	})

	t.Run("accepts a manual expiry override verbatim", func(t *testing.T) {
		override := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
		c, err := NewCylinder(customerID, "CYL-2025-00002", "CO2", decimal.NewFromInt(6), fill, &override)
		require.NoError(t, err)
		assert.Equal(t, override, c.ExpiryDate)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := NewCylinder(uuid.Nil, "CYL-2025-00003", "CO2", decimal.NewFromInt(6), fill, nil)
		assert.Error(t, err)

		_, err = NewCylinder(customerID, "  ", "CO2", decimal.NewFromInt(6), fill, nil)
		assert.Error(t, err)

		_, err = NewCylinder(customerID, "CYL-2025-00003", "", decimal.NewFromInt(6), fill, nil)
		assert.Error(t, err)

		_, err = NewCylinder(customerID, "CYL-2025-00003", "CO2", decimal.NewFromInt(-1), fill, nil)
		assert.Error(t, err)

		_, err = NewCylinder(customerID, "CYL-2025-00003", "CO2", decimal.NewFromInt(6), time.Time{}, nil)
		assert.Error(t, err)
	})
}

func TestCylinderRefill(t *testing.T) {
	customerID := uuid.New()
	fill := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	override := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	c, err := NewCylinder(customerID, "CYL-2024-00010", "dry powder", decimal.NewFromInt(12), fill, &override)
	require.NoError(t, err)
	require.Equal(t, override, c.ExpiryDate)

	// Refill overwrites the manual override unconditionally.
	newFill := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Refill(newFill))
	assert.Equal(t, newFill, c.FillDate)
	assert.Equal(t, time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), c.ExpiryDate)
	assert.Equal(t, 2, c.Version)

	assert.Error(t, c.Refill(time.Time{}))
}

func TestCylinderTier(t *testing.T) {
	customerID := uuid.New()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	c, err := NewCylinder(customerID, "CYL-2024-00011", "CO2", decimal.NewFromInt(6),
		now.AddDate(-1, 0, -10), nil)
	require.NoError(t, err)
	assert.Equal(t, TierExpired, c.Tier(now))

	require.NoError(t, c.Refill(now))
	assert.Equal(t, TierNormal, c.Tier(now))
}
