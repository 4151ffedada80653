package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with trimmed name", func(t *testing.T) {
		c, err := NewCustomer("  Poseidon Shipping  ")
		require.NoError(t, err)
		assert.Equal(t, "Poseidon Shipping", c.Name)
		assert.Equal(t, 1, c.Version)
		assert.NotZero(t, c.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("   ")
		assert.Error(t, err)
	})

	t.Run("rejects overly long name", func(t *testing.T) {
		_, err := NewCustomer(strings.Repeat("x", 201))
		assert.Error(t, err)
	})
}

func TestCustomerUpdate(t *testing.T) {
	c, err := NewCustomer("Poseidon Shipping")
	require.NoError(t, err)

	require.NoError(t, c.Update("Poseidon Maritime", "+30 210 5551234", "Ops@Poseidon.GR",
		"Piraeus", "MV Poseidon", "prefers morning calls"))
	assert.Equal(t, "Poseidon Maritime", c.Name)
	assert.Equal(t, "ops@poseidon.gr", c.Email)
	assert.Equal(t, "MV Poseidon", c.VesselName)
	assert.Equal(t, 2, c.Version)

	assert.Error(t, c.Update("", "", "", "", "", ""))
}
