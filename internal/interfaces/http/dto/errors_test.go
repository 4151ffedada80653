package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeSerialConflict, http.StatusConflict},
		{ErrCodeRelationConflict, http.StatusConflict},
		{ErrCodeCrossCustomerBatch, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeEmptySelection, http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_NEVER_DEFINED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeCrossCustomerBatch, NormalizeErrorCode("CROSS_CUSTOMER_BATCH"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("MISSING_SERIAL"))

	// Unknown codes pass through untouched.
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrCodeRelationConflict, "customer has dependent records", "req-123",
		map[string]int64{"tubes": 2})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeRelationConflict, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.NotNil(t, resp.Error.Details)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 101, 2, 50)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(101), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
