package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"NOT_FOUND", http.StatusNotFound},
		{"DUPLICATE_SLUG", http.StatusConflict},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"TAG_IN_USE", http.StatusBadRequest},
		{"CATEGORY_IN_USE", http.StatusBadRequest},
		{"INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"TOKEN_REVOKED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		// naming fallbacks
		{"INVALID_SEO_TITLE", http.StatusBadRequest},
		{"REDIRECT_NOT_FOUND", http.StatusNotFound},
		{"DUPLICATE_CODE", http.StatusConflict},
		{"MENU_IN_USE", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	empty := NewSuccessResponseWithMeta([]string{}, 0, 0, 0)
	assert.Equal(t, 1, empty.Meta.Page)
	assert.Equal(t, 20, empty.Meta.PageSize)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}

func TestErrorEnvelope(t *testing.T) {
	resp := NewErrorResponseWithRequestID("DUPLICATE_SLUG", "Slug already in use", "req-1")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "DUPLICATE_SLUG", errBody["code"])
	assert.Equal(t, "Slug already in use", errBody["message"])
	assert.Equal(t, "req-1", errBody["request_id"])
	assert.NotContains(t, errBody, "details")
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Validation failed", "", []ValidationDetail{
		{Field: "title", Message: "title is required"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "title", resp.Error.Details[0].Field)
}
