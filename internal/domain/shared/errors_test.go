package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "Post not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", err)))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
}

func TestDomainError_WrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDomainError("INTERNAL_ERROR", "Failed to save post", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to save post: connection reset", err.Error())
}

func TestDomainError_WithDetailsCopies(t *testing.T) {
	withDetails := ErrInvalidInput.WithDetails("structure must start with /")

	assert.Equal(t, []string{"structure must start with /"}, withDetails.Details)
	assert.Empty(t, ErrInvalidInput.Details)
	assert.Equal(t, "INVALID_INPUT", withDetails.Code)
}
