package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	// Arrange
	err := NotFound("customer %d not found", 42)

	// Act & Assert
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "customer 42 not found", err.Error())
}

func TestKindOf_WrappedError(t *testing.T) {
	// Arrange
	err := fmt.Errorf("handling request: %w", InsufficientStock("insufficient stock for product 7"))

	// Act & Assert
	assert.Equal(t, KindInsufficientStock, KindOf(err))
	assert.True(t, IsKind(err, KindInsufficientStock))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain error")))
}

func TestInternal_PreservesCause(t *testing.T) {
	// Arrange
	cause := fmt.Errorf("connection refused")
	err := Internal("failed to get product", cause)

	// Assert
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("absent"), http.StatusNotFound},
		{"conflict", Conflict("duplicate email"), http.StatusConflict},
		{"insufficient stock", InsufficientStock("no stock"), http.StatusConflict},
		{"invalid transition", InvalidTransition("pending to shipped"), http.StatusConflict},
		{"internal", Internal("io", fmt.Errorf("boom")), http.StatusInternalServerError},
		{"foreign", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}
