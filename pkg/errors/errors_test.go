package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Creation(t *testing.T) {
	cause := errors.New("underlying error")

	err := NewValidationError("test validation error", cause)

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "test validation error", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.NotNil(t, err.Context)
}

func TestDomainError_WithContext(t *testing.T) {
	err := NewConflictError("test error", nil)

	err = err.WithContext("app_name", "web")
	err = err.WithContext("index", 1)

	assert.Equal(t, "web", err.Context["app_name"])
	assert.Equal(t, 1, err.Context["index"])
}

func TestDomainError_ErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		error    *DomainError
		expected string
	}{
		{
			name:     "error without cause",
			error:    NewValidationError("test message", nil),
			expected: "validation: test message",
		},
		{
			name:     "error with cause",
			error:    NewIOError("test message", errors.New("cause")),
			expected: "io: test message: cause",
		},
		{
			name:     "not found error",
			error:    NewNotFoundError("no manifest", nil),
			expected: "not_found: no manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.error.Error())
		})
	}
}

func TestDomainError_TypeChecking(t *testing.T) {
	validationErr := NewValidationError("validation error", nil)
	ioErr := NewIOError("io error", nil)

	assert.True(t, IsValidationError(validationErr))
	assert.False(t, IsValidationError(ioErr))

	assert.True(t, IsIOError(ioErr))
	assert.False(t, IsIOError(validationErr))

	// Type checks see through wrapping
	wrapped := fmt.Errorf("outer: %w", validationErr)
	assert.True(t, IsValidationError(wrapped))

	plain := errors.New("plain")
	assert.False(t, IsValidationError(plain))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("test error", cause)

	unwrapped := errors.Unwrap(err)
	assert.Equal(t, cause, unwrapped)
}
