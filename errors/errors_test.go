package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("WithoutCause", func(t *testing.T) {
		err := NewValidationError("city cannot be empty")
		assert.Equal(t, "VALIDATION_ERROR: city cannot be empty", err.Error())
	})

	t.Run("WithCause", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := NewExternalAPIError("weather request failed", cause)
		assert.Equal(t, "EXTERNAL_API_ERROR: weather request failed (caused by: connection refused)", err.Error())
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := NewExternalAPIError("forecast request failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"Validation", NewValidationError("bad input"), ValidationError},
		{"NotFound", NewNotFoundError("city not found"), NotFoundError},
		{"Location", NewLocationError("geolocation unavailable", nil), LocationError},
		{"ExternalAPI", NewExternalAPIError("upstream failed", nil), ExternalAPIError},
		{"Cache", NewCacheError("redis unavailable", nil), CacheError},
		{"Configuration", NewConfigurationError("missing key", nil), ConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("city not found")))
	assert.False(t, IsNotFound(NewValidationError("bad input")))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
}

func TestIsLocation(t *testing.T) {
	assert.True(t, IsLocation(NewLocationError("denied", nil)))
	assert.False(t, IsLocation(NewNotFoundError("city not found")))
	assert.False(t, IsLocation(fmt.Errorf("plain error")))
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("city not found"))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, NotFoundError, appErr.Type)
}
