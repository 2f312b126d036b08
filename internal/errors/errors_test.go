package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCategoryAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		category   ErrorCategory
		httpStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        NewValidationError("answers payload is malformed"),
			category:   CategoryValidation,
			httpStatus: http.StatusBadRequest,
			wantMsg:    "[VALIDATION_ERROR] answers payload is malformed",
		},
		{
			name:       "not found",
			err:        NewNotFoundError("station", "S-99"),
			category:   CategoryNotFound,
			httpStatus: http.StatusNotFound,
			wantMsg:    `[NOT_FOUND] unknown station "S-99"`,
		},
		{
			name:       "rate limit",
			err:        NewRateLimitError("60"),
			category:   CategoryRateLimit,
			httpStatus: http.StatusTooManyRequests,
			wantMsg:    "[RATE_LIMIT_EXCEEDED] Rate limit exceeded",
		},
		{
			name:       "configuration",
			err:        NewConfigurationError("question Q-01 references unknown category", nil),
			category:   CategoryConfiguration,
			httpStatus: http.StatusInternalServerError,
			wantMsg:    "[CONFIGURATION_ERROR] Configuration error",
		},
		{
			name:       "internal",
			err:        NewInternalError("unexpected state", errors.New("boom")),
			category:   CategoryInternal,
			httpStatus: http.StatusInternalServerError,
			wantMsg:    "[INTERNAL_ERROR] Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestConfigurationErrorWithMapCollectsViolations(t *testing.T) {
	err := NewConfigurationErrorWithMap("catalog validation failed", map[string]string{
		"question:Q-07": "weight 9 outside 1..5",
		"station:S-03":  "required artifact TPL-99 is not a known template",
	})
	require.NotNil(t, err)

	assert.Equal(t, CategoryConfiguration, err.Category)
	assert.Len(t, err.ErrBuilder.Details.Errors, 2)
}

func TestToAppErrorPassthroughAndWrapping(t *testing.T) {
	original := NewValidationError("bad payload")
	assert.Same(t, original, ToAppError(original))

	wrapped := ToAppError(errors.New("plain failure"))
	require.NotNil(t, wrapped)
	assert.Equal(t, CategoryInternal, wrapped.Category)

	assert.Nil(t, ToAppError(nil))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError("wrapper", cause)

	assert.ErrorIs(t, err, cause)
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	base := errors.New("base")
	wrapped := WrapError(base, "loading catalog from %s", "/etc/compass.json")
	require.Error(t, wrapped)
	assert.Equal(t, "loading catalog from /etc/compass.json: base", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}

func TestCodeNamesCoverAllCategories(t *testing.T) {
	for _, cat := range []ErrorCategory{
		CategoryValidation,
		CategoryNotFound,
		CategoryRateLimit,
		CategoryConfiguration,
		CategoryInternal,
	} {
		_, ok := codeNames[cat]
		assert.True(t, ok, fmt.Sprintf("category %s has no code name", cat))
	}
}
