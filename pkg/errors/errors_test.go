package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("bad amount"), http.StatusBadRequest},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewNotFoundError("Route"), http.StatusNotFound},
		{NewListNotFoundError("x"), http.StatusNotFound},
		{NewPlanNotFoundError("x"), http.StatusNotFound},
		{NewPlanExistsError("2024-03-01"), http.StatusConflict},
		{NewListClosedError("x"), http.StatusConflict},
		{NewResourceLockedError("pantry"), http.StatusConflict},
		{NewTooManyRequestsError(), http.StatusTooManyRequests},
		{NewDatabaseError("upsert items", stderrors.New("disk full")), http.StatusInternalServerError},
		{NewInternalError(""), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.err.Code), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestWrapAndIs(t *testing.T) {
	t.Run("AppErrorThroughFmtWrap_ShouldBeDetected", func(t *testing.T) {
		// Arrange
		base := NewItemNotFoundError("abc")
		wrapped := fmt.Errorf("loading: %w", base)

		// Act
		got := Wrap(wrapped, "ignored")

		// Assert
		require.NotNil(t, got)
		assert.Same(t, base, got)
		assert.True(t, Is(wrapped, CodeItemNotFound))
		assert.Equal(t, CodeItemNotFound, GetCode(wrapped))
	})

	t.Run("PlainError_ShouldBecomeInternal", func(t *testing.T) {
		// Arrange
		cause := stderrors.New("boom")

		// Act
		got := Wrap(cause, "generate list")

		// Assert
		assert.Equal(t, CodeInternal, got.Code)
		assert.ErrorIs(t, got, cause)
		assert.Nil(t, Wrap(nil, "nothing"))
	})
}

func TestToErrorResponse(t *testing.T) {
	err := NewDatabaseError("remove list", stderrors.New("timeout"))

	resp := ToErrorResponse(err, "req-1")

	assert.Equal(t, CodeDatabaseError, resp.Error.Code)
	assert.Equal(t, "Failed to remove list", resp.Error.Details)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.NotEmpty(t, resp.Error.Timestamp)
}

func TestNotFoundError_Metadata(t *testing.T) {
	err := NewNotFoundError("Route").WithMetadata("path", "/nope")

	assert.Equal(t, "Route not found", err.Message)
	assert.Equal(t, "/nope", err.Metadata["path"])
	assert.Equal(t, "Resource not found", NewNotFoundError("").Message)
}
