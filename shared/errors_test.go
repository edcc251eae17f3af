package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppError_SentinelMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyRegistered, http.StatusConflict},
		{ErrInvalidTransition, http.StatusBadRequest},
		{ErrStoreConflict, http.StatusServiceUnavailable},
		{ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		appErr := ToAppError(tc.err)
		require.NotNil(t, appErr)
		assert.Equal(t, tc.code, appErr.StatusCode, "for %v", tc.err)
	}
}

func TestToAppError_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("%w: day 3 is locked", ErrInvalidTransition)

	appErr := ToAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestToAppError_PassesThroughAppError(t *testing.T) {
	orig := NewForbiddenError(nil, "Insufficient role")

	appErr := ToAppError(fmt.Errorf("handler: %w", orig))
	assert.Same(t, orig, appErr)
}

func TestToAppError_Nil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}

func TestGetAppError(t *testing.T) {
	_, ok := GetAppError(errors.New("plain"))
	assert.False(t, ok)

	appErr, ok := GetAppError(NewNotFoundError(nil, "Not Found"))
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
