package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeCredentialInvalid, http.StatusBadRequest},
		{CodeExampleTooShort, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeScriptNotFound, http.StatusNotFound},
		{CodeSessionNotFound, http.StatusNotFound},
		{CodeCredentialExists, http.StatusConflict},
		{CodeUpstreamTransient, http.StatusTooManyRequests},
		{CodeNoCredentials, http.StatusServiceUnavailable},
		{CodeUpstreamTimeout, http.StatusGatewayTimeout},
		{CodeUpstreamFatal, http.StatusBadGateway},
		{CodeEmptyResponse, http.StatusBadGateway},
		{CodePersistenceError, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, New(tc.code, "x").HTTPStatus, "code %s", tc.code)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "failed to query credentials")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), string(CodeDatabaseError))
}

func TestAsAppErrorPassesThrough(t *testing.T) {
	orig := New(CodeNoCredentials, "no active credentials available")

	appErr := AsAppError(orig)
	assert.Same(t, orig, appErr)
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	appErr := AsAppError(errors.New("boom"))

	require.NotNil(t, appErr)
	assert.Equal(t, CodeUnknown, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
}

func TestErrorsAsMatchesPredefined(t *testing.T) {
	var appErr *AppError
	require.ErrorAs(t, ErrScriptNotFound, &appErr)
	assert.Equal(t, CodeScriptNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}
