package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "verifid/pkg/domain-errors"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"state": "captured"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "captured", decode(t, rr)["state"])
}

func TestWriteErrorSurfacesClientFacingCodes(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.New(dErrors.CodeInvalidInput, "invalid stage: passport"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "invalid_input", body["error"])
	assert.Equal(t, "invalid stage: passport", body["error_description"])
}

func TestWriteErrorIncludesHint(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.New(dErrors.CodePermissionDenied, "camera permission denied").
		WithHint("Allow camera access in your browser settings and try again"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "permission_denied", body["error"])
	assert.NotEmpty(t, body["hint"])
}

func TestWriteErrorNeverLeaksInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.New(dErrors.CodeInternal, "pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, body, "error_description")
}

func TestWriteErrorPlainErrorIsInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("kaput"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, body, "error_description")
}

func TestWriteErrorUnwrapsChain(t *testing.T) {
	wrapped := dErrors.Wrap(dErrors.CodeUploadRejected, "document intake rejected upload", errors.New("status 415"))

	rr := httptest.NewRecorder()
	WriteError(rr, wrapped)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "upload_rejected", decode(t, rr)["error"])
}
