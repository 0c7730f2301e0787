package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "zkattest/pkg/domain-errors"
)

type sampleRequest struct {
	Kind string `json:"kind"`
	Min  int    `json:"min"`

	normalized bool
}

func (r *sampleRequest) Normalize() error {
	r.Kind = strings.TrimSpace(r.Kind)
	r.normalized = true
	return nil
}

func (r *sampleRequest) Validate() error {
	if r.Kind == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "kind is required")
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}

func TestWriteErrorDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.New(dErrors.CodeUnknownStatement, "no engine for kyc_proof"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "unknown_statement_type", body["error"])
	assert.Equal(t, "no engine for kyc_proof", body["error_description"])
}

func TestWriteErrorUnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("secret internal detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForCode(dErrors.CodeNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusForCode(dErrors.CodeCircuitMismatch))
	assert.Equal(t, http.StatusNotImplemented, StatusForCode(dErrors.CodeNotImplemented))
	assert.Equal(t, http.StatusServiceUnavailable, StatusForCode(dErrors.CodeUnavailable))
	assert.Equal(t, http.StatusGatewayTimeout, StatusForCode(dErrors.CodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, StatusForCode(dErrors.CodeInternal))
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("decodes, normalizes, and validates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"kind":" age ","min":18}`))
		rec := httptest.NewRecorder()

		got, ok := DecodeAndPrepare[sampleRequest](rec, req, nil)
		require.True(t, ok)
		assert.Equal(t, "age", got.Kind)
		assert.Equal(t, 18, got.Min)
		assert.True(t, got.normalized)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
		rec := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[sampleRequest](rec, req, nil)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeBody(t, rec)["error"])
	})

	t.Run("validation failure keeps domain code", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"min":18}`))
		rec := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[sampleRequest](rec, req, nil)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_input", decodeBody(t, rec)["error"])
	})
}
