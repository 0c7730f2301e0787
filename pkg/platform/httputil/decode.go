package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "zkattest/pkg/domain-errors"
)

// DecodeJSON decodes a JSON request body into the target type.
// Returns the decoded value and true on success.
// On failure, writes an error response and returns nil, false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "failed to decode request body", "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return &req, true
}

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that support normalization,
// e.g. folding a tagged input variant into the canonical fields.
type Normalizable interface {
	Normalize() error
}

// DecodeAndPrepare combines JSON decoding with request preparation. It decodes
// the JSON body, then calls Normalize() and Validate() if the target type
// implements those interfaces.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger)
	if !ok {
		return nil, false
	}

	var err error
	if n, isNorm := any(req).(Normalizable); isNorm {
		err = n.Normalize()
	}
	if err == nil {
		if v, isVal := any(req).(Validatable); isVal {
			err = v.Validate()
		}
	}
	if err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "invalid request", "error", err)
		}
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			WriteError(w, err)
		} else {
			WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		}
		return nil, false
	}

	return req, true
}
