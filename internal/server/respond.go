package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperr "github.com/toldot/toldot/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a message.
type ErrorDetail struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)

	var rl *apperr.RateLimitedError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	msg := apperr.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}

// statusFor maps an error to an HTTP status and error code.
func statusFor(err error) (int, apperr.Code) {
	var rl *apperr.RateLimitedError
	switch {
	case errors.As(err, &rl):
		return http.StatusTooManyRequests, apperr.ErrCodeRateLimited
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, apperr.ErrCodeTimeout
	}

	code := apperr.GetCode(err)
	switch code {
	case apperr.ErrCodeInvalidDataset:
		return http.StatusUnprocessableEntity, code
	case apperr.ErrCodeRateLimited:
		return http.StatusTooManyRequests, code
	case apperr.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	case apperr.ErrCodeUnsupported:
		return http.StatusNotImplemented, code
	}
	switch code.Class() {
	case apperr.ClassInvalid:
		return http.StatusBadRequest, code
	case apperr.ClassNotFound:
		return http.StatusNotFound, code
	case apperr.ClassUpstream:
		return http.StatusBadGateway, code
	}
	return http.StatusInternalServerError, apperr.ErrCodeInternal
}
