package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wcraske/simpleCalendar/internal/apperr"
	"github.com/wcraske/simpleCalendar/internal/auth"
	"github.com/wcraske/simpleCalendar/internal/logger"
	"github.com/wcraske/simpleCalendar/internal/validate"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// Classify maps an error onto its HTTP status and machine-readable code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "upstream_unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}

// WriteErr writes err using the shared taxonomy. Unclassified errors are
// logged and answered with a generic 500.
func WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := Classify(err)
	msg := err.Error()
	var details interface{}

	switch status {
	case http.StatusInternalServerError:
		logger.FromContext(r.Context()).Error("request failed", "err", err)
		msg = "internal error"
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrUnknownSubject) {
			logger.FromContext(r.Context()).Debug("token rejected", "err", err)
			msg = "could not validate credentials"
		}
	}

	var verrs validate.Errs
	if errors.As(err, &verrs) {
		details = verrs
		msg = "validation failed"
	}
	WriteError(w, status, code, msg, details)
}
