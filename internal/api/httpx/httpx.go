package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
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

// WriteAppError maps domain error kinds onto HTTP status codes. details
// rides along for partial failures so the caller can see what did land.
func WriteAppError(w http.ResponseWriter, err error, details interface{}) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		WriteError(w, http.StatusBadRequest, "validation", err.Error(), details)
	case apperr.KindBackendUnavailable:
		WriteError(w, http.StatusServiceUnavailable, "backend_unavailable", err.Error(), details)
	case apperr.KindPartialFailure:
		WriteError(w, http.StatusInternalServerError, "partial_failure", err.Error(), details)
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), details)
	}
}
