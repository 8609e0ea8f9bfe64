package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"reviewflow/internal/errdefs"
)

func mapErr(err error) int {
	switch {
	case errors.Is(err, errdefs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errdefs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errdefs.ErrNotFound), errors.Is(err, errdefs.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errdefs.ErrStaleState), errors.Is(err, errdefs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errdefs.ErrStoreUnavailable), errors.Is(err, errdefs.ErrBlobUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError keeps 4xx messages (they name the failing field) and hides
// 5xx internals.
func writeError(w http.ResponseWriter, err error) {
	statusCode := mapErr(err)
	if statusCode < http.StatusInternalServerError {
		writeErrorJSON(w, statusCode, err.Error())
		return
	}
	writeErrorJSON(w, statusCode, http.StatusText(statusCode))
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	w.Write(resp)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "failed to serialize response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}
