package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/auth"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeErrorStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps a service or auth error onto an HTTP status. Unknown errors
// become 500 with a generic message so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case isValidation(err):
		writeErrorStatus(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorStatus(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrGroupNotFound):
		writeErrorStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMemberExists),
		errors.Is(err, service.ErrGroupExists),
		errors.Is(err, auth.ErrPhoneExists):
		writeErrorStatus(w, http.StatusConflict, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeErrorStatus(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidation(err error) bool {
	for _, sentinel := range []error{
		service.ErrInvalidName,
		service.ErrInvalidPhone,
		service.ErrInvalidGroupID,
		service.ErrInvalidAmount,
		service.ErrSameParty,
		service.ErrNameRequired,
		auth.ErrInvalidPIN,
		auth.ErrInvalidPhone,
		auth.ErrInvalidGroupID,
		auth.ErrInvalidRole,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// decode reads the JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
