package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/logger"
)

// errorResponse is the JSON envelope for every rejected operation. Kind
// discriminates the violated rule so clients never have to parse messages.
type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	kind, status := classify(err)
	writeJSON(w, status, errorResponse{Kind: kind, Error: err.Error()})
}

func classify(err error) (string, int) {
	switch {
	case domain.IsValidation(err):
		return "VALIDATION", http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return "UNAUTHORIZED", http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return "INVALID_TRANSITION", http.StatusConflict
	case errors.Is(err, domain.ErrEventNotOpen):
		return "EVENT_NOT_OPEN", http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "ALREADY_REGISTERED", http.StatusConflict
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "CAPACITY_EXCEEDED", http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyConsumed):
		return "ALREADY_CONSUMED", http.StatusConflict
	case errors.Is(err, domain.ErrCredentialVoided):
		return "CREDENTIAL_VOIDED", http.StatusConflict
	case errors.Is(err, domain.ErrTimeout):
		return "TIMEOUT", http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUnavailable):
		return "STORAGE_UNAVAILABLE", http.StatusServiceUnavailable
	default:
		return "INTERNAL", http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validation("body", "malformed JSON")
	}
	return nil
}
