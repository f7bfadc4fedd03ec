package http

import (
	"net/http"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/service"
)

type CheckInHandler struct {
	credSvc service.CredentialService
}

func NewCheckInHandler(credSvc service.CredentialService) *CheckInHandler {
	return &CheckInHandler{credSvc: credSvc}
}

type checkInRequest struct {
	Token string `json:"token"`
}

// CheckIn consumes a credential token presented at the gate. Only staff
// roles may operate the gate.
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if identity.Role != domain.RoleAdmin && identity.Role != domain.RoleOrganizer {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req checkInRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	checkIn, err := h.credSvc.CheckIn(r.Context(), req.Token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkIn)
}
