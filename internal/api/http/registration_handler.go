package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/service"
)

type RegistrationHandler struct {
	regSvc service.RegistrationService
}

func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

type registrationResponse struct {
	Registration *domain.Registration `json:"registration"`
	Credential   *domain.Credential   `json:"credential,omitempty"`
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	reg, cred, err := h.regSvc.Register(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registrationResponse{Registration: reg, Credential: cred})
}

func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	reg, err := h.regSvc.CancelRegistration(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registrationResponse{Registration: reg})
}

type registrationListResponse struct {
	Registrations []domain.Registration `json:"registrations"`
	Total         int32                 `json:"total"`
}

func (h *RegistrationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	page, pageSize := pagination(r)

	regs, total, err := h.regSvc.ListMyRegistrations(r.Context(), identity.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registrationListResponse{Registrations: regs, Total: total})
}

func (h *RegistrationHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	regs, err := h.regSvc.ListEventRoster(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registrationListResponse{Registrations: regs, Total: int32(len(regs))})
}
