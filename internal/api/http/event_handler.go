package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/service"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// maxPage keeps the page * page_size offset well inside int32 range.
const maxPage = 1_000_000

func pagination(r *http.Request) (int32, int32) {
	page64, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize64, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	page := int32(page64)
	pageSize := int32(pageSize64)
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

type eventListResponse struct {
	Events []domain.Event `json:"events"`
	Total  int32          `json:"total"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var in service.EventInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.eventSvc.CreateEvent(r.Context(), identity, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var in service.EventInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.eventSvc.UpdateEvent(r.Context(), identity, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventSvc.GetEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// List serves three views from one endpoint: the public open-event listing,
// an organizer's own events (?organizer=me) and the admin review queue
// (?status=PENDING).
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	page, pageSize := pagination(r)

	var (
		events []domain.Event
		total  int32
		err    error
	)
	switch {
	case r.URL.Query().Get("organizer") == "me":
		events, total, err = h.eventSvc.ListMyEvents(r.Context(), identity.UserID, page, pageSize)
	case r.URL.Query().Get("status") == string(domain.EventStatusPending):
		events, total, err = h.eventSvc.ListPendingReview(r.Context(), identity, page, pageSize)
	default:
		events, total, err = h.eventSvc.ListOpenEvents(r.Context(), page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventListResponse{Events: events, Total: total})
}

func (h *EventHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	event, err := h.eventSvc.SubmitForReview(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *EventHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req reviewRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	event, err := h.eventSvc.Approve(r.Context(), identity, mux.Vars(r)["id"], req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) RequestChanges(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	event, err := h.eventSvc.RequestChanges(r.Context(), identity, mux.Vars(r)["id"], req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Publish(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	event, err := h.eventSvc.Publish(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Close(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	event, err := h.eventSvc.Close(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req cancelRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	event, err := h.eventSvc.Cancel(r.Context(), identity, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
