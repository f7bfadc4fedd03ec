package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campus-events-backend/internal/security"
)

// NewRouter wires every API route. All /api routes require a valid bearer
// token; /healthz stays public for probes.
func NewRouter(
	tm security.TokenManager,
	eventHandler *EventHandler,
	regHandler *RegistrationHandler,
	checkInHandler *CheckInHandler,
	noteHandler *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tm))

	// Events
	api.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/events", eventHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", eventHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", eventHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/events/{id}/submit", eventHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/approve", eventHandler.Approve).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/request-changes", eventHandler.RequestChanges).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/publish", eventHandler.Publish).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/close", eventHandler.Close).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/cancel", eventHandler.Cancel).Methods(http.MethodPost)

	// Registrations
	api.HandleFunc("/events/{id}/register", regHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/registrations", regHandler.ListRoster).Methods(http.MethodGet)
	api.HandleFunc("/registrations", regHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/registrations/{id}", regHandler.Cancel).Methods(http.MethodDelete)

	// Check-in
	api.HandleFunc("/check-in", checkInHandler.CheckIn).Methods(http.MethodPost)

	// Notifications
	api.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	return r
}
