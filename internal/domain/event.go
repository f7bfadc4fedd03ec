package domain

import "time"

type EventStatus string

const (
	EventStatusDraft            EventStatus = "DRAFT"
	EventStatusPending          EventStatus = "PENDING"
	EventStatusApproved         EventStatus = "APPROVED"
	EventStatusChangesRequested EventStatus = "CHANGES_REQUESTED"
	EventStatusLive             EventStatus = "LIVE"
	EventStatusClosed           EventStatus = "CLOSED"
	EventStatusCancelled        EventStatus = "CANCELLED"
)

// transitions is the closed edge set of the event state machine. Terminal
// states (CLOSED, CANCELLED) have no outgoing edges.
var transitions = map[EventStatus][]EventStatus{
	EventStatusDraft:            {EventStatusPending, EventStatusCancelled},
	EventStatusPending:          {EventStatusApproved, EventStatusChangesRequested, EventStatusCancelled},
	EventStatusApproved:         {EventStatusLive, EventStatusCancelled},
	EventStatusChangesRequested: {EventStatusPending, EventStatusCancelled},
	EventStatusLive:             {EventStatusClosed, EventStatusCancelled},
	EventStatusClosed:           {},
	EventStatusCancelled:        {},
}

// CanTransitionTo reports whether the state machine allows moving from s to
// target.
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s EventStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsOpenForRegistration reports whether students may register while the
// event is in state s.
func (s EventStatus) IsOpenForRegistration() bool {
	return s == EventStatusApproved || s == EventStatusLive
}

type Event struct {
	ID             string      `json:"id"`
	OrganizerID    string      `json:"organizer_id"`
	ContactEmail   string      `json:"contact_email"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Venue          string      `json:"venue"`
	Category       string      `json:"category"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	Capacity       int32       `json:"capacity"`
	ConfirmedCount int32       `json:"confirmed_count"`
	// RulebookID references the uploaded rulebook in the external document
	// store.
	RulebookID  string      `json:"rulebook_id"`
	Status      EventStatus `json:"status"`
	ReviewNotes string      `json:"review_notes"`
	// Version increments on every status transition; conditional updates in
	// the repository use the status itself as the guard, the version is kept
	// for audit and caching.
	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Remaining returns the number of unclaimed seats.
func (e *Event) Remaining() int32 {
	return e.Capacity - e.ConfirmedCount
}

// IsFull reports whether the confirmed count has reached capacity.
func (e *Event) IsFull() bool {
	return e.ConfirmedCount >= e.Capacity
}

// Editable reports whether the organizer may still mutate event fields.
func (e *Event) Editable() bool {
	return e.Status == EventStatusDraft || e.Status == EventStatusChangesRequested
}
