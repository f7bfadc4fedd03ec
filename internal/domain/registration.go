package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationStatusCancelled RegistrationStatus = "CANCELLED"
)

type Registration struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	// StudentID is the stable identifier issued by the external identity
	// provider.
	StudentID string `json:"student_id"`
	// StudentEmail is snapshotted at registration time so cancellation
	// notices can be delivered without a lookup against the identity
	// provider.
	StudentEmail string             `json:"student_email"`
	Status       RegistrationStatus `json:"status"`
	CreatedOn    time.Time          `json:"created_on"`
	UpdatedOn    time.Time          `json:"updated_on"`
}
