package domain

import "time"

// Credential is the check-in ticket issued for a confirmed registration.
// Exactly one credential exists per confirmed registration. A credential
// whose registration has been cancelled is void; void is distinct from
// consumed and never sets ConsumedAt.
type Credential struct {
	ID             string     `json:"id"`
	RegistrationID string     `json:"registration_id"`
	Token          string     `json:"token"`
	IssuedAt       time.Time  `json:"issued_at"`
	ConsumedAt     *time.Time `json:"consumed_at,omitempty"`
}

// Consumed reports whether the credential has already been used at the gate.
func (c *Credential) Consumed() bool {
	return c.ConsumedAt != nil
}

// CheckIn is the gate-display record returned by a successful check-in.
type CheckIn struct {
	CredentialID   string    `json:"credential_id"`
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	StudentID      string    `json:"student_id"`
	StudentEmail   string    `json:"student_email"`
	ConsumedAt     time.Time `json:"consumed_at"`
}
