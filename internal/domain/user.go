package domain

// Role is the claim issued by the external identity provider.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

// Identity is the authenticated caller as asserted by the identity provider.
// The backend never stores accounts; it only consumes these claims.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
