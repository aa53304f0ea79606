package domain

// ActorRole is the role an authenticated caller holds in the back office.
type ActorRole string

const (
	RoleAdmin  ActorRole = "admin"
	RoleAgent  ActorRole = "agent"
	RoleClient ActorRole = "client"
)

// Actor identifies who is performing an operation. Identity is issued by the
// external authentication provider; the core only reads it.
type Actor struct {
	ID   string    `json:"id"`
	Name string    `json:"name"` // Full name; clients are matched to payments by it
	Role ActorRole `json:"role"`
}

// IsAdmin reports whether the actor may perform administrator operations.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Valid reports whether the role is one the back office recognises.
func (r ActorRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}
