package domain

const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
	RoleSecurity = "security"
)

// ValidRole reports whether r is one of the three community roles.
func ValidRole(r string) bool {
	return r == RoleResident || r == RoleAdmin || r == RoleSecurity
}

// Actor is the authenticated identity performing an operation. It is built
// from the session claims by the transport layer and passed explicitly into
// every core call; the engine never reads ambient session state.
type Actor struct {
	ID   string
	Role string
}
