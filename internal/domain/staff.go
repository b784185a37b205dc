package domain

// StaffMember is the engine's read-only view of a staff record owned by the
// external directory. Identity and activity status are the only fields the
// assignment algorithms consult.
type StaffMember struct {
	ID     int64
	Name   string
	Active bool
}

// Role of an authenticated caller. Identity and role are supplied per
// request; the engine keeps no session state.
type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleStaff || r == RoleAdmin
}
