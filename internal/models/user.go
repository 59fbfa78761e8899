package models

// Role controls which operations a user may perform.
type Role string

const (
	// RoleAdmin may add members, create groups, and do everything a member can.
	RoleAdmin Role = "ADMIN"
	// RoleMember may contribute, pay, and view reports for their groups.
	RoleMember Role = "MEMBER"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleMember
}

// User is an authentication principal, keyed by phone number.
// Users and members are distinct: a user logs in and acts on a group, a
// member is a ledger identity within a group.
type User struct {
	// Phone is the user's phone number in 255xxxxxxxxx format (unique).
	Phone string

	// PINHash is the bcrypt hash of the user's 4-digit PIN.
	PINHash string

	// Role is the user's role (ADMIN or MEMBER).
	Role Role

	// GroupIDs lists the groups the user belongs to.
	GroupIDs []string

	// CreatedAt is the Unix timestamp when the user registered.
	CreatedAt int64
}

// InGroup reports whether the user belongs to the given group.
func (u *User) InGroup(groupID string) bool {
	for _, id := range u.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
