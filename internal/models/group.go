package models

// Group represents a rotating savings group (VICOBA).
// Groups are created explicitly and never deleted.
type Group struct {
	// ID is the short group identifier (3-20 alphanumeric characters),
	// chosen by the creator rather than generated.
	ID string

	// Name is the display name of the group.
	Name string

	// CreatedBy is the phone number of the user who created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
