package store

import "errors"

// Domain errors surfaced to users with specific status codes.
var (
	// ErrInviteNotFound means no household matches the given invite code.
	ErrInviteNotFound = errors.New("invalid invite code")

	// ErrAlreadyMember means the user already belongs to the household.
	ErrAlreadyMember = errors.New("already a member of this household")
)
