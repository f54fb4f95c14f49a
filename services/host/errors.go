package host

import "errors"

var (
	// ErrInvalidCredentials is returned on a failed dashboard sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotOwner is returned when a host targets a resource outside its
	// ownership set. Deliberately distinct from a not-found failure so
	// the authorization boundary stays explicit.
	ErrNotOwner = errors.New("host does not own this resource")
	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("record not found")
)
