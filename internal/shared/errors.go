package shared

import "errors"

var (
	// ErrNoSession indicates the request carried no session artifact.
	ErrNoSession = errors.New("no session artifact")
	// ErrSessionInvalid indicates the artifact was unknown, expired or corrupt.
	ErrSessionInvalid = errors.New("invalid session")
)

// Account roles carried in the session payload.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
