package auth

import "time"

// User represents a learner account.
type User struct {
	ID           int64
	FullName     string
	PhoneNumber  string
	Age          int
	Class        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
