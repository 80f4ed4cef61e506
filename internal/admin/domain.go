package admin

import (
	"errors"
	"time"
)

// Admin represents the platform administrator account.
type Admin struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ErrAlreadyRegistered is returned when registration runs after an admin
// account exists. The deployment carries exactly one admin.
var ErrAlreadyRegistered = errors.New("admin already registered")
