// Package models holds the server-side database entities.
package models

import "time"

// User is an account row. PasswordHash is a bcrypt hash and never leaves the
// server.
type User struct {
	ID               string
	Email            string
	FullName         *string
	PasswordHash     []byte
	EmailConfirmedAt *time.Time
	LastSignInAt     *time.Time
	CreatedAt        time.Time
}
