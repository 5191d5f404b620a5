// Package models holds the client-side domain entities: the authenticated
// user, the session token pair, and normalized property listings.
package models

import "time"

// User is the authenticated principal, mapped once from the backend gateway
// response and never mutated afterwards.
type User struct {
	ID           string
	Email        string
	FullName     *string
	CreatedAt    time.Time
	LastSignInAt *time.Time
}

// DisplayName returns the full name when present, the email otherwise.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}
