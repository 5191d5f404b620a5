// Package gateway defines the capability interface the client core expects
// from the remote backend (authentication plus loosely-typed row queries)
// and provides the HTTP/JSON implementation of it.
package gateway

import (
	"context"
	"time"
)

// RawRecord is a wire-level row: an untyped mapping of column name to value
// as decoded from the backend's JSON. Normalization into domain entities is
// the catalog mapper's job, never the gateway's.
type RawRecord = map[string]any

// User is the backend's raw representation of an authenticated principal.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}

// Session is the backend's raw sign-in response.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// Gateway is the boundary the client core depends on. It owns its own
// "current session" state: Initialize restores it from the gateway's private
// persistence and CurrentUser exposes it without any network call.
type Gateway interface {
	// Initialize restores and validates the gateway's own persisted session,
	// if any. It never fails the startup path because of a stale session.
	Initialize(ctx context.Context) error

	// SignIn authenticates with email and password. On success the gateway
	// retains the session internally and returns it.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut revokes the current session on the backend and forgets it
	// locally.
	SignOut(ctx context.Context) error

	// CurrentUser returns the in-memory current user, or nil. No network call.
	CurrentUser() *User

	// Query returns all rows of table matching the equality filter
	// (nil filter means all rows).
	Query(ctx context.Context, table string, filter map[string]string) ([]RawRecord, error)

	// QueryOne returns the single row with the given id, or ErrNotFound.
	QueryOne(ctx context.Context, table, id string) (RawRecord, error)

	// PresignImageUpload asks the backend for a presigned PUT URL for a new
	// listing photo. Returns the storage key and the URL.
	PresignImageUpload(ctx context.Context, propertyID string) (key string, url string, err error)

	// AttachImage registers an uploaded photo with its listing.
	AttachImage(ctx context.Context, propertyID, key string) error

	// Close releases underlying resources.
	Close() error
}
