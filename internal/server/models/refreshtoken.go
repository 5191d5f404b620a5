package models

import "time"

// RefreshToken is a server-stored long-lived token subject to rotation.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
