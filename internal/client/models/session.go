package models

// Session is the ephemeral, process-scoped token pair of an authenticated
// user. A session is either fully present (both tokens non-empty) or absent;
// partial sessions are never persisted.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"-"`
}

// Valid reports whether both tokens are present.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}
