package domain

import "time"

// TokenPair is what the login and refresh endpoints return: a short-lived
// access token (JWT) and the opaque refresh token.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // access token lifetime
}

// RefreshToken models the stored refresh token record. The token value is an
// opaque, crypto-random string, unique across all live tokens. A user may
// hold several live tokens at once (one per device); issuing a new token
// never replaces an existing one.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ExpiredAt reports whether the token's expiry lies strictly before now.
func (t RefreshToken) ExpiredAt(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
