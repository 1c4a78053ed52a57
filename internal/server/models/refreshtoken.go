package models

import "time"

// RefreshToken is an opaque server-side refresh credential.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// TokenPair is returned by login, register and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest is the body of POST /Auth/refresh and POST /Auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
