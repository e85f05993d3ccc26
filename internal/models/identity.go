package models

import "time"

// Identity is the decoded session token. It lives for one request. The JSON form is the
// signed-in user as the web client's auth provider reports it.
type Identity struct {
	Email     string    `json:"email"`
	Name      string    `json:"displayName,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}
