// Package session issues and resolves the opaque tokens exchanged through the
// session cookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base32"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_id"

// User is the snapshot captured at login and attached to every authenticated
// request. It is not refreshed from the database afterwards.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

// Store maps session tokens to user snapshots. Sessions live until revoked;
// there is no expiry.
type Store interface {
	Create(ctx context.Context, user User) (string, error)
	Lookup(ctx context.Context, token string) (User, bool, error)
	Revoke(ctx context.Context, token string) error
}

func generateToken() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)

	return encoder.EncodeToString(bytes), nil
}
