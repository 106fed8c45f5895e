// Package models defines the server-side records persisted in PostgreSQL
// that are not shared with the client.
package models

import "time"

// User is an account. Salt and Verifier come from the client's key
// derivation; the server never sees the password.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
