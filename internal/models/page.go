package models

import "time"

// Page maps a normalized path to the user that owns it.
// ID is generated locally and is not guaranteed to be globally unique.
type Page struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicPage is a resolved page ready for display.
type PublicPage struct {
	Profile *Profile
	Page    *Page
}
