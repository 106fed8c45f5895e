package models

import "time"

// Profile is the public card of a user. ID equals the auth user id.
// Contact handles are stored as typed by the user and never validated.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Bio         string    `json:"bio"`
	Email       string    `json:"email"`
	Twitter     string    `json:"twitter"`
	LinkedIn    string    `json:"linkedin"`
	GitHub      string    `json:"github"`
	Avatar      string    `json:"avatar"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// DefaultAvatar is used when the user leaves the avatar field empty.
const DefaultAvatar = "https://github.com/shadcn.png"
