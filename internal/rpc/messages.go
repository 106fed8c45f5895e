package rpc

import "github.com/dmitrijs2005/pagekeeper/internal/models"

type RegisterUserRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterUserResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Verifier []byte `json:"verifier"`
}

type LoginResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type GetProfileRequest struct {
	ID string `json:"id"`
}

type GetPageByPathRequest struct {
	Path string `json:"path"`
}

type GetPageByUserIDRequest struct {
	UserID string `json:"user_id"`
}

type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

type PageResponse struct {
	Page *models.Page `json:"page"`
}

type UpsertProfileRequest struct {
	Profile *models.Profile `json:"profile"`
}

type UpsertPageRequest struct {
	Page *models.Page `json:"page"`
}

type GetAvatarUploadURLRequest struct {
	ContentType string `json:"content_type"`
}

// GetAvatarUploadURLResponse holds a presigned PUT URL and the URL the
// object will be readable at once uploaded.
type GetAvatarUploadURLResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
