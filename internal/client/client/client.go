package client

import (
	"context"

	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

// AvatarUpload is a presigned slot for an avatar image.
type AvatarUpload struct {
	Key       string
	UploadURL string
	PublicURL string
}

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) (string, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) (string, error)
	Logout()
	Ping(ctx context.Context) error

	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetPageByPath(ctx context.Context, path string) (*models.Page, error)
	GetPageByUserID(ctx context.Context, userID string) (*models.Page, error)
	UpsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
	UpsertPage(ctx context.Context, p *models.Page) (*models.Page, error)
	GetAvatarUploadURL(ctx context.Context, contentType string) (*AvatarUpload, error)
}
