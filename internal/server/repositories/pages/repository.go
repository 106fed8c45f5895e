package pages

import (
	"context"

	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

type Repository interface {
	GetByPath(ctx context.Context, path string) (*models.Page, error)
	// GetByUserID returns the user's earliest page.
	GetByUserID(ctx context.Context, userID string) (*models.Page, error)
	// Upsert inserts p or refreshes the page already stored under p.Path.
	// A path owned by another user yields common.ErrorAlreadyExists.
	Upsert(ctx context.Context, p *models.Page) (*models.Page, error)
}
