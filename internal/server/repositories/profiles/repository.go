package profiles

import (
	"context"

	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

type Repository interface {
	// CreateEmpty inserts a blank profile for a newly registered user.
	CreateEmpty(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Profile, error)
	// Upsert writes every field of p and stamps LastUpdated.
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
}
