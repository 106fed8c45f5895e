package resolver

import (
	"context"

	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// tier is one source of public pages. A lookup returns a complete pair or nil.
// Seed tiers push their hits to the remote.
type tier struct {
	name   string
	lookup func(ctx context.Context, path string) *models.PublicPage
	seed   bool
}

func localLookup(store LocalStore) func(context.Context, string) *models.PublicPage {
	return func(ctx context.Context, path string) *models.PublicPage {
		page := store.GetPageByPath(ctx, path)
		if page == nil {
			return nil
		}
		profile := store.GetProfile(ctx, page.UserID)
		if profile == nil {
			return nil
		}
		return &models.PublicPage{Profile: profile, Page: page}
	}
}
