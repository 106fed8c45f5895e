// Package refreshtokens keeps the opaque refresh tokens issued at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, valid for validity from now.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound for an unknown token.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes token. It returns common.ErrorNotFound when the token was
	// already gone, so a concurrent rotation can only succeed once.
	Delete(ctx context.Context, token string) error
}
