// Package pages stores the path to owner mapping of public pages in
// PostgreSQL.
package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/dbx"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// timeNow is swapped in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

const pageColumns = `id, path, user_id, created_at, updated_at`

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Page, error) {
	p := &models.Page{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Path, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByPath(ctx context.Context, path string) (*models.Page, error) {
	return r.scanOne(ctx, `SELECT `+pageColumns+` FROM pages WHERE path = $1`, path)
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Page, error) {
	return r.scanOne(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE user_id = $1 ORDER BY created_at LIMIT 1`, userID)
}

// Upsert keeps id and created_at of an existing row. The conflict update is
// guarded by the owner, so a foreign path returns no row.
func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Page) (*models.Page, error) {
	query :=
		`INSERT INTO pages (id, path, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (path) DO UPDATE SET updated_at = now()
		 WHERE pages.user_id = EXCLUDED.user_id
		 RETURNING ` + pageColumns

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	out, err := r.scanOne(ctx, query, p.ID, p.Path, p.UserID, createdAt)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorAlreadyExists
	}
	return out, err
}
