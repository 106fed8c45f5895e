// Package profiles stores public profile cards in PostgreSQL.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) CreateEmpty(ctx context.Context, id string) error {
	query := `INSERT INTO profiles (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	query :=
		`SELECT id, name, title, bio, email, twitter, linkedin, github, avatar, updated_at
		 FROM profiles
		 WHERE id = $1`

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Title, &p.Bio, &p.Email,
		&p.Twitter, &p.LinkedIn, &p.GitHub, &p.Avatar, &p.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (id, name, title, bio, email, twitter, linkedin, github, avatar, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   title = EXCLUDED.title,
		   bio = EXCLUDED.bio,
		   email = EXCLUDED.email,
		   twitter = EXCLUDED.twitter,
		   linkedin = EXCLUDED.linkedin,
		   github = EXCLUDED.github,
		   avatar = EXCLUDED.avatar,
		   updated_at = now()
		 RETURNING updated_at`

	out := *p
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Title, p.Bio, p.Email, p.Twitter, p.LinkedIn, p.GitHub, p.Avatar,
	).Scan(&out.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}
