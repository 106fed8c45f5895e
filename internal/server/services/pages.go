package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pagekeeper/internal/slug"
)

// PageService serves profiles and pages. Reads are public; writes need the
// caller to own the record.
type PageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPageService(db *sql.DB, m repomanager.RepositoryManager) *PageService {
	return &PageService{db: db, repomanager: m}
}

func (s *PageService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Profiles(s.db).Get(ctx, id)
}

func (s *PageService) GetPageByPath(ctx context.Context, path string) (*models.Page, error) {
	norm := slug.Normalize(path)
	if norm == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Pages(s.db).GetByPath(ctx, norm)
}

func (s *PageService) GetPageByUserID(ctx context.Context, userID string) (*models.Page, error) {
	if userID == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Pages(s.db).GetByUserID(ctx, userID)
}

func (s *PageService) UpsertProfile(ctx context.Context, callerID string, p *models.Profile) (*models.Profile, error) {
	if p == nil || p.ID == "" {
		return nil, common.ErrorInvalidInput
	}
	if p.ID != callerID {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Profiles(s.db).Upsert(ctx, p)
}

// UpsertPage stores p under its normalized path. A path held by another
// user is reported as common.ErrorAlreadyExists.
func (s *PageService) UpsertPage(ctx context.Context, callerID string, p *models.Page) (*models.Page, error) {
	if p == nil || p.UserID == "" {
		return nil, common.ErrorInvalidInput
	}
	if p.UserID != callerID {
		return nil, common.ErrorForbidden
	}

	rec := *p
	rec.Path = slug.Normalize(p.Path)
	if rec.Path == "" {
		return nil, common.ErrorInvalidInput
	}
	return s.repomanager.Pages(s.db).Upsert(ctx, &rec)
}
