package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/dbx"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	srvmodels "github.com/dmitrijs2005/pagekeeper/internal/server/models"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/pages"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byName    map[string]*srvmodels.User
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *srvmodels.User) (*srvmodels.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "id-" + u.UserName
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*srvmodels.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeRefreshRepo struct {
	tokens    map[string]*srvmodels.RefreshToken
	findErr   error
	deleteErr error
	createErr error
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &srvmodels.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*srvmodels.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(f.tokens, token)
	return nil
}

type fakeProfilesRepo struct {
	rows      map[string]*models.Profile
	createErr error
}

func (f *fakeProfilesRepo) CreateEmpty(_ context.Context, id string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[id] = &models.Profile{ID: id}
	return nil
}

func (f *fakeProfilesRepo) Get(_ context.Context, id string) (*models.Profile, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfilesRepo) Upsert(_ context.Context, p *models.Profile) (*models.Profile, error) {
	cp := *p
	cp.LastUpdated = time.Now()
	f.rows[p.ID] = &cp
	return &cp, nil
}

type fakePagesRepo struct {
	rows map[string]*models.Page
}

func (f *fakePagesRepo) GetByPath(_ context.Context, path string) (*models.Page, error) {
	p, ok := f.rows[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePagesRepo) GetByUserID(_ context.Context, userID string) (*models.Page, error) {
	for _, p := range f.rows {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePagesRepo) Upsert(_ context.Context, p *models.Page) (*models.Page, error) {
	if cur, ok := f.rows[p.Path]; ok && cur.UserID != p.UserID {
		return nil, common.ErrorAlreadyExists
	}
	cp := *p
	f.rows[p.Path] = &cp
	return &cp, nil
}

// fakeRepoManager records which handle each repository was bound to, so
// tests can tell pool access from transactional access.
type fakeRepoManager struct {
	mu       sync.Mutex
	users    *fakeUsersRepo
	refresh  *fakeRefreshRepo
	profiles *fakeProfilesRepo
	pages    *fakePagesRepo
	boundTx  []string
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    &fakeUsersRepo{byName: map[string]*srvmodels.User{}},
		refresh:  &fakeRefreshRepo{tokens: map[string]*srvmodels.RefreshToken{}},
		profiles: &fakeProfilesRepo{rows: map[string]*models.Profile{}},
		pages:    &fakePagesRepo{rows: map[string]*models.Page{}},
	}
}

func (m *fakeRepoManager) bind(name string, db dbx.DBTX) {
	if _, ok := db.(*sql.Tx); ok {
		m.mu.Lock()
		m.boundTx = append(m.boundTx, name)
		m.mu.Unlock()
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	m.bind("users", db)
	return m.users
}

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	m.bind("refresh_tokens", db)
	return m.refresh
}

func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository {
	m.bind("profiles", db)
	return m.profiles
}

func (m *fakeRepoManager) Pages(db dbx.DBTX) pages.Repository {
	m.bind("pages", db)
	return m.pages
}
