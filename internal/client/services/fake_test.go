package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/pagekeeper/internal/client/client"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

// fakeClient is an in-memory remote gateway.
type fakeClient struct {
	mu sync.Mutex

	users    map[string]fakeUser
	profiles map[string]*models.Profile
	pages    map[string]*models.Page

	loggedIn string
	closed   bool
	down     bool

	upsertProfileErr error
	upsertPageErr    error
	avatar           *client.AvatarUpload
}

type fakeUser struct {
	id       string
	salt     []byte
	verifier []byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users:    map[string]fakeUser{},
		profiles: map[string]*models.Profile{},
		pages:    map[string]*models.Page{},
	}
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) Register(_ context.Context, username string, salt, verifier []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return "", client.ErrUnavailable
	}
	if _, ok := f.users[username]; ok {
		return "", common.ErrorAlreadyExists
	}
	id := "id-" + username
	f.users[username] = fakeUser{id: id, salt: salt, verifier: verifier}
	f.profiles[id] = &models.Profile{ID: id}
	return id, nil
}

func (f *fakeClient) GetSalt(_ context.Context, username string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, client.ErrUnavailable
	}
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.salt, nil
}

func (f *fakeClient) Login(_ context.Context, username string, verifier []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return "", client.ErrUnavailable
	}
	u, ok := f.users[username]
	if !ok || string(u.verifier) != string(verifier) {
		return "", client.ErrUnauthorized
	}
	f.loggedIn = u.id
	return u.id, nil
}

func (f *fakeClient) Logout() { f.loggedIn = "" }

func (f *fakeClient) Ping(context.Context) error {
	if f.down {
		return client.ErrUnavailable
	}
	return nil
}

func (f *fakeClient) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, client.ErrUnavailable
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeClient) GetPageByPath(_ context.Context, path string) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, client.ErrUnavailable
	}
	p, ok := f.pages[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeClient) GetPageByUserID(_ context.Context, userID string) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, client.ErrUnavailable
	}
	for _, p := range f.pages {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeClient) UpsertProfile(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, client.ErrUnavailable
	}
	if f.upsertProfileErr != nil {
		return nil, f.upsertProfileErr
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return &cp, nil
}

func (f *fakeClient) UpsertPage(_ context.Context, p *models.Page) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, client.ErrUnavailable
	}
	if f.upsertPageErr != nil {
		return nil, f.upsertPageErr
	}
	cp := *p
	f.pages[p.Path] = &cp
	return &cp, nil
}

func (f *fakeClient) GetAvatarUploadURL(context.Context, string) (*client.AvatarUpload, error) {
	if f.down {
		return nil, client.ErrUnavailable
	}
	return f.avatar, nil
}

var _ client.Client = (*fakeClient)(nil)
