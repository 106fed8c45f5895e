package grpc

import (
	"context"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/server/auth"
	srvmodels "github.com/dmitrijs2005/pagekeeper/internal/server/models"
	"github.com/dmitrijs2005/pagekeeper/internal/server/services"
)

const testSecret = "secret"

type fakeUsers struct {
	regResp *srvmodels.User
	regErr  error

	saltResp []byte
	saltErr  error

	loginID   string
	loginResp *services.TokenPair
	loginErr  error

	refreshResp *services.TokenPair
	refreshErr  error
}

func (f *fakeUsers) Register(context.Context, string, []byte, []byte) (*srvmodels.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) GetSalt(context.Context, string) ([]byte, error) {
	return f.saltResp, f.saltErr
}

func (f *fakeUsers) Login(context.Context, string, []byte) (string, *services.TokenPair, error) {
	return f.loginID, f.loginResp, f.loginErr
}

func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeUsers) UserIDFromAccessToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, []byte(testSecret))
}

type fakePages struct {
	profiles map[string]*models.Profile
	pages    map[string]*models.Page
	err      error
	callerID string
}

func newFakePages() *fakePages {
	return &fakePages{profiles: map[string]*models.Profile{}, pages: map[string]*models.Page{}}
}

func (f *fakePages) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePages) GetPageByPath(_ context.Context, path string) (*models.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pages[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePages) GetPageByUserID(_ context.Context, userID string) (*models.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.pages {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePages) UpsertProfile(_ context.Context, callerID string, p *models.Profile) (*models.Profile, error) {
	f.callerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	f.profiles[p.ID] = p
	return p, nil
}

func (f *fakePages) UpsertPage(_ context.Context, callerID string, p *models.Page) (*models.Page, error) {
	f.callerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	f.pages[p.Path] = p
	return p, nil
}

type fakeAvatars struct {
	slot     *services.AvatarSlot
	err      error
	callerID string
}

func (f *fakeAvatars) UploadSlot(_ context.Context, userID, _ string) (*services.AvatarSlot, error) {
	f.callerID = userID
	return f.slot, f.err
}

func newServer(u *fakeUsers, p *fakePages, a *fakeAvatars) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.NewNopLogger(), u, p, a)
}
