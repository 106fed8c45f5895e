package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pagekeeper/internal/client/client"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/filex"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/netx"
	"github.com/dmitrijs2005/pagekeeper/internal/slug"
)

var (
	// ErrSavedLocally wraps a remote failure after the local write succeeded.
	ErrSavedLocally = errors.New("saved on this device only")
	ErrLocalStore   = errors.New("local store write failed")
)

// LocalStore is the part of the device store the profile service uses.
type LocalStore interface {
	StoreProfile(ctx context.Context, id string, data *models.Profile) bool
	GetProfile(ctx context.Context, id string) *models.Profile
	StorePage(ctx context.Context, path, userID string) *models.Page
	GetUserPage(ctx context.Context, userID string) *models.Page
	ClearAllData(ctx context.Context) bool
}

// putObject is swapped in tests.
var putObject = netx.PutPresigned

// ProfileService manages the signed-in user's profile and page. Every write
// lands in the local store first and is then pushed to the server.
type ProfileService struct {
	remote client.Client
	local  LocalStore
	log    logging.Logger
}

func NewProfileService(remote client.Client, local LocalStore, log logging.Logger) *ProfileService {
	return &ProfileService{remote: remote, local: local, log: log.With("module", "profile_service")}
}

// LoadProfile returns the server copy, or the local one when the server
// cannot answer.
func (s *ProfileService) LoadProfile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.remote.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	s.log.Warn(ctx, "remote profile unavailable, using local copy", "user_id", userID, "error", err)

	if p := s.local.GetProfile(ctx, userID); p != nil {
		return p, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorNotFound
	}
	return nil, fmt.Errorf("load profile: %w", err)
}

// SaveProfile stores p for userID locally, then on the server. A server
// failure is returned wrapped in ErrSavedLocally.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, p *models.Profile) (*models.Profile, error) {
	rec := *p
	rec.ID = userID
	if rec.Avatar == "" {
		rec.Avatar = models.DefaultAvatar
	}

	if !s.local.StoreProfile(ctx, userID, &rec) {
		return nil, ErrLocalStore
	}
	saved := s.local.GetProfile(ctx, userID)
	if saved == nil {
		saved = &rec
	}

	if _, err := s.remote.UpsertProfile(ctx, saved); err != nil {
		s.log.Warn(ctx, "profile not pushed to server", "user_id", userID, "error", err)
		return saved, fmt.Errorf("%w: %w", ErrSavedLocally, err)
	}
	s.log.Info(ctx, "profile saved", "user_id", userID)
	return saved, nil
}

// MyPage returns the user's page from the server or, failing that, the
// device. common.ErrorNotFound means the server answered and neither side
// has a page; a failed lookup with nothing on the device returns the
// remote error instead.
func (s *ProfileService) MyPage(ctx context.Context, userID string) (*models.Page, error) {
	p, err := s.remote.GetPageByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	remoteMiss := errors.Is(err, common.ErrorNotFound)
	if !remoteMiss {
		s.log.Warn(ctx, "remote page lookup failed", "user_id", userID, "error", err)
	}
	if p := s.local.GetUserPage(ctx, userID); p != nil {
		return p, nil
	}
	if !remoteMiss {
		return nil, fmt.Errorf("page lookup: %w", err)
	}
	return nil, common.ErrorNotFound
}

// Publish returns the user's page, creating it under a fresh random path
// when there is none. created reports whether a page was made. A new path
// is only generated once the server has confirmed the user has no page.
func (s *ProfileService) Publish(ctx context.Context, userID string) (page *models.Page, created bool, err error) {
	p, err := s.MyPage(ctx, userID)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, false, err
	}

	path, err := slug.Generate(slug.DefaultLength)
	if err != nil {
		return nil, false, err
	}
	page = s.local.StorePage(ctx, path, userID)
	if page == nil {
		return nil, false, ErrLocalStore
	}

	if _, err := s.remote.UpsertPage(ctx, page); err != nil {
		s.log.Warn(ctx, "page not pushed to server", "path", page.Path, "error", err)
		return page, true, fmt.Errorf("%w: %w", ErrSavedLocally, err)
	}
	s.log.Info(ctx, "page published", "path", page.Path, "user_id", userID)
	return page, true, nil
}

// UploadAvatar puts the image at filePath into object storage and points
// the profile's avatar at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filePath string) (string, error) {
	data, contentType, err := filex.ReadImage(filePath)
	if err != nil {
		return "", err
	}

	slot, err := s.remote.GetAvatarUploadURL(ctx, contentType)
	if err != nil {
		return "", fmt.Errorf("get upload url: %w", err)
	}
	if err := putObject(ctx, slot.UploadURL, contentType, data); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	p, err := s.LoadProfile(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		p, err = &models.Profile{}, nil
	}
	if err != nil {
		return "", err
	}
	p.Avatar = slot.PublicURL
	if _, err := s.SaveProfile(ctx, userID, p); err != nil {
		return slot.PublicURL, err
	}
	return slot.PublicURL, nil
}

// Reset drops every profile and page kept on this device.
func (s *ProfileService) Reset(ctx context.Context) error {
	if !s.local.ClearAllData(ctx) {
		return ErrLocalStore
	}
	return nil
}
