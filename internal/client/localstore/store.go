// Package localstore keeps profile and page records on the device, with
// the indices needed to enumerate them, on top of a kv.Repository.
//
// Every operation absorbs its own failures: reads return nil and writes
// return false, and the cause is logged. Callers never see a storage error.
package localstore

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/slug"
	"github.com/google/uuid"
)

const (
	allProfilesKey = "all-profiles"
	allPagesKey    = "all-pages"
)

func profileKey(id string) string       { return "profile-" + id }
func pageKey(path string) string        { return "page-" + path }
func userPagesKey(userID string) string { return "user-pages-" + userID }

func isRecordKey(k string) bool {
	for _, prefix := range []string{"profile-", "page-", "user-pages-"} {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Store is the device-local profile and page store.
type Store struct {
	repo  kv.Repository
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

func New(repo kv.Repository, log logging.Logger) *Store {
	return &Store{
		repo:  repo,
		log:   log.With("module", "localstore"),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// StoreProfile writes data under id, stamping LastUpdated, and registers id
// in the all-profiles index. The index is written first so a record is
// never stored without an entry ClearAllData can find.
func (s *Store) StoreProfile(ctx context.Context, id string, data *models.Profile) bool {
	rec := models.Profile{}
	if data != nil {
		rec = *data
	}
	rec.ID = id
	rec.LastUpdated = s.now()

	if err := s.appendToIndex(ctx, allProfilesKey, id); err != nil {
		s.log.Error(ctx, "error updating profile index", "id", id, "error", err)
		return false
	}
	if err := s.putJSON(ctx, profileKey(id), rec); err != nil {
		s.log.Error(ctx, "error storing profile", "id", id, "error", err)
		return false
	}
	return true
}

// GetProfile returns the stored profile or nil.
func (s *Store) GetProfile(ctx context.Context, id string) *models.Profile {
	var rec models.Profile
	ok, err := s.getJSON(ctx, profileKey(id), &rec)
	if err != nil {
		s.log.Error(ctx, "error getting profile", "id", id, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &rec
}

// StorePage creates a page record for the normalized path and links it to
// userID. An input that normalizes to nothing is rejected. Indices are
// written before the record.
func (s *Store) StorePage(ctx context.Context, path, userID string) *models.Page {
	norm := slug.Normalize(path)
	if norm == "" {
		s.log.Error(ctx, "error storing page: empty path", "raw", path)
		return nil
	}

	ts := s.now()
	rec := &models.Page{
		ID:        s.newID(),
		Path:      norm,
		UserID:    userID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := s.appendToIndex(ctx, allPagesKey, norm); err != nil {
		s.log.Error(ctx, "error updating page index", "path", norm, "error", err)
		return nil
	}
	if err := s.appendToIndex(ctx, userPagesKey(userID), norm); err != nil {
		s.log.Error(ctx, "error updating user pages", "path", norm, "user_id", userID, "error", err)
		return nil
	}
	if err := s.putJSON(ctx, pageKey(norm), rec); err != nil {
		s.log.Error(ctx, "error storing page", "path", norm, "error", err)
		return nil
	}
	return rec
}

// GetPageByPath looks the page up by its normalized path. On a miss it scans
// the all-pages index and compares normalized forms, so entries written
// under older normalization rules are still found.
func (s *Store) GetPageByPath(ctx context.Context, path string) *models.Page {
	norm := slug.Normalize(path)
	if norm == "" {
		return nil
	}

	if rec := s.readPage(ctx, norm); rec != nil {
		return rec
	}

	paths, err := s.readIndex(ctx, allPagesKey)
	if err != nil {
		s.log.Error(ctx, "error reading page index", "error", err)
		return nil
	}
	for _, p := range paths {
		if p == norm || slug.Normalize(p) != norm {
			continue
		}
		if rec := s.readPage(ctx, p); rec != nil {
			s.log.Debug(ctx, "page found by index scan", "path", norm, "stored_as", p)
			return rec
		}
	}
	return nil
}

// GetUserPage returns the first page linked to userID.
func (s *Store) GetUserPage(ctx context.Context, userID string) *models.Page {
	paths := s.GetUserPages(ctx, userID)
	if len(paths) == 0 {
		return nil
	}
	return s.GetPageByPath(ctx, paths[0])
}

// GetUserPages returns the raw user-pages index, or nil when absent.
func (s *Store) GetUserPages(ctx context.Context, userID string) []string {
	paths, err := s.readIndex(ctx, userPagesKey(userID))
	if err != nil {
		s.log.Error(ctx, "error getting user pages", "user_id", userID, "error", err)
		return nil
	}
	return paths
}

// PageUpdate carries the mutable fields of a page. Zero values are ignored.
type PageUpdate struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// UpdatePage merges u into the existing record. The path stays the
// normalized original and UpdatedAt is refreshed. A record found under a
// legacy key is moved to the canonical one and the indices follow it.
func (s *Store) UpdatePage(ctx context.Context, path string, u PageUpdate) bool {
	norm := slug.Normalize(path)
	rec := s.GetPageByPath(ctx, norm)
	if rec == nil {
		return false
	}
	stored, owner := rec.Path, rec.UserID

	if u.ID != "" {
		rec.ID = u.ID
	}
	if u.UserID != "" {
		rec.UserID = u.UserID
	}
	if !u.CreatedAt.IsZero() {
		rec.CreatedAt = u.CreatedAt
	}
	rec.Path = norm
	rec.UpdatedAt = s.now()

	if err := s.replaceInIndex(ctx, allPagesKey, stored, norm); err != nil {
		s.log.Error(ctx, "error updating page index", "path", norm, "error", err)
		return false
	}
	if err := s.putJSON(ctx, pageKey(norm), rec); err != nil {
		s.log.Error(ctx, "error updating page", "path", norm, "error", err)
		return false
	}
	if stored == norm {
		return true
	}

	if owner != "" {
		if err := s.replaceInIndex(ctx, userPagesKey(owner), stored, norm); err != nil {
			s.log.Error(ctx, "error updating user pages", "path", norm, "user_id", owner, "error", err)
			return false
		}
	}
	if err := s.repo.Delete(ctx, pageKey(stored)); err != nil {
		s.log.Error(ctx, "error removing legacy page", "stored_as", stored, "error", err)
		return false
	}
	s.log.Debug(ctx, "legacy page moved", "path", norm, "stored_as", stored)
	return true
}

// GetAllPages returns the all-pages index, empty when absent.
func (s *Store) GetAllPages(ctx context.Context) []string {
	return s.indexOrEmpty(ctx, allPagesKey)
}

// GetAllProfiles returns the all-profiles index, empty when absent.
func (s *Store) GetAllProfiles(ctx context.Context) []string {
	return s.indexOrEmpty(ctx, allProfilesKey)
}

// ClearAllData deletes every profile, page and index this store knows about,
// then sweeps any record keys the indices missed. Offline auth keys live in
// the same repository and are left alone.
func (s *Store) ClearAllData(ctx context.Context) bool {
	profiles, err := s.readIndex(ctx, allProfilesKey)
	if err != nil {
		s.log.Error(ctx, "error clearing data", "error", err)
		return false
	}
	pages, err := s.readIndex(ctx, allPagesKey)
	if err != nil {
		s.log.Error(ctx, "error clearing data", "error", err)
		return false
	}

	keys := make([]string, 0, 2*len(profiles)+2*len(pages)+2)
	for _, id := range profiles {
		keys = append(keys, profileKey(id), userPagesKey(id))
	}
	for _, p := range pages {
		// pages of users that never stored a profile still own an index
		if rec := s.readPage(ctx, p); rec != nil && rec.UserID != "" {
			keys = append(keys, userPagesKey(rec.UserID))
		}
		keys = append(keys, pageKey(p))
	}
	keys = append(keys, allProfilesKey, allPagesKey)

	for _, k := range keys {
		if err := s.repo.Delete(ctx, k); err != nil {
			s.log.Error(ctx, "error clearing data", "key", k, "error", err)
			return false
		}
	}

	rest, err := s.repo.Keys(ctx)
	if err != nil {
		s.log.Error(ctx, "error clearing data", "error", err)
		return false
	}
	swept := 0
	for _, k := range rest {
		if !isRecordKey(k) {
			continue
		}
		if err := s.repo.Delete(ctx, k); err != nil {
			s.log.Error(ctx, "error clearing data", "key", k, "error", err)
			return false
		}
		swept++
	}
	s.log.Info(ctx, "local data cleared", "profiles", len(profiles), "pages", len(pages), "swept", swept)
	return true
}

func (s *Store) readPage(ctx context.Context, path string) *models.Page {
	var rec models.Page
	ok, err := s.getJSON(ctx, pageKey(path), &rec)
	if err != nil {
		s.log.Error(ctx, "error getting page", "path", path, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &rec
}

func (s *Store) indexOrEmpty(ctx context.Context, key string) []string {
	v, err := s.readIndex(ctx, key)
	if err != nil {
		s.log.Error(ctx, "error reading index", "key", key, "error", err)
	}
	if v == nil {
		return []string{}
	}
	return v
}

func (s *Store) readIndex(ctx context.Context, key string) ([]string, error) {
	var v []string
	if _, err := s.getJSON(ctx, key, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) appendToIndex(ctx context.Context, key, value string) error {
	v, err := s.readIndex(ctx, key)
	if err != nil {
		return err
	}
	if slices.Contains(v, value) {
		return nil
	}
	return s.putJSON(ctx, key, append(v, value))
}

// replaceInIndex swaps old for value in the index, appending value when old
// is absent. Duplicates are dropped.
func (s *Store) replaceInIndex(ctx context.Context, key, old, value string) error {
	v, err := s.readIndex(ctx, key)
	if err != nil {
		return err
	}
	out := make([]string, 0, len(v)+1)
	for _, p := range v {
		if p == old {
			p = value
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	if !slices.Contains(out, value) {
		out = append(out, value)
	}
	if slices.Equal(out, v) {
		return nil
	}
	return s.putJSON(ctx, key, out)
}

func (s *Store) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, key, raw)
}
