package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Store, *kv.MemoryRepository) {
	t.Helper()
	repo := kv.NewMemoryRepository()
	s := New(repo, logging.NewNopLogger())
	s.now = func() time.Time { return fixedNow }
	n := 0
	s.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return s, repo
}

type failingRepo struct {
	kv.Repository
	failGet, failSet, failDelete bool
	failSetKey                   string
}

var errStorage = errors.New("quota exceeded")

func (f *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errStorage
	}
	return f.Repository.Get(ctx, key)
}

func (f *failingRepo) Set(ctx context.Context, key string, v []byte) error {
	if f.failSet || key == f.failSetKey {
		return errStorage
	}
	return f.Repository.Set(ctx, key, v)
}

func (f *failingRepo) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errStorage
	}
	return f.Repository.Delete(ctx, key)
}

func TestStoreProfile_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	in := &models.Profile{
		Name:     "Ann",
		Title:    "Engineer",
		Bio:      "hi",
		Email:    "ann@example.com",
		Twitter:  "@ann",
		LinkedIn: "ann-l",
		GitHub:   "ann-gh",
		Avatar:   "https://img/ann.png",
	}
	require.True(t, s.StoreProfile(ctx, "u1", in))

	got := s.GetProfile(ctx, "u1")
	require.NotNil(t, got)
	want := *in
	want.ID = "u1"
	want.LastUpdated = fixedNow
	assert.Equal(t, want, *got)
	assert.True(t, in.LastUpdated.IsZero(), "input must not be mutated")

	require.True(t, s.StoreProfile(ctx, "u1", in))
	assert.Equal(t, []string{"u1"}, s.GetAllProfiles(ctx))
}

func TestStoreProfile_PersistedLayout(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.True(t, s.StoreProfile(ctx, "u1", &models.Profile{Name: "Ann"}))

	raw, err := repo.Get(ctx, "profile-u1")
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "Ann", m["name"])
	assert.Contains(t, m, "lastUpdated")

	raw, err = repo.Get(ctx, "all-profiles")
	require.NoError(t, err)
	assert.JSONEq(t, `["u1"]`, string(raw))
}

func TestGetProfile_AbsentOrCorrupt(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	assert.Nil(t, s.GetProfile(ctx, "nobody"))

	require.NoError(t, repo.Set(ctx, "profile-bad", []byte("{not json")))
	assert.Nil(t, s.GetProfile(ctx, "bad"))
}

func TestStorePage_ThenGetByPath(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	rec := s.StorePage(ctx, "My-Path ", "u1")
	require.NotNil(t, rec)
	assert.Equal(t, "my-path", rec.Path)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, fixedNow, rec.UpdatedAt)
	assert.NotEmpty(t, rec.ID)

	for _, q := range []string{"my-path", "MY-PATH", "  my-path", "my-path!"} {
		got := s.GetPageByPath(ctx, q)
		require.NotNil(t, got, q)
		assert.Equal(t, *rec, *got, q)
	}

	raw, err := repo.Get(ctx, "user-pages-u1")
	require.NoError(t, err)
	assert.JSONEq(t, `["my-path"]`, string(raw))
	assert.Equal(t, []string{"my-path"}, s.GetAllPages(ctx))
}

func TestStorePage_IndicesAppendIfAbsent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NotNil(t, s.StorePage(ctx, "b", "u1"))
	require.NotNil(t, s.StorePage(ctx, "a", "u1"))
	require.NotNil(t, s.StorePage(ctx, "B", "u1"))

	assert.Equal(t, []string{"b", "a"}, s.GetUserPages(ctx, "u1"))
	assert.Equal(t, []string{"b", "a"}, s.GetAllPages(ctx))
}

func TestStorePage_EmptyPath(t *testing.T) {
	s, _ := newStore(t)
	assert.Nil(t, s.StorePage(context.Background(), " !!! ", "u1"))
	assert.Empty(t, s.GetAllPages(context.Background()))
}

func TestGetPageByPath_LegacyScan(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	legacy := models.Page{ID: "x", Path: "Old.Path", UserID: "u9", CreatedAt: fixedNow}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "page-Old.Path", raw))
	require.NoError(t, repo.Set(ctx, "all-pages", []byte(`["Old.Path"]`)))

	got := s.GetPageByPath(ctx, "oldpath")
	require.NotNil(t, got)
	assert.Equal(t, "u9", got.UserID)

	assert.Nil(t, s.GetPageByPath(ctx, "other"))
	assert.Nil(t, s.GetPageByPath(ctx, ""))
}

func TestGetUserPage(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	assert.Nil(t, s.GetUserPage(ctx, "u1"))
	assert.Nil(t, s.GetUserPages(ctx, "u1"))

	rec := s.StorePage(ctx, "abc123", "u1")
	require.NotNil(t, rec)

	got := s.GetUserPage(ctx, "u1")
	require.NotNil(t, got)
	assert.Equal(t, "abc123", got.Path)
}

func TestUpdatePage(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	assert.False(t, s.UpdatePage(ctx, "missing", PageUpdate{UserID: "u2"}))

	require.NotNil(t, s.StorePage(ctx, "abc", "u1"))
	later := fixedNow.Add(time.Hour)
	s.now = func() time.Time { return later }

	require.True(t, s.UpdatePage(ctx, " ABC", PageUpdate{ID: "new-id", UserID: "u2"}))

	got := s.GetPageByPath(ctx, "abc")
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.Path)
	assert.Equal(t, "new-id", got.ID)
	assert.Equal(t, "u2", got.UserID)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)
}

func TestUpdatePage_MovesLegacyKey(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	legacy := models.Page{ID: "x", Path: "Old.Path", UserID: "u9", CreatedAt: fixedNow}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "page-Old.Path", raw))
	require.NoError(t, repo.Set(ctx, "all-pages", []byte(`["Old.Path","keep"]`)))
	require.NoError(t, repo.Set(ctx, "user-pages-u9", []byte(`["Old.Path"]`)))

	require.True(t, s.UpdatePage(ctx, "oldpath", PageUpdate{ID: "y"}))

	v, err := repo.Get(ctx, "page-Old.Path")
	require.NoError(t, err)
	assert.Nil(t, v)

	got := s.GetPageByPath(ctx, "oldpath")
	require.NotNil(t, got)
	assert.Equal(t, "oldpath", got.Path)
	assert.Equal(t, "y", got.ID)
	assert.Equal(t, "u9", got.UserID)

	assert.Equal(t, []string{"oldpath", "keep"}, s.GetAllPages(ctx))
	assert.Equal(t, []string{"oldpath"}, s.GetUserPages(ctx, "u9"))
}

func TestClearAllData(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.True(t, s.StoreProfile(ctx, "u1", &models.Profile{Name: "Ann"}))
	require.NotNil(t, s.StorePage(ctx, "abc123", "u1"))
	require.NotNil(t, s.StorePage(ctx, "orphan", "u2"))

	require.True(t, s.ClearAllData(ctx))

	assert.Empty(t, s.GetAllPages(ctx))
	assert.Empty(t, s.GetAllProfiles(ctx))
	assert.Nil(t, s.GetPageByPath(ctx, "abc123"))
	assert.Nil(t, s.GetPageByPath(ctx, "orphan"))
	assert.Nil(t, s.GetProfile(ctx, "u1"))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.True(t, s.ClearAllData(ctx), "clearing an empty store succeeds")
}

func TestClearAllData_SweepsUnindexedRecords(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "page-stray", []byte(`{"path":"stray"}`)))
	require.NoError(t, repo.Set(ctx, "profile-stray", []byte(`{}`)))
	require.NoError(t, repo.Set(ctx, "user-pages-stray", []byte(`["stray"]`)))
	require.NoError(t, repo.Set(ctx, "auth-username", []byte("ann")))

	require.True(t, s.ClearAllData(ctx))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"auth-username"}, keys)
}

func TestIndexFailureLeavesNoRecord(t *testing.T) {
	ctx := context.Background()

	for _, key := range []string{"all-pages", "all-profiles", "user-pages-u1"} {
		t.Run(key, func(t *testing.T) {
			mem := kv.NewMemoryRepository()
			repo := &failingRepo{Repository: mem, failSetKey: key}
			s := New(repo, logging.NewNopLogger())

			switch key {
			case "all-profiles":
				assert.False(t, s.StoreProfile(ctx, "u1", &models.Profile{Name: "Ann"}))
				assert.Nil(t, s.GetProfile(ctx, "u1"))
			default:
				assert.Nil(t, s.StorePage(ctx, "abc", "u1"))
				assert.Nil(t, s.GetPageByPath(ctx, "abc"))
			}

			require.True(t, s.ClearAllData(ctx))
			keys, err := mem.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestFailuresAreAbsorbed(t *testing.T) {
	ctx := context.Background()

	t.Run("write", func(t *testing.T) {
		repo := &failingRepo{Repository: kv.NewMemoryRepository(), failSet: true}
		s := New(repo, logging.NewNopLogger())
		assert.False(t, s.StoreProfile(ctx, "u1", &models.Profile{}))
		assert.Nil(t, s.StorePage(ctx, "abc", "u1"))
	})

	t.Run("read", func(t *testing.T) {
		repo := &failingRepo{Repository: kv.NewMemoryRepository(), failGet: true}
		s := New(repo, logging.NewNopLogger())
		assert.Nil(t, s.GetProfile(ctx, "u1"))
		assert.Nil(t, s.GetPageByPath(ctx, "abc"))
		assert.Nil(t, s.GetUserPages(ctx, "u1"))
		assert.Empty(t, s.GetAllPages(ctx))
		assert.False(t, s.ClearAllData(ctx))
	})

	t.Run("delete", func(t *testing.T) {
		mem := kv.NewMemoryRepository()
		s := New(mem, logging.NewNopLogger())
		require.True(t, s.StoreProfile(ctx, "u1", &models.Profile{}))
		s.repo = &failingRepo{Repository: mem, failDelete: true}
		assert.False(t, s.ClearAllData(ctx))
	})
}
