package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/pagekeeper/internal/client/resolver"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	results map[string]resolver.Result
	paths   []string
}

func (f *fakeResolver) Resolve(_ context.Context, path string) resolver.Result {
	f.paths = append(f.paths, path)
	if r, ok := f.results[path]; ok {
		return r
	}
	return resolver.Result{State: resolver.NotFound, Notice: resolver.NotFoundNotice}
}

func newTestServer(t *testing.T) (*Server, *fakeResolver) {
	t.Helper()
	fr := &fakeResolver{results: map[string]resolver.Result{
		"ann": {
			State: resolver.Found,
			Profile: &models.Profile{
				ID: "u1", Name: "Ann <Lee>", Title: "Engineer", Bio: "Hello",
				GitHub: "ann-gh", Email: "ann@example.com",
			},
			Page:   &models.Page{ID: "p1", Path: "ann", UserID: "u1"},
			Source: resolver.SourceRemote,
		},
	}}
	s, err := NewServer("127.0.0.1:0", fr, logging.NewNopLogger())
	require.NoError(t, err)
	return s, fr
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_FoundPage(t *testing.T) {
	s, fr := newTestServer(t)

	rec := get(t, s.Handler(), "/ann")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Ann &lt;Lee&gt;")
	assert.Contains(t, body, "Engineer")
	assert.Contains(t, body, "https://github.com/ann-gh")
	assert.Contains(t, body, "mailto:ann@example.com")
	assert.Contains(t, body, `<span class="initial">A</span>`)
	assert.Equal(t, []string{"ann"}, fr.paths)
}

func TestServer_NotFoundPage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/nobody")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "404")
	assert.Contains(t, body, "Page Not Found")
	assert.Contains(t, body, "doesn&#39;t exist or has been removed.")
}

func TestServer_Healthz(t *testing.T) {
	s, fr := newTestServer(t)

	rec := get(t, s.Handler(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, fr.paths)
}

func TestServer_PageJSON(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/api/pages/ann")
	require.Equal(t, http.StatusOK, rec.Code)

	var body pageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.Profile.ID)
	assert.Equal(t, "ann", body.Page.Path)
	assert.Equal(t, resolver.SourceRemote, body.Source)

	rec = get(t, s.Handler(), "/api/pages/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body = pageResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, resolver.NotFoundNotice, body.Error)
	assert.Nil(t, body.Profile)
}

func TestServer_PageJSON_CORS(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pages/ann", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_CancelledRequestWritesNothing(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/ann", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Body.String())
}
