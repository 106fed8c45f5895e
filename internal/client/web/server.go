// Package web serves published profile pages over HTTP.
//
// Every request is resolved through the page resolver bound to the request
// context, so a client that goes away cancels the pending retry.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/client/resolver"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Resolver is what the viewer needs from the page resolver.
type Resolver interface {
	Resolve(ctx context.Context, path string) resolver.Result
}

type Server struct {
	addr     string
	resolver Resolver
	log      logging.Logger
	found    *template.Template
	notFound *template.Template
}

func NewServer(addr string, r Resolver, log logging.Logger) (*Server, error) {
	found, err := template.ParseFS(templateFS, "templates/page.html", "templates/found.html")
	if err != nil {
		return nil, err
	}
	notFound, err := template.ParseFS(templateFS, "templates/page.html", "templates/notfound.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		addr:     addr,
		resolver: r,
		log:      log.With("module", "web"),
		found:    found,
		notFound: notFound,
	}, nil
}

// Handler returns the viewer routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
		r.Get("/pages/{path}", s.pageJSON)
	})

	r.Get("/{path}", s.page)
	return r
}

type pageView struct {
	Title   string
	Profile *models.Profile
	Links   []models.Link
	Notice  string
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := s.resolver.Resolve(ctx, chi.URLParam(r, "path"))
	if ctx.Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if res.State != resolver.Found {
		w.WriteHeader(http.StatusNotFound)
		s.render(ctx, w, s.notFound, pageView{Title: "Page Not Found", Notice: res.Notice})
		return
	}

	s.render(ctx, w, s.found, pageView{
		Title:   res.Profile.Name,
		Profile: res.Profile,
		Links:   res.Profile.Links(),
	})
}

func (s *Server) render(ctx context.Context, w http.ResponseWriter, t *template.Template, v pageView) {
	if err := t.ExecuteTemplate(w, "layout", v); err != nil {
		s.log.Error(ctx, "template error", "error", err)
	}
}

type pageResponse struct {
	Profile *models.Profile `json:"profile,omitempty"`
	Page    *models.Page    `json:"page,omitempty"`
	Source  string          `json:"source,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) pageJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := s.resolver.Resolve(ctx, chi.URLParam(r, "path"))
	if ctx.Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	body := pageResponse{Profile: res.Profile, Page: res.Page, Source: res.Source}
	if res.State != resolver.Found {
		w.WriteHeader(http.StatusNotFound)
		body = pageResponse{Error: res.Notice}
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error(ctx, "encode error", "error", err)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.log.Info(context.Background(), "Stopping viewer...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info(ctx, "Starting viewer", "address", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
