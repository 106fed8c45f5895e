package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/client/client"
	"github.com/dmitrijs2005/pagekeeper/internal/client/config"
	"github.com/dmitrijs2005/pagekeeper/internal/client/localstore"
	"github.com/dmitrijs2005/pagekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/pagekeeper/internal/client/resolver"
	"github.com/dmitrijs2005/pagekeeper/internal/client/services"
	"github.com/dmitrijs2005/pagekeeper/internal/filex"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// ProfileManager is the part of services.ProfileService the REPL drives.
type ProfileManager interface {
	LoadProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID string, p *models.Profile) (*models.Profile, error)
	MyPage(ctx context.Context, userID string) (*models.Page, error)
	Publish(ctx context.Context, userID string) (*models.Page, bool, error)
	UploadAvatar(ctx context.Context, userID, filePath string) (string, error)
	Reset(ctx context.Context) error
}

// PageResolver resolves public paths for "view" and the viewer.
type PageResolver interface {
	Resolve(ctx context.Context, path string) resolver.Result
	Wait()
}

type App struct {
	config      *config.Config
	authService services.AuthService
	profiles    ProfileManager
	resolver    PageResolver
	log         logging.Logger
	db          *sql.DB

	userID   string
	userName string
	reader   *bufio.Reader
	out      io.Writer

	mu           sync.Mutex
	Mode         Mode
	viewerCancel context.CancelFunc
	viewerDone   chan error
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error creating data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, c.LocalDatabaseDSN))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewPageKeeperClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)
	store := localstore.New(repo, log)

	res := resolver.New(apiClient, store, log,
		resolver.WithRetryDelay(c.RetryDelay),
		resolver.WithUploadTimeout(c.UploadTimeout),
	)

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, repo),
		profiles:    services.NewProfileService(apiClient, store, log),
		resolver:    res,
		log:         log.With("module", "cli"),
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "Switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run blocks in the REPL until the user exits, then stops the viewer,
// drains background uploads and releases resources.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.stopViewer()
		a.resolver.Wait()
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userID != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints the greeting, attempts a login, starts the connectivity
// watcher and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to PageKeeper CLI (type 'help' for commands)")

	if err := a.Login(ctx); err != nil {
		a.log.Warn(ctx, "login skipped", "error", err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// between online and offline. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.mode() == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else if a.mode() != ModeOnline {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
