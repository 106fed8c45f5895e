// Package server wires the page gateway: it opens the database, applies
// migrations and serves the PageKeeper gRPC service until the context ends.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/server/config"
	"github.com/dmitrijs2005/pagekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pagekeeper/internal/server/services"

	gs "github.com/dmitrijs2005/pagekeeper/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

// openDB and newRepoManager are replaced in tests.
var (
	openDB         = repomanager.OpenDB
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	ps := services.NewPageService(db, rm)
	as := services.NewAvatarService(c)

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ps, as)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled or the listener fails, then closes the
// database.
func (app *App) Run(ctx context.Context) error {

	app.logger.Info(ctx, "Starting app...")
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}()

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
