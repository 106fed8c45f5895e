package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pagekeeper/internal/client/web"
)

// newViewer is a test seam for the HTTP viewer constructor.
var newViewer = func(a *App) (runner, error) {
	return web.NewServer(a.config.ViewerAddr, a.resolver, a.log)
}

type runner interface {
	Run(ctx context.Context) error
}

var errViewerRunning = errors.New("viewer already running")

// Serve starts the public-page viewer in the background. It stops together
// with the REPL.
func (a *App) Serve(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.viewerCancel != nil {
		return errViewerRunning
	}

	srv, err := newViewer(a)
	if err != nil {
		return err
	}

	vctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	a.viewerCancel = cancel
	a.viewerDone = done

	go func() {
		err := srv.Run(vctx)
		if err != nil {
			a.log.Error(vctx, "viewer stopped", "error", err)
		}
		done <- err
	}()

	fmt.Fprintf(a.out, "Serving pages on http://%s/\n", a.config.ViewerAddr)
	return nil
}

func (a *App) stopViewer() {
	a.mu.Lock()
	cancel, done := a.viewerCancel, a.viewerDone
	a.viewerCancel, a.viewerDone = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
