// Package resolver turns a public path into a displayable (profile, page)
// pair.
//
// Lookups walk an ordered list of tiers: the remote gateway, which is
// authoritative, then the device-local store, which only seeds the remote.
// The first tier that yields both records wins. A hit served by the seed
// tier on the first attempt is copied to the remote in the background.
// When no tier has the page, the lookup is retried once after a delay that
// is cancelled together with the request context.
package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/slug"
)

const (
	DefaultRetryDelay    = 2 * time.Second
	DefaultUploadTimeout = 10 * time.Second

	// NotFoundNotice is shown to the user when resolution ends in NotFound.
	NotFoundNotice = "The page you're looking for doesn't exist or has been removed."
)

// State is the resolver state as seen by presentation.
type State int

const (
	Loading State = iota
	Found
	NotFound
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Gateway is the subset of the remote client the resolver needs.
type Gateway interface {
	GetPageByPath(ctx context.Context, path string) (*models.Page, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
	UpsertPage(ctx context.Context, p *models.Page) (*models.Page, error)
}

// LocalStore is the subset of the device-local store the resolver needs.
type LocalStore interface {
	GetPageByPath(ctx context.Context, path string) *models.Page
	GetProfile(ctx context.Context, id string) *models.Profile
}

// Result is the outcome of one Resolve call. Source names the tier that
// served a Found result.
type Result struct {
	State    State
	Profile  *models.Profile
	Page     *models.Page
	Source   string
	Notice   string
	Attempts int
}

type Option func(*Resolver)

func WithRetryDelay(d time.Duration) Option {
	return func(r *Resolver) { r.retryDelay = d }
}

func WithUploadTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.uploadTimeout = d }
}

// WithObserver registers fn to receive Loading on every attempt and the
// terminal state once per Resolve call.
func WithObserver(fn func(path string, s State)) Option {
	return func(r *Resolver) { r.observer = fn }
}

type Resolver struct {
	tiers         []tier
	remote        Gateway
	log           logging.Logger
	retryDelay    time.Duration
	uploadTimeout time.Duration
	observer      func(string, State)

	uploads sync.WaitGroup
}

func New(remote Gateway, local LocalStore, log logging.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		remote:        remote,
		log:           log.With("module", "resolver"),
		retryDelay:    DefaultRetryDelay,
		uploadTimeout: DefaultUploadTimeout,
	}
	for _, o := range opts {
		o(r)
	}
	r.tiers = []tier{
		{name: SourceRemote, lookup: r.lookupRemote},
		{name: SourceLocal, lookup: localLookup(local), seed: true},
	}
	return r
}

var errMiss = errors.New("page not found in any tier")

// Resolve never fails: every fault is logged and folded into NotFound.
func (r *Resolver) Resolve(ctx context.Context, path string) Result {
	norm := slug.Normalize(path)
	if norm == "" {
		r.log.Debug(ctx, "empty path", "raw", path)
		r.notify(path, NotFound)
		return Result{State: NotFound, Notice: NotFoundNotice}
	}

	attempt := 0
	op := func() (Result, error) {
		r.notify(norm, Loading)
		res, ok := r.attempt(ctx, norm, attempt)
		attempt++
		if !ok {
			return Result{}, errMiss
		}
		return res, nil
	}
	notify := func(_ error, next time.Duration) {
		r.log.Info(ctx, "page not found, retrying", "path", norm, "in", next)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(r.retryDelay), 1), ctx)
	res, err := backoff.RetryNotifyWithData(op, b, notify)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.log.Debug(ctx, "resolution abandoned", "path", norm, "error", ctxErr)
		} else {
			r.log.Info(ctx, "page not found", "path", norm, "attempts", attempt)
		}
		r.notify(norm, NotFound)
		return Result{State: NotFound, Notice: NotFoundNotice, Attempts: attempt}
	}

	res.Attempts = attempt
	r.notify(norm, Found)
	return res
}

func (r *Resolver) attempt(ctx context.Context, path string, attempt int) (Result, bool) {
	for _, t := range r.tiers {
		pp := t.lookup(ctx, path)
		if pp == nil {
			continue
		}
		r.log.Debug(ctx, "page resolved", "path", path, "source", t.name, "attempt", attempt)
		if t.seed && attempt == 0 {
			r.seedRemote(ctx, pp)
		}
		return Result{State: Found, Profile: pp.Profile, Page: pp.Page, Source: t.name}, true
	}
	return Result{}, false
}

func (r *Resolver) lookupRemote(ctx context.Context, path string) *models.PublicPage {
	page, err := r.remote.GetPageByPath(ctx, path)
	if err != nil {
		r.logRemoteMiss(ctx, "page", path, err)
		return nil
	}
	profile, err := r.remote.GetProfile(ctx, page.UserID)
	if err != nil {
		r.logRemoteMiss(ctx, "profile", page.UserID, err)
		return nil
	}
	return &models.PublicPage{Profile: profile, Page: page}
}

func (r *Resolver) logRemoteMiss(ctx context.Context, what, key string, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		r.log.Debug(ctx, "remote miss", "record", what, "key", key)
		return
	}
	r.log.Warn(ctx, "remote lookup failed", "record", what, "key", key, "error", err)
}

// seedRemote copies a locally served pair to the remote gateway, profile
// first. The upload outlives the request but not the upload timeout.
func (r *Resolver) seedRemote(ctx context.Context, pp *models.PublicPage) {
	profile := *pp.Profile
	page := *pp.Page

	r.uploads.Add(1)
	go func() {
		defer r.uploads.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.uploadTimeout)
		defer cancel()

		if _, err := r.remote.UpsertProfile(ctx, &profile); err != nil {
			r.log.Warn(ctx, "profile upload failed", "user_id", profile.ID, "error", err)
		} else {
			r.log.Info(ctx, "profile uploaded", "user_id", profile.ID)
		}
		if _, err := r.remote.UpsertPage(ctx, &page); err != nil {
			r.log.Warn(ctx, "page upload failed", "path", page.Path, "error", err)
		} else {
			r.log.Info(ctx, "page uploaded", "path", page.Path)
		}
	}()
}

// Wait blocks until all background uploads have finished.
func (r *Resolver) Wait() {
	r.uploads.Wait()
}

func (r *Resolver) notify(path string, s State) {
	if r.observer != nil {
		r.observer(path, s)
	}
}
