package app

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fblive/fblive/internal/api"
	"github.com/fblive/fblive/internal/logging"
	"github.com/fblive/fblive/internal/state"
)

const defaultRefreshInterval = 15 * time.Second

// MatchLister is the part of api.MatchService the refresher needs.
type MatchLister interface {
	ListMatches(ctx context.Context) ([]api.Match, error)
}

// Refresher reloads the match list into the store at a fixed cadence and on
// demand after mutations.
type Refresher struct {
	store    *state.Store
	lister   MatchLister
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	trigger chan struct{}
	wg      sync.WaitGroup
}

// NewRefresher builds a refresher. A non-positive interval uses the default.
func NewRefresher(store *state.Store, lister MatchLister, interval time.Duration, logger *log.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Refresher{
		store:    store,
		lister:   lister,
		interval: interval,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// Start launches the background loop. It refreshes immediately and returns
// without waiting for the first result.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			refresh(runCtx, r.store, r.lister, r.logger)
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
			case <-r.trigger:
			}
		}
	}()
}

// Refresh asks the loop to reload as soon as possible. Requests made while
// one is already pending are coalesced.
func (r *Refresher) Refresh() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Stop ends the loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	r.wg.Wait()

	r.mu.Lock()
	r.cancel = nil
	r.mu.Unlock()
}

func refresh(ctx context.Context, store *state.Store, lister MatchLister, logger *log.Logger) {
	matches, err := lister.ListMatches(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		apiErr, ok := api.AsError(err)
		if !ok {
			apiErr = api.Classify(err)
		}
		store.UpdateMatches(nil, apiErr)
		logger.Debug("match refresh failed", "kind", string(apiErr.Kind), "err", apiErr.Message)
		return
	}
	store.UpdateMatches(matches, nil)
}
