// Package health tracks whether the API server is reachable.
package health

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fblive/fblive/internal/api"
)

const (
	// DefaultInterval is the time between checks.
	DefaultInterval = 30 * time.Second
	// DefaultTimeout bounds a single check.
	DefaultTimeout = 5 * time.Second
	// DefaultEndpoint is the path probed on each check.
	DefaultEndpoint = "/api/matches"
)

// State is the tri-state connectivity signal.
type State int

const (
	Unknown State = iota
	Online
	Offline
)

func (s State) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Status is the latest connectivity state and when it was determined.
type Status struct {
	State       State
	LastChecked time.Time
}

// Executor is the subset of *api.Executor the poller needs.
type Executor interface {
	Execute(ctx context.Context, req api.Request, hooks *api.Hooks) api.Outcome
}

// Config configures a Poller. Zero durations use the defaults.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
	Endpoint string
	OnChange func(Status)
}

// Poller checks the server on a fixed cadence. OnChange is called after every
// attempt, whether or not the state changed.
type Poller struct {
	cfg  Config
	exec Executor

	mu      sync.Mutex
	status  Status
	cancel  context.CancelFunc
	trigger chan struct{}
	wg      sync.WaitGroup
}

// New creates a poller in the Unknown state.
func New(cfg Config, exec Executor) (*Poller, error) {
	if exec == nil {
		return nil, errors.New("health: executor required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Poller{cfg: cfg, exec: exec, trigger: make(chan struct{}, 1)}, nil
}

// Status returns the latest status.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Start runs a check immediately and then on every tick until ctx is
// cancelled or Stop is called. Starting a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.cfg.Interval)
		defer ticker.Stop()

		for {
			p.check(runCtx)
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
			case <-p.trigger:
			}
		}
	}()
}

// Check runs one check synchronously and returns the resulting status. If ctx
// is cancelled before the attempt finishes the previous status is returned.
func (p *Poller) Check(ctx context.Context) Status {
	p.check(ctx)
	return p.Status()
}

// CheckNow asks a running poller for an immediate check.
func (p *Poller) CheckNow() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the timer and any in-flight check and waits for the loop to
// exit. No OnChange call happens after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()

	p.mu.Lock()
	p.cancel = nil
	p.mu.Unlock()
}

func (p *Poller) check(ctx context.Context) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	out := p.exec.Execute(attemptCtx, api.Request{Method: http.MethodGet, Path: p.cfg.Endpoint}, nil)
	cancel()

	if ctx.Err() != nil {
		return
	}

	next := Status{State: Offline, LastChecked: time.Now()}
	if out.OK() {
		next.State = Online
	}

	p.mu.Lock()
	p.status = next
	p.mu.Unlock()

	if p.cfg.OnChange != nil {
		p.cfg.OnChange(next)
	}
}
