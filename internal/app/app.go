package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fblive/fblive/internal/api"
	"github.com/fblive/fblive/internal/config"
	"github.com/fblive/fblive/internal/health"
	"github.com/fblive/fblive/internal/logging"
	"github.com/fblive/fblive/internal/prefs"
	"github.com/fblive/fblive/internal/state"
	"github.com/fblive/fblive/internal/ui"
)

const (
	requestLabel = "API Request"
	healthLabel  = "Health Check"
	refreshLabel = "Match Refresh"
	httpTimeout  = 30 * time.Second
)

// Options configure the fblive application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/fblive/prefs.toml
	APIURL     string // overrides config file and environment
}

// Services holds the long-lived components shared by the dashboard and the
// CLI commands.
type Services struct {
	Config    config.Config
	Executor  *api.Executor
	Client    *api.Client
	Store     *state.Store
	Health    *health.Poller
	Refresher *Refresher
}

// LoadConfig loads the config file and applies a non-empty apiURL override.
func LoadConfig(path, apiURL string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(apiURL); v != "" {
		cfg.APIURL = v
	}
	return cfg, nil
}

// NewServices wires executors, client, store and background workers for cfg.
// The health poller and the refresher each get their own executor, so
// background traffic never replaces or clears the dashboard's current error.
func NewServices(cfg config.Config, logger *log.Logger, opts ...api.Option) (*Services, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	resolver := api.NewResolver(cfg.APIURL)
	httpClient := &http.Client{Timeout: httpTimeout}

	base := []api.Option{api.WithHTTPClient(httpClient), api.WithLogger(logger), api.WithLabel(requestLabel)}
	exec := api.NewExecutor(resolver, append(base, opts...)...)
	client := api.NewClient(exec)

	healthExec := api.NewExecutor(resolver,
		api.WithHTTPClient(httpClient),
		api.WithLogger(logger),
		api.WithLabel(healthLabel),
	)

	refreshExec := api.NewExecutor(resolver,
		api.WithHTTPClient(httpClient),
		api.WithLogger(logger),
		api.WithLabel(refreshLabel),
	)

	store := &state.Store{}
	poller, err := health.New(health.Config{
		Interval: cfg.HealthInterval,
		Timeout:  cfg.HealthTimeout,
		OnChange: store.SetHealth,
	}, healthExec)
	if err != nil {
		return nil, fmt.Errorf("init health poller: %w", err)
	}

	return &Services{
		Config:    cfg,
		Executor:  exec,
		Client:    client,
		Store:     store,
		Health:    poller,
		Refresher: NewRefresher(store, api.NewClient(refreshExec), cfg.RefreshInterval, logger),
	}, nil
}

// Start launches the health poller and the match refresher.
func (s *Services) Start(ctx context.Context) {
	s.Health.Start(ctx)
	s.Refresher.Start(ctx)
}

// Stop halts background work and waits for it to finish.
func (s *Services) Stop() {
	s.Refresher.Stop()
	s.Health.Stop()
}

// Run boots the fblive dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.APIURL)
	if err != nil {
		return err
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		userPrefs = prefs.Default()
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.LogLevel)

	notifier := ui.NewNotifier()
	svc, err := NewServices(cfg, logger, api.WithNotifier(notifier.Notify))
	if err != nil {
		return err
	}

	logger.Info("dashboard starting", "api", svc.Executor.Resolver().Base())
	svc.Start(ctx)
	defer svc.Stop()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Client:    svc.Client,
		Executor:  svc.Executor,
		Store:     svc.Store,
		Health:    svc.Health,
		Refresher: svc.Refresher,
		Notifier:  notifier,
		LogPath:   cfg.LogFile,
		BaseURL:   svc.Executor.Resolver().Base(),
		ThemeName: userPrefs.Theme,
		Filter:    userPrefs.Filter,
		PrefsPath: prefsPath,
		Logger:    logger,
	})
	logger.Info("dashboard stopped")
	return err
}
