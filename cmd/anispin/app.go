package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mmcdole/anispin/internal/adapter"
	"github.com/mmcdole/anispin/internal/adapter/anilist"
	"github.com/mmcdole/anispin/internal/cache"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/mmcdole/anispin/internal/service"
	"github.com/mmcdole/anispin/internal/store"
	"github.com/spf13/viper"
)

// app holds the wired services for one command invocation
type app struct {
	cfg    *adapter.Config
	viper  *viper.Viper
	logger *slog.Logger

	kv       *store.Store
	client   *anilist.Client
	launcher *adapter.Launcher
	roulette *service.RouletteService
	history  *service.HistoryService
	session  *service.SessionService
}

func newApp(v *viper.Viper, noCache bool) (*app, error) {
	// Load configuration
	cfg, err := adapter.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting anispin", "version", Version)

	cacheDir := cfg.Cache.Dir
	if noCache {
		cacheDir = ""
	}
	kv, err := store.Open(cacheDir, cfg.Cache.QuotaBytes)
	if err != nil {
		// Another instance may hold the database lock
		logger.Warn("cache unavailable, using memory", "dir", cacheDir, "error", err)
		if kv, err = store.Open("", cfg.Cache.QuotaBytes); err != nil {
			return nil, err
		}
	}

	client := anilist.NewClient(anilist.Options{
		Endpoint: cfg.AniList.Endpoint,
		Timeout:  cfg.AniList.Timeout,
		RetryMax: cfg.AniList.Retries,
	}, logger)

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	cacheOpts := []cache.Option{cache.WithLogger(logger)}

	resolver := service.NewListResolver(
		client,
		cache.NewNamespace[domain.UserLists](kv, service.PrefixUserLists, cfg.Cache.ListTTL, cacheOpts...),
		logger,
	)
	roulette := service.NewRouletteService(
		resolver,
		client,
		service.NewQueryBuilder(rng),
		cache.NewNamespace[service.ResultSet](kv, service.KeyGlobalResults, cfg.Cache.ResultTTL, cacheOpts...),
		rng,
		logger,
	)

	return &app{
		cfg:      cfg,
		viper:    v,
		logger:   logger,
		kv:       kv,
		client:   client,
		launcher: adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger),
		roulette: roulette,
		history:  service.NewHistoryService(kv, logger),
		session:  service.NewSessionService(kv, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("failed to close cache", "error", err)
	}
	a.logger.Info("shutting down")
}

// saveFilters persists f as the default filters
func (a *app) saveFilters(f domain.Filters) error {
	return adapter.SaveDefaults(a.viper, defaultsFromFilters(f))
}
