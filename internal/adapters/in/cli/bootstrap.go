package cli

import (
	"context"
	"fmt"

	"github.com/suchimauz/artist-availability-engine/internal/adapters/out/cache"
	"github.com/suchimauz/artist-availability-engine/internal/adapters/out/logger"
	"github.com/suchimauz/artist-availability-engine/internal/adapters/out/postgres"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/artist-availability-engine/internal/core/services/availability_service"
)

// Application собранный сервис со всеми адаптерами
type Application struct {
	Config  *config.Config
	Logger  out.LoggerPort
	Service *availability_service.AvailabilityService
	closers []func()
}

func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func NewLogger(cfg *config.Config) (out.LoggerPort, func(), error) {
	if cfg.App.LogFormat == config.LogFormatJSON {
		zapLogger, err := logger.NewZapLogger(cfg.IsNotLocal(), cfg.MinLogLevel())
		if err != nil {
			return nil, nil, fmt.Errorf("logger.zap.init: %w", err)
		}
		return zapLogger, func() { _ = zapLogger.Sync() }, nil
	}

	return logger.NewConsoleLogger(cfg.App.Timezone, cfg.MinLogLevel()), func() {}, nil
}

// Bootstrap собирает зависимости: логгер, Postgres, кэш, движок и сервис
func Bootstrap(ctx context.Context, cfg *config.Config, withCache bool) (*Application, error) {
	mainLogger, syncLogger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	app := &Application{
		Config:  cfg,
		Logger:  mainLogger,
		closers: []func(){syncLogger},
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, pool.Close)

	store := postgres.NewStoreAdapter(pool, mainLogger)

	var cachePort out.CachePort
	if withCache {
		cachePort, err = cache.NewCacheAdapter(ctx, cfg, mainLogger)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, cache.Closer(cachePort))
	}

	converter := availability_service.NewTimezoneConverter(
		cfg.Engine.TimezoneConverter,
		cfg.Engine.DefaultArtistTimezone,
		mainLogger.WithModule("TimezoneConverter"),
	)
	engine := availability_service.NewEngine(cfg.Rules(), converter, mainLogger.WithModule("Engine"))

	app.Service = availability_service.NewAvailabilityService(store, cachePort, engine, mainLogger)

	return app, nil
}
