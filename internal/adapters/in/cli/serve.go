package cli

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/suchimauz/artist-availability-engine/internal/adapters/in/http"
	"github.com/suchimauz/artist-availability-engine/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

const shutdownTimeout = 10 * time.Second

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API and cache invalidation listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := Bootstrap(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer app.Close()

	logger := app.Logger.WithModule("Main")
	logger.Info("app.starting", out.LogFields{
		"version":           cfg.App.Version,
		"env":               cfg.App.Env,
		"timezone":          cfg.App.Timezone,
		"rabbitmqEnabled":   cfg.RabbitMq.Enabled,
		"cacheEnabled":      cfg.Cache.Enabled,
		"cacheDriver":       cfg.Cache.Driver,
		"timezoneConverter": cfg.Engine.TimezoneConverter,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.IsLocal() {
		router.Use(gin.Logger())
	}
	controller := http.NewAvailabilityController(app.Service, cfg, app.Logger)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewCacheHitListener(app.Service, cfg, app.Logger.WithModule("RabbitMQListener"))
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	server := &nethttp.Server{
		Addr:              cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("app.shutdown.initiated", out.LogFields{
			"signal": sig.String(),
		})
	case err := <-serverErr:
		logger.Error("app.http.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("app.shutdown.completed", out.LogFields{})
	return nil
}
