package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	v1 "github.com/feebridge/feebridge/internal/api/v1"
	"github.com/feebridge/feebridge/internal/cache"
	"github.com/feebridge/feebridge/internal/clickhouse"
	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/httpclient"
	"github.com/feebridge/feebridge/internal/logger"
	"github.com/feebridge/feebridge/internal/recordstore"
	"github.com/feebridge/feebridge/internal/repository"
	"github.com/feebridge/feebridge/internal/router"
	"github.com/feebridge/feebridge/internal/service"
	"github.com/feebridge/feebridge/internal/webhook"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Optional .env for local development; real deployments use the process
	// environment
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Warehouse
			clickhouse.NewClickHouseStore,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Record store
			recordstore.NewClient,
			recordstore.NewSessionManager,
			recordstore.NewRepository,

			// Repositories
			repository.NewStudentRepository,

			// Services
			service.NewSearchService,
			webhook.NewHandler,

			// Handlers
			v1.NewSearchHandler,
			v1.NewWebhookHandler,

			// Router
			router.SetupRouter,
		),
		fx.Invoke(
			startDatasetLoader,
			startAPIServer,
		),
	)

	app.Run()
}

func startDatasetLoader(
	lc fx.Lifecycle,
	searchService service.SearchService,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Initial load failure is not fatal: the search endpoint reports
			// the missing dataset and the reload ticker keeps trying
			if err := searchService.Reload(ctx); err != nil {
				log.Errorw("initial dataset load failed", "error", err)
			}

			interval := cfg.Search.ReloadInterval
			if interval <= 0 {
				return nil
			}

			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if err := searchService.Reload(context.Background()); err != nil {
							log.Errorw("dataset reload failed", "error", err)
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
