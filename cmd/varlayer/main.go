// Command varlayer serves the email template editor API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	editormodule "github.com/dmitrymomot/varlayer/modules/editor"
	"github.com/dmitrymomot/varlayer/pkg/config"
	"github.com/dmitrymomot/varlayer/pkg/environment"
	"github.com/dmitrymomot/varlayer/pkg/httpserver"
	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/pkg/pg"
	"github.com/dmitrymomot/varlayer/pkg/redis"
	"github.com/dmitrymomot/varlayer/pkg/requestid"
	"github.com/dmitrymomot/varlayer/svc/account"
	"github.com/dmitrymomot/varlayer/svc/catalog"
	"github.com/dmitrymomot/varlayer/svc/editor"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"varlayer"`

	PreviewCacheSize int           `env:"PREVIEW_CACHE_SIZE" envDefault:"512"`
	PreviewCacheTTL  time.Duration `env:"PREVIEW_CACHE_TTL" envDefault:"10m"`
	AccountCacheSize int           `env:"ACCOUNT_CACHE_SIZE" envDefault:"1024"`
	AccountCacheTTL  time.Duration `env:"ACCOUNT_CACHE_TTL" envDefault:"1m"`

	Logger logger.Config
	PG     pg.Config
	Redis  redis.Config
	HTTP   httpserver.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("varlayer stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}

	logOpts, err := logger.FromConfig(cfg.Logger)
	if err != nil {
		return err
	}
	log := logger.New(append([]logger.Option{
		logger.WithEnvironment(environment.Parse(cfg.Env), cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), account.LoggerExtractor()),
	}, logOpts...)...)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, catalog.Migrations, cfg.PG.MigrationsTable, log); err != nil {
		return err
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}
	previews := editor.NewLRUPreviewCache(cfg.PreviewCacheSize, cfg.PreviewCacheTTL)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("close redis", logger.Error(err))
			}
		}()
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		previews = editor.NewRedisPreviewCache(redis.NewStore(client, cfg.Name+":preview"), cfg.PreviewCacheTTL, log)
	}

	store := catalog.NewPGStorage(pool)
	svc := editor.NewService(store,
		editor.WithPreviewCache(previews),
		editor.WithLogger(log),
	)
	api := editormodule.NewModule(svc, store,
		editormodule.WithLogger(log),
		editormodule.WithAccountCache(account.NewLRUCache(cfg.AccountCacheSize, cfg.AccountCacheTTL)),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/livez", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, checks...))
	r.Mount("/api", api.Handle())

	log.InfoContext(ctx, "starting", slog.String("addr", cfg.HTTP.Addr))
	return httpserver.New(cfg.HTTP, r, log).Run(ctx)
}
