package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/internal/db/migrations"
	accountmod "github.com/dmitrymomot/pkgindex/modules/account"
	"github.com/dmitrymomot/pkgindex/modules/catalog"
	"github.com/dmitrymomot/pkgindex/pkg/async"
	"github.com/dmitrymomot/pkgindex/pkg/cache"
	"github.com/dmitrymomot/pkgindex/pkg/clientip"
	"github.com/dmitrymomot/pkgindex/pkg/config"
	"github.com/dmitrymomot/pkgindex/pkg/cookie"
	"github.com/dmitrymomot/pkgindex/pkg/email"
	"github.com/dmitrymomot/pkgindex/pkg/httpserver"
	"github.com/dmitrymomot/pkgindex/pkg/identity"
	"github.com/dmitrymomot/pkgindex/pkg/logger"
	"github.com/dmitrymomot/pkgindex/pkg/opensearch"
	"github.com/dmitrymomot/pkgindex/pkg/pg"
	"github.com/dmitrymomot/pkgindex/pkg/redis"
	"github.com/dmitrymomot/pkgindex/pkg/requestid"
	"github.com/dmitrymomot/pkgindex/pkg/signature"
	"github.com/dmitrymomot/pkgindex/svc/account"
	"github.com/dmitrymomot/pkgindex/svc/packages"
	"github.com/dmitrymomot/pkgindex/views"
)

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	Name          string        `env:"APP_NAME" envDefault:"pkgindex"`
	LogLevel      string        `env:"LOG_LEVEL"`
	HealthTimeout time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"2s"`
	ReindexOnBoot bool          `env:"OPENSEARCH_REINDEX_ON_BOOT" envDefault:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		app       appConfig
		signCfg   signature.Config
		cookieCfg cookie.Config
		pgCfg     pg.Config
		redisCfg  redis.Config
		cacheCfg  cache.Config
		searchCfg opensearch.Config
		mailCfg   email.Config
		httpCfg   httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&signCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&cacheCfg) },
		func() error { return config.Load(&searchCfg) },
		func() error { return config.Load(&mailCfg) },
		func() error { return config.Load(&httpCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			identity.LoggerExtractor(),
		),
	}
	if app.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(app.LogLevel))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	signer, err := signature.NewFromConfig(signCfg)
	if err != nil {
		return err
	}
	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}
	codec, err := identity.NewCodec(signer, cookies, cookieCfg.Name)
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool, migrations.FS, ".", pgCfg, log); err != nil {
		return err
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}

	var redisClient cache.RedisClient
	if cacheCfg.Driver != cache.DriverMemory {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}

	store, err := cache.NewStoreFromConfig(cacheCfg, redisClient)
	if err != nil {
		return err
	}
	cacheWrites := async.NewRunner("cache", async.WithTimeout(cacheCfg.StoreTimeout), async.WithLogger(log))
	cacheOpts := append(cacheCfg.Options(), cache.WithLogger(log), cache.WithRunner(cacheWrites))
	detailsCache := cache.NewReadThrough[packages.Details](store, cacheOpts...)
	searchCache := cache.NewReadThrough[packages.SearchResult](store, cacheOpts...)

	background := async.NewRunner("background", async.WithTimeout(10*time.Minute), async.WithLogger(log))

	pkgOpts := []packages.Option{packages.WithLogger(log)}
	var index *packages.OpenSearchIndex
	if searchCfg.Enabled() {
		index, err = openSearchIndex(ctx, searchCfg)
		if err != nil {
			log.WarnContext(ctx, "opensearch unavailable, searching postgres only",
				logger.Error(err),
				logger.Component("packages"),
			)
		} else {
			pkgOpts = append(pkgOpts, packages.WithSearchIndex(index))
		}
	}
	pkgSvc := packages.NewService(packages.NewPGRepository(pool), pkgOpts...)
	if index != nil && app.ReindexOnBoot {
		background.Go(ctx, "reindex", func(ctx context.Context) error {
			_, err := pkgSvc.Reindex(ctx, index)
			return err
		})
	}

	mailer, err := email.NewSenderFromConfig(mailCfg)
	if err != nil {
		return err
	}

	accountTasks := async.NewRunner("account", async.WithLogger(log))
	accountSvc := account.NewService(account.NewPGStorage(pool),
		account.WithLogger(log),
		account.WithRunner(accountTasks),
		account.WithAfterRegister(func(ctx context.Context, u *account.User) error {
			return email.SendWelcome(ctx, mailer, email.WelcomeData{
				AppName: app.Name,
				Name:    u.Name,
				Email:   u.Email,
			})
		}),
	)

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return views.ErrorPage(views.Page{AppName: app.Name}, p)
		},
		ErrorPartial: views.ErrorContent,
	})

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		middleware.Recoverer,
		identity.Middleware(codec),
	)

	r.Get("/health/live", httpserver.HealthCheckHandler(log, app.HealthTimeout))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, app.HealthTimeout, checks...))

	catalog.New(catalog.Config{
		AppName:      app.Name,
		Catalog:      pkgSvc,
		Details:      detailsCache,
		Search:       searchCache,
		ErrorHandler: errorHandler,
		Logger:       log,
		LoginURL:     accountmod.LoginURL,
	}).Routes(r)
	accountmod.New(accountmod.Config{
		AppName:      app.Name,
		Accounts:     accountSvc,
		Codec:        codec,
		ErrorHandler: errorHandler,
		Logger:       log,
	}).Routes(r)

	r.NotFound(handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		page := views.Page{AppName: app.Name, Authenticated: identity.FromContext(ctx).IsAuthenticated()}
		return handler.TemplWithStatus(http.StatusNotFound, views.NotFound(page))
	}, handler.WithErrorHandler[handler.Context, struct{}](errorHandler)))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func() {
			cacheWrites.Wait()
			accountTasks.Wait()
			background.Wait()
		}),
	)
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openSearchIndex(ctx context.Context, cfg opensearch.Config) (*packages.OpenSearchIndex, error) {
	client, err := opensearch.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	index := packages.NewOpenSearchIndex(client, cfg.Index)
	if err := index.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

