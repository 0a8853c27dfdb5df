package catalog

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/pkg/binder"
	"github.com/dmitrymomot/pkgindex/pkg/cache"
	"github.com/dmitrymomot/pkgindex/pkg/identity"
	"github.com/dmitrymomot/pkgindex/svc/packages"
	"github.com/dmitrymomot/pkgindex/views"
)

// Catalog is the package service as seen by the pages.
type Catalog interface {
	LatestPackages(ctx context.Context, limit int) ([]packages.LatestPackage, error)
	Stats(ctx context.Context) (packages.Stats, error)
	Details(ctx context.Context, name string) (packages.Details, error)
	Search(ctx context.Context, q string) (packages.SearchResult, error)
}

type Config struct {
	AppName      string
	Catalog      Catalog
	Details      *cache.ReadThrough[packages.Details]
	Search       *cache.ReadThrough[packages.SearchResult]
	ErrorHandler handler.ErrorHandler[handler.Context]
	Logger       *slog.Logger
	// LoginURL receives requests carrying a tampered identity cookie.
	LoginURL string
}

// Module serves the home, about, project and search pages.
type Module struct {
	cfg Config
}

func New(cfg Config) *Module {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = "/login"
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = handler.NewErrorHandler(cfg.Logger, handler.ErrorHandlerConfig{})
	}
	return &Module{cfg: cfg}
}

// Routes registers the catalog pages on r.
func (m *Module) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RedirectTampered(m.cfg.LoginURL))

		r.Get("/", handler.Wrap(m.home,
			handler.WithErrorHandler[handler.Context, struct{}](m.cfg.ErrorHandler),
		))
		r.Get("/about", handler.Wrap(m.about,
			handler.WithErrorHandler[handler.Context, struct{}](m.cfg.ErrorHandler),
		))
		r.Get("/project/{name}", handler.Wrap(m.project,
			handler.WithBinders[handler.Context, projectRequest](binder.Path()),
			handler.WithErrorHandler[handler.Context, projectRequest](m.cfg.ErrorHandler),
		))

		search := handler.Wrap(m.search,
			handler.WithBinders[handler.Context, searchRequest](binder.Query(), readSearchSignals),
			handler.WithErrorHandler[handler.Context, searchRequest](m.cfg.ErrorHandler),
		)
		r.Get("/search", search)
		r.Get("/search/", search)
	})
}

// Router returns a standalone router with the catalog pages.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	m.Routes(r)
	return r
}

func (m *Module) page(ctx context.Context) views.Page {
	return views.Page{
		AppName:       m.cfg.AppName,
		Authenticated: identity.FromContext(ctx).IsAuthenticated(),
	}
}
