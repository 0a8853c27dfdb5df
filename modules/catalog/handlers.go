package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/pkg/async"
	"github.com/dmitrymomot/pkgindex/pkg/cache"
	"github.com/dmitrymomot/pkgindex/pkg/logger"
	"github.com/dmitrymomot/pkgindex/svc/packages"
	"github.com/dmitrymomot/pkgindex/views"
)

type projectRequest struct {
	Name string `path:"name"`
}

type searchRequest struct {
	Q string `query:"q" json:"q"`
}

// readSearchSignals takes q from the DataStar signals when the query string
// does not carry it.
func readSearchSignals(r *http.Request, v any) error {
	req, ok := v.(*searchRequest)
	if !ok || req.Q != "" || !handler.IsDataStar(r) {
		return nil
	}
	return datastar.ReadSignals(r, req)
}

func (m *Module) home(ctx handler.Context, _ struct{}) handler.Response {
	statsF := async.Async(ctx, struct{}{}, func(c context.Context, _ struct{}) (packages.Stats, error) {
		return m.cfg.Catalog.Stats(c)
	})
	latest, err := m.cfg.Catalog.LatestPackages(ctx, packages.DefaultLatestLimit)
	if err != nil {
		return handler.Error(err)
	}
	stats, err := statsF.Await()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(views.Home(m.page(ctx), views.HomeData{Stats: stats, Latest: latest}))
}

func (m *Module) about(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(views.About(m.page(ctx)))
}

func (m *Module) project(ctx handler.Context, req projectRequest) handler.Response {
	key := cache.Key(cache.KindPackage, req.Name)
	details, hit, err := m.cfg.Details.GetOrCompute(ctx, key, func(c context.Context) (packages.Details, error) {
		return m.cfg.Catalog.Details(c, strings.TrimSpace(req.Name))
	})
	if err != nil {
		return handler.Error(err)
	}
	m.cfg.Logger.DebugContext(ctx, "project page",
		logger.Package(req.Name),
		logger.CacheKey(key),
		logger.Component("catalog"),
		slog.Bool("cache_hit", hit),
	)

	if !details.Found() {
		return handler.TemplWithStatus(http.StatusNotFound, views.NotFound(m.page(ctx)))
	}
	return handler.Templ(views.Project(m.page(ctx), details))
}

func (m *Module) search(ctx handler.Context, req searchRequest) handler.Response {
	if strings.TrimSpace(req.Q) == "" {
		return handler.TemplWithStatus(http.StatusNotFound, views.NotFound(m.page(ctx)))
	}

	key := cache.Key(cache.KindSearch, req.Q)
	result, _, err := m.cfg.Search.GetOrCompute(ctx, key, func(c context.Context) (packages.SearchResult, error) {
		return m.cfg.Catalog.Search(c, req.Q)
	})
	if err != nil {
		return handler.Error(err)
	}

	return handler.TemplPartial(
		views.SearchResults(result),
		views.Search(m.page(ctx), result),
		handler.WithTarget("#search-results"),
	)
}
