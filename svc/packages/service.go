package packages

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/pkgindex/pkg/logger"
	"github.com/dmitrymomot/pkgindex/pkg/sanitizer"
)

const (
	DefaultLatestLimit = 7
	DefaultSearchLimit = 50
)

// Service answers the catalog pages.
type Service struct {
	repo        Repository
	index       SearchIndex
	searchLimit int
	logger      *slog.Logger
}

type Option func(*Service)

// WithSearchIndex delegates Search to idx, falling back to the repository
// when the index fails.
func WithSearchIndex(idx SearchIndex) Option {
	return func(s *Service) {
		s.index = idx
	}
}

func WithSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		searchLimit: DefaultSearchLimit,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LatestPackages returns the packages with the most recent releases.
func (s *Service) LatestPackages(ctx context.Context, limit int) ([]LatestPackage, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return s.repo.Latest(ctx, limit)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// Details loads the project page payload. An unknown name yields Details
// with a nil Package and no error.
func (s *Service) Details(ctx context.Context, name string) (Details, error) {
	pkg, err := s.repo.GetPackage(ctx, name)
	if err != nil {
		return Details{}, err
	}
	if pkg == nil {
		return Details{}, nil
	}

	rel, err := s.repo.LatestRelease(ctx, name)
	if err != nil {
		return Details{}, err
	}
	maintainers, err := s.repo.Maintainers(ctx, name)
	if err != nil {
		return Details{}, err
	}
	return Details{Package: pkg, Release: rel, Maintainers: maintainers}, nil
}

// Search returns packages whose name starts with q. An empty query returns
// no packages.
func (s *Service) Search(ctx context.Context, q string) (SearchResult, error) {
	q = sanitizer.SearchQuery(q)
	res := SearchResult{Query: q}
	if q == "" {
		return res, nil
	}

	if s.index != nil {
		found, err := s.index.Search(ctx, q, s.searchLimit)
		if err == nil {
			res.Packages = found
			return res, nil
		}
		s.logger.WarnContext(ctx, "search index failed, falling back to database",
			logger.Error(err),
			logger.Component("packages"),
		)
	}

	found, err := s.repo.SearchPrefix(ctx, q, s.searchLimit)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search %q: %w", q, err)
	}
	res.Packages = found
	return res, nil
}

// Indexer receives package documents during Reindex.
type Indexer interface {
	Index(ctx context.Context, p Package) error
}

const reindexBatch = 500

// Reindex copies every package from the repository into idx and returns
// the number of documents written.
func (s *Service) Reindex(ctx context.Context, idx Indexer) (int, error) {
	var (
		after string
		total int
	)
	for {
		batch, err := s.repo.ListAfter(ctx, after, reindexBatch)
		if err != nil {
			return total, err
		}
		for _, p := range batch {
			if err := idx.Index(ctx, p); err != nil {
				return total, err
			}
			total++
		}
		if len(batch) < reindexBatch {
			break
		}
		after = batch[len(batch)-1].ID
	}

	s.logger.InfoContext(ctx, "search index rebuilt",
		slog.Int("packages", total),
		logger.Component("packages"),
	)
	return total, nil
}
