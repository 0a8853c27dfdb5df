package packages_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pkgindex/svc/packages"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Latest(ctx context.Context, limit int) ([]packages.LatestPackage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]packages.LatestPackage), args.Error(1)
}

func (m *mockRepo) Stats(ctx context.Context) (packages.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(packages.Stats), args.Error(1)
}

func (m *mockRepo) GetPackage(ctx context.Context, name string) (*packages.Package, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packages.Package), args.Error(1)
}

func (m *mockRepo) LatestRelease(ctx context.Context, name string) (*packages.Release, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packages.Release), args.Error(1)
}

func (m *mockRepo) Maintainers(ctx context.Context, name string) ([]packages.Maintainer, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]packages.Maintainer), args.Error(1)
}

func (m *mockRepo) SearchPrefix(ctx context.Context, prefix string, limit int) ([]packages.Package, error) {
	args := m.Called(ctx, prefix, limit)
	return args.Get(0).([]packages.Package), args.Error(1)
}

func (m *mockRepo) ListAfter(ctx context.Context, after string, limit int) ([]packages.Package, error) {
	args := m.Called(ctx, after, limit)
	return args.Get(0).([]packages.Package), args.Error(1)
}

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Search(ctx context.Context, prefix string, limit int) ([]packages.Package, error) {
	args := m.Called(ctx, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]packages.Package), args.Error(1)
}

func (m *mockIndex) Index(ctx context.Context, p packages.Package) error {
	return m.Called(ctx, p).Error(0)
}

func TestRelease_Version(t *testing.T) {
	t.Parallel()

	var none *packages.Release
	assert.Equal(t, "0.0.0", none.Version())
	assert.Equal(t, "4.2.17", (&packages.Release{Major: 4, Minor: 2, Build: 17}).Version())
}

func TestDetails(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		repo.On("GetPackage", mock.Anything, "django").Return(&packages.Package{ID: "django"}, nil)
		repo.On("LatestRelease", mock.Anything, "django").Return(&packages.Release{Major: 5}, nil)
		repo.On("Maintainers", mock.Anything, "django").Return([]packages.Maintainer{{Name: "Ann"}}, nil)

		d, err := packages.NewService(repo).Details(context.Background(), "django")
		require.NoError(t, err)
		assert.True(t, d.Found())
		assert.Equal(t, "5.0.0", d.Release.Version())
		assert.Len(t, d.Maintainers, 1)
	})

	t.Run("unknown package is not an error", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		repo.On("GetPackage", mock.Anything, "unknown-pkg").Return(nil, nil)

		d, err := packages.NewService(repo).Details(context.Background(), "unknown-pkg")
		require.NoError(t, err)
		assert.False(t, d.Found())
		repo.AssertNotCalled(t, "LatestRelease", mock.Anything, mock.Anything)
	})

	t.Run("db error", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		repo.On("GetPackage", mock.Anything, "x").Return(nil, errors.New("conn refused"))

		_, err := packages.NewService(repo).Details(context.Background(), "x")
		assert.Error(t, err)
	})
}

func TestLatestPackages(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{}
	repo.On("Latest", mock.Anything, packages.DefaultLatestLimit).Return([]packages.LatestPackage{{Name: "a"}}, nil)

	got, err := packages.NewService(repo).LatestPackages(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()
		res, err := packages.NewService(&mockRepo{}).Search(context.Background(), "   ")
		require.NoError(t, err)
		assert.Empty(t, res.Packages)
	})

	t.Run("database", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		repo.On("SearchPrefix", mock.Anything, "djan", packages.DefaultSearchLimit).
			Return([]packages.Package{{ID: "django"}}, nil)

		res, err := packages.NewService(repo).Search(context.Background(), " djan ")
		require.NoError(t, err)
		assert.Equal(t, "djan", res.Query)
		assert.Equal(t, "django", res.Packages[0].ID)
	})

	t.Run("index preferred", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		idx := &mockIndex{}
		idx.On("Search", mock.Anything, "fl", 10).Return([]packages.Package{{ID: "flask"}}, nil)

		res, err := packages.NewService(repo, packages.WithSearchIndex(idx), packages.WithSearchLimit(10)).
			Search(context.Background(), "fl")
		require.NoError(t, err)
		assert.Equal(t, "flask", res.Packages[0].ID)
		repo.AssertNotCalled(t, "SearchPrefix", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("index failure falls back", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepo{}
		repo.On("SearchPrefix", mock.Anything, "fl", packages.DefaultSearchLimit).
			Return([]packages.Package{{ID: "flask"}}, nil)
		idx := &mockIndex{}
		idx.On("Search", mock.Anything, "fl", packages.DefaultSearchLimit).Return(nil, packages.ErrIndexUnavailable)

		res, err := packages.NewService(repo, packages.WithSearchIndex(idx)).Search(context.Background(), "fl")
		require.NoError(t, err)
		assert.Equal(t, "flask", res.Packages[0].ID)
	})
}

func TestReindex(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{}
	first := make([]packages.Package, 500)
	for i := range first {
		first[i] = packages.Package{ID: string(rune('a'+i%26)) + "pkg"}
	}
	first[499].ID = "zz"
	repo.On("ListAfter", mock.Anything, "", 500).Return(first, nil)
	repo.On("ListAfter", mock.Anything, "zz", 500).Return([]packages.Package{{ID: "zzz"}}, nil)

	idx := &mockIndex{}
	idx.On("Index", mock.Anything, mock.Anything).Return(nil)

	n, err := packages.NewService(repo).Reindex(context.Background(), idx)
	require.NoError(t, err)
	assert.Equal(t, 501, n)
	idx.AssertNumberOfCalls(t, "Index", 501)
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\%b\_c\\d`, packages.EscapeLike(`a%b_c\d`))
	assert.Equal(t, "django", packages.EscapeLike("django"))
}
