package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pkgindex/pkg/logger"
)

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestAttrKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attr slog.Attr
		key  string
	}{
		{logger.Group("req", slog.String("id", "1")), "req"},
		{logger.UserID(int64(7)), "user_id"},
		{logger.RequestID("abc"), "request_id"},
		{logger.Duration(time.Second), "duration"},
		{logger.Component("cache"), "component"},
		{logger.Handler("catalog.project"), "handler"},
		{logger.CacheKey("package_x"), "cache_key"},
		{logger.Package("x"), "package"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
	}

	assert.True(t, logger.UserID(nil).Equal(slog.Attr{}))
}
