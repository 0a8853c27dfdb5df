package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/pkg/binder"
	"github.com/dmitrymomot/pkgindex/pkg/requestid"
	"github.com/dmitrymomot/pkgindex/pkg/validator"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

type searchRequest struct {
	Q string `query:"q"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(
			func(_ handler.Context, req searchRequest) handler.Response {
				return handler.Templ(text("q=" + req.Q))
			},
			handler.WithBinders[handler.Context, searchRequest](binder.Query()),
		)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/search/?q=djan", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "q=djan", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("bind error is a bad request", func(t *testing.T) {
		t.Parallel()
		type pageRequest struct {
			Page int `query:"page"`
		}
		var got error
		h := handler.Wrap(
			func(handler.Context, pageRequest) handler.Response { return handler.Templ(text("x")) },
			handler.WithBinders[handler.Context, pageRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, pageRequest](func(_ handler.Context, err error) { got = err }),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?page=x", nil))
		assert.ErrorIs(t, got, handler.ErrBadRequest)
		assert.ErrorIs(t, got, binder.ErrInvalidQuery)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(
			func(handler.Context, struct{}) handler.Response { return handler.Templ(text("ok")) },
			handler.WithDecorators(mark("a"), mark("b")),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("error response goes to default handler", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return handler.Error(handler.ErrNotFound)
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, rec, ctx.ResponseWriter())
	assert.Equal(t, "v", ctx.Value(key{}))
	assert.NoError(t, ctx.Err())
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/search/?q=a", nil)
	assert.False(t, handler.IsDataStar(req))

	req.Header.Set("Accept", "text/event-stream")
	assert.True(t, handler.IsDataStar(req))

	req = httptest.NewRequest(http.MethodGet, "/search/?"+url.Values{"datastar": {`{"q":"a"}`}}.Encode(), nil)
	assert.True(t, handler.IsDataStar(req))
}

func TestTemplResponses(t *testing.T) {
	t.Parallel()

	t.Run("status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.TemplWithStatus(http.StatusNotFound, text("missing")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "missing", rec.Body.String())
	})

	t.Run("partial for datastar", func(t *testing.T) {
		t.Parallel()
		resp := handler.TemplPartial(text(`<ul id="results">p</ul>`), text("full page"), handler.WithTarget("#results"))

		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "full page", rec.Body.String())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/event-stream")
		rec = httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, req))
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), "#results")
		assert.NotContains(t, rec.Body.String(), "full page")
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/account/me").Render(rec, httptest.NewRequest(http.MethodPost, "/login", nil)))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/me", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.RedirectWithCode("/login", http.StatusTemporaryRedirect).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/event-stream")
	rec = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/account/me").Render(rec, req))
	assert.Contains(t, rec.Body.String(), "/account/me")
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	var verrs validator.ValidationErrors
	verrs.Add("email", "must be a valid email address", "validation.email")

	tests := []struct {
		name   string
		err    error
		status int
		level  slog.Level
	}{
		{"http error", handler.ErrNotFound, http.StatusNotFound, slog.LevelWarn},
		{"wrapped http error", errors.Join(errors.New("x"), handler.ErrUnauthorized), http.StatusUnauthorized, slog.LevelWarn},
		{"validation", verrs, http.StatusBadRequest, slog.LevelWarn},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := handler.ClassifyError(tt.err)
			assert.Equal(t, tt.status, info.StatusCode)
			assert.Equal(t, tt.level, info.LogLevel)
			assert.NotEmpty(t, info.Message)
		})
	}

	assert.NotContains(t, handler.ClassifyError(errors.New("pq: secret detail")).Message, "secret")
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	eh := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return text(p.Error + "|" + p.RequestID)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/project/x", nil)
	req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, req), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.HasSuffix(rec.Body.String(), "|req-1"))
	assert.Contains(t, logs.String(), "request error")
	assert.Contains(t, logs.String(), "status_code=500")

	rec = httptest.NewRecorder()
	handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})(handler.NewContext(rec, req), handler.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
