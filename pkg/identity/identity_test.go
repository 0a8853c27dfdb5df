package identity_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pkgindex/pkg/cookie"
	"github.com/dmitrymomot/pkgindex/pkg/identity"
	"github.com/dmitrymomot/pkgindex/pkg/signature"
)

const cookieName = "pkgindex_auth"

func newCodec(t *testing.T) (*identity.Codec, *signature.Signer) {
	t.Helper()
	signer, err := signature.New([]byte("test-secret-key"))
	require.NoError(t, err)
	codec, err := identity.NewCodec(signer, cookie.New(), cookieName)
	require.NoError(t, err)
	return codec, signer
}

func TestNewCodec(t *testing.T) {
	t.Parallel()

	signer, err := signature.New([]byte("k"))
	require.NoError(t, err)

	_, err = identity.NewCodec(nil, cookie.New(), cookieName)
	assert.ErrorIs(t, err, identity.ErrInvalidCodec)

	_, err = identity.NewCodec(signer, nil, cookieName)
	assert.ErrorIs(t, err, identity.ErrInvalidCodec)

	_, err = identity.NewCodec(signer, cookie.New(), "  ")
	assert.ErrorIs(t, err, identity.ErrInvalidCodec)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	for _, id := range []int64{1, 42, 1 << 40} {
		value, err := codec.Value(id)
		require.NoError(t, err)

		res := codec.Decode(value)
		assert.Equal(t, identity.Authenticated, res.Status)
		assert.Equal(t, id, res.ID)
		assert.True(t, res.IsAuthenticated())
		require.NotNil(t, res.UserID())
		assert.Equal(t, id, *res.UserID())
	}
}

func TestCodec_ValueFormat(t *testing.T) {
	t.Parallel()
	codec, signer := newCodec(t)

	value, err := codec.Value(42)
	require.NoError(t, err)

	parts := strings.Split(value, ":")
	require.Len(t, parts, 2)
	assert.Equal(t, base64.URLEncoding.EncodeToString([]byte("42")), parts[0])
	assert.Equal(t, signer.Sign("42"), parts[1])
}

func TestCodec_Value_RejectsNonPositive(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	for _, id := range []int64{0, -1} {
		_, err := codec.Value(id)
		assert.ErrorIs(t, err, identity.ErrInvalidIdentity)
	}
}

func TestCodec_Decode(t *testing.T) {
	t.Parallel()
	codec, signer := newCodec(t)

	b64 := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		raw    string
		status identity.Status
	}{
		{"empty", "", identity.Anonymous},
		{"no separator", "abc", identity.Anonymous},
		{"too many parts", "a:b:c", identity.Anonymous},
		{"invalid base64", "!!!:" + signer.Sign("1"), identity.Anonymous},
		{"empty payload", ":" + signer.Sign(""), identity.Anonymous},
		{"wrong signature", b64("42") + ":" + signer.Sign("43"), identity.Tampered},
		{"garbage signature", b64("42") + ":zz", identity.Tampered},
		{"signed non numeric", b64("admin") + ":" + signer.Sign("admin"), identity.Anonymous},
		{"signed zero", b64("0") + ":" + signer.Sign("0"), identity.Anonymous},
		{"signed negative", b64("-5") + ":" + signer.Sign("-5"), identity.Anonymous},
		{"unpadded base64url", base64.RawURLEncoding.EncodeToString([]byte("7")) + ":" + signer.Sign("7"), identity.Authenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := codec.Decode(tt.raw)
			assert.Equal(t, tt.status, res.Status)
			if tt.status != identity.Authenticated {
				assert.False(t, res.IsAuthenticated())
				assert.Nil(t, res.UserID())
			}
		})
	}
}

func TestCodec_Decode_SingleCharTamper(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	value, err := codec.Value(42)
	require.NoError(t, err)
	sigStart := strings.Index(value, ":") + 1

	for i := sigStart; i < len(value); i++ {
		b := []byte(value)
		if b[i] == '0' {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
		assert.Equal(t, identity.Tampered, codec.Decode(string(b)).Status, "position %d", i)
	}
}

func TestCodec_Decode_CaseFlippedSignature(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	value, err := codec.Value(42)
	require.NoError(t, err)
	sigStart := strings.Index(value, ":") + 1

	flipped := 0
	for i := sigStart; i < len(value); i++ {
		if value[i] < 'a' || value[i] > 'f' {
			continue
		}
		b := []byte(value)
		b[i] -= 'a' - 'A'
		assert.Equal(t, identity.Tampered, codec.Decode(string(b)).Status, "position %d", i)
		flipped++
	}
	require.Positive(t, flipped)
}

func TestCodec_Decode_OtherKey(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	other, err := signature.New([]byte("another-key"))
	require.NoError(t, err)
	otherCodec, err := identity.NewCodec(other, cookie.New(), cookieName)
	require.NoError(t, err)

	value, err := otherCodec.Value(42)
	require.NoError(t, err)
	assert.Equal(t, identity.Tampered, codec.Decode(value).Status)
}

func TestCodec_Encode(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	c, err := codec.Encode(9)
	require.NoError(t, err)
	assert.Equal(t, cookieName, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, identity.Authenticated, codec.Decode(c.Value).Status)
}

func TestCodec_SetCookieAndFromRequest(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	rec := httptest.NewRecorder()
	require.NoError(t, codec.SetCookie(rec, 12))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	res := codec.FromRequest(req)
	assert.Equal(t, identity.Authenticated, res.Status)
	assert.Equal(t, int64(12), res.ID)

	assert.Equal(t, identity.Anonymous, codec.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)).Status)
}

func TestCodec_ClearCookie(t *testing.T) {
	t.Parallel()
	codec, _ := newCodec(t)

	rec := httptest.NewRecorder()
	codec.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestFromContext_Default(t *testing.T) {
	t.Parallel()
	assert.Equal(t, identity.Anonymous, identity.FromContext(context.Background()).Status)

	ctx := identity.WithContext(context.Background(), identity.Result{ID: 3, Status: identity.Authenticated})
	assert.Equal(t, int64(3), identity.FromContext(ctx).ID)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	extract := identity.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	ctx := identity.WithContext(context.Background(), identity.Result{ID: 3, Status: identity.Authenticated})
	attr, ok := extract(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user_id", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	codec, signer := newCodec(t)
	valid, err := codec.Value(5)
	require.NoError(t, err)
	forged := base64.URLEncoding.EncodeToString([]byte("5")) + ":" + signer.Sign("6")

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Status", identity.FromContext(r.Context()).Status.String())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		gate       func(string) func(http.Handler) http.Handler
		value      string
		wantCode   int
		wantStatus string
	}{
		{"tampered gate passes anonymous", identity.RedirectTampered, "", http.StatusOK, "anonymous"},
		{"tampered gate passes valid", identity.RedirectTampered, valid, http.StatusOK, "authenticated"},
		{"tampered gate redirects forged", identity.RedirectTampered, forged, http.StatusTemporaryRedirect, ""},
		{"auth gate redirects anonymous", identity.RequireAuthenticated, "", http.StatusTemporaryRedirect, ""},
		{"auth gate redirects forged", identity.RequireAuthenticated, forged, http.StatusTemporaryRedirect, ""},
		{"auth gate passes valid", identity.RequireAuthenticated, valid, http.StatusOK, "authenticated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := identity.Middleware(codec)(tt.gate("/login")(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/account/me", nil)
			if tt.value != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.value})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusTemporaryRedirect {
				assert.Equal(t, "/login", rec.Header().Get("Location"))
			} else {
				assert.Equal(t, tt.wantStatus, rec.Header().Get("X-Status"))
			}
		})
	}
}
