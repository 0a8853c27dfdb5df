package identity

import "net/http"

// Middleware decodes the identity cookie once per request and stores the
// result in the request context.
func Middleware(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := codec.FromRequest(r)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res)))
		})
	}
}

// RedirectTampered sends requests carrying a tampered cookie to loginURL
// with 307 Temporary Redirect. Anonymous requests pass through.
func RedirectTampered(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()).Status == Tampered {
				http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated sends every request without a trusted identity to
// loginURL with 307 Temporary Redirect.
func RequireAuthenticated(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !FromContext(r.Context()).IsAuthenticated() {
				http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
