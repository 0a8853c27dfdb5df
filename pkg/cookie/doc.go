// Package cookie writes and reads HTTP cookies with a consistent set of
// attributes (Path, Domain, MaxAge, Secure, HttpOnly, SameSite).
//
// A Manager is configured once from Config (environment variables via
// github.com/caarlos0/env) and shared by reference. Integrity of cookie values
// is not handled here; callers that need tamper evidence sign the value
// themselves (see package identity).
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man, err := cookie.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	_ = man.Set(w, cfg.Name, value)
//
// ErrCookieNotFound is returned by Get when the cookie is absent, so callers
// can tell "no cookie" apart from other failures with errors.Is.
package cookie
