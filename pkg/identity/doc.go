// Package identity carries the signed user identity cookie.
//
// A Codec writes the value base64url(id) + ":" + signature(id) and decodes
// inbound values into a Result that is Anonymous, Authenticated or Tampered.
// Middleware decodes the cookie once per request and stores the Result in the
// request context; RedirectTampered and RequireAuthenticated gate routes on it.
//
//	codec, _ := identity.NewCodec(signer, cookies, "pkgindex_auth")
//	r.Use(identity.Middleware(codec))
//	r.With(identity.RequireAuthenticated("/login")).Get("/account/me", me)
package identity
