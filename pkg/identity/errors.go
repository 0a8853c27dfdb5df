package identity

import "errors"

var (
	ErrInvalidCodec    = errors.New("identity.invalid_codec")
	ErrInvalidIdentity = errors.New("identity.invalid_identity")
	ErrSetCookie       = errors.New("identity.set_cookie_failed")
)
