package signature

import "errors"

var (
	ErrInvalidKey  = errors.New("signature.invalid_key")
	ErrInvalidSize = errors.New("signature.invalid_size")
)
