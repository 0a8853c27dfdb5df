package account

import "errors"

var (
	ErrDuplicateIdentity  = errors.New("account.duplicate_identity")
	ErrInvalidCredentials = errors.New("account.invalid_credentials")
	ErrNotFound           = errors.New("account.not_found")
)
