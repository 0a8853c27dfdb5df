package packages

import "errors"

var (
	ErrIndexUnavailable = errors.New("packages.index_unavailable")
	ErrIndexRequest     = errors.New("packages.index_request_failed")
)
