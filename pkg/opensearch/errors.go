package opensearch

import "errors"

var (
	ErrNotConfigured     = errors.New("opensearch.not_configured")
	ErrConnectionFailed  = errors.New("opensearch.connection_failed")
	ErrHealthcheckFailed = errors.New("opensearch.healthcheck_failed")
)
