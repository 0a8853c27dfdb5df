package config

import "errors"

var (
	ErrParsingConfig = errors.New("config.parsing_failed")
	ErrLoadingEnv    = errors.New("config.env_file_failed")
	ErrNilPointer    = errors.New("config.nil_pointer")
)
