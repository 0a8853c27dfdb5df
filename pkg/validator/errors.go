package validator

import "errors"

var ErrValidationFailed = errors.New("validator.failed")
