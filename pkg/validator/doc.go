// Package validator builds declarative validation rules for form input.
//
// Each helper returns a Rule; Apply evaluates them and reports every failure
// as ValidationErrors, which implements error and is matched by
// errors.Is(err, ErrValidationFailed).
//
//	err := validator.Apply(
//		validator.MinLen("name", f.Name, 2),
//		validator.ValidEmail("email", f.Email),
//	)
package validator
