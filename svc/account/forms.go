package account

import (
	"github.com/dmitrymomot/pkgindex/pkg/sanitizer"
	"github.com/dmitrymomot/pkgindex/pkg/validator"
)

// RegisterForm is the registration form. Age is optional.
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Age      *int   `form:"age"`
}

func (f *RegisterForm) Sanitize() {
	f.Name = sanitizer.DisplayName(f.Name)
	f.Email = sanitizer.NormalizeEmail(f.Email)
}

func (f RegisterForm) Validate() error {
	rules := []validator.Rule{
		validator.Required("name", f.Name),
		validator.MinLen("name", f.Name, 2),
		validator.MaxLen("name", f.Name, 50),
		validator.Required("email", f.Email),
		validator.ValidEmail("email", f.Email),
		validator.MinLen("password", f.Password, 6),
		validator.MaxLen("password", f.Password, 20),
		validator.StrongPassword("password", f.Password),
	}
	if f.Age != nil {
		rules = append(rules,
			validator.Min("age", *f.Age, 18),
			validator.Max("age", *f.Age, 119),
		)
	}
	return validator.Apply(rules...)
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f *LoginForm) Sanitize() {
	f.Email = sanitizer.NormalizeEmail(f.Email)
}

func (f LoginForm) Validate() error {
	return validator.Apply(
		validator.Required("email", f.Email),
		validator.ValidEmail("email", f.Email),
		validator.MinLen("password", f.Password, 6),
	)
}
