package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/pkg/identity"
	"github.com/dmitrymomot/pkgindex/pkg/logger"
	"github.com/dmitrymomot/pkgindex/pkg/validator"
	accountsvc "github.com/dmitrymomot/pkgindex/svc/account"
	"github.com/dmitrymomot/pkgindex/views"
)

const (
	msgFixFields          = "Please correct the highlighted fields."
	msgDuplicateEmail     = "An account with this email already exists."
	msgInvalidCredentials = "Invalid email or password."
)

func (m *Module) anonymousPage() views.Page {
	return views.Page{AppName: m.cfg.AppName}
}

func (m *Module) registerPage(handler.Context, struct{}) handler.Response {
	return handler.Templ(views.Register(m.anonymousPage(), views.Form{}))
}

func (m *Module) register(ctx handler.Context, form accountsvc.RegisterForm) handler.Response {
	user, err := m.cfg.Accounts.CreateAccount(ctx, form)
	if err != nil {
		f := views.Form{Values: registerValues(form)}
		switch {
		case errors.Is(err, accountsvc.ErrDuplicateIdentity):
			f.Message = msgDuplicateEmail
			f.Errors = map[string][]string{"email": {msgDuplicateEmail}}
		case validator.IsValidationError(err):
			f.Message = msgFixFields
			f.Errors = validator.ExtractValidationErrors(err).Map()
		default:
			return handler.Error(err)
		}
		return handler.TemplWithStatus(http.StatusBadRequest, views.Register(m.anonymousPage(), f))
	}

	return m.signIn(ctx, user.ID)
}

func (m *Module) loginPage(handler.Context, struct{}) handler.Response {
	return handler.Templ(views.Login(m.anonymousPage(), views.Form{}))
}

func (m *Module) login(ctx handler.Context, form accountsvc.LoginForm) handler.Response {
	user, err := m.cfg.Accounts.Authenticate(ctx, form)
	if err != nil {
		f := views.Form{Values: map[string]string{"email": form.Email}}
		status := http.StatusUnauthorized
		switch {
		case errors.Is(err, accountsvc.ErrInvalidCredentials):
			f.Message = msgInvalidCredentials
		case validator.IsValidationError(err):
			status = http.StatusBadRequest
			f.Message = msgFixFields
			f.Errors = validator.ExtractValidationErrors(err).Map()
		default:
			return handler.Error(err)
		}
		return handler.TemplWithStatus(status, views.Login(m.anonymousPage(), f))
	}

	m.cfg.Accounts.UpdateLastLogin(ctx, user.ID)
	return m.signIn(ctx, user.ID)
}

func (m *Module) signIn(ctx handler.Context, id int64) handler.Response {
	if err := m.cfg.Codec.SetCookie(ctx.ResponseWriter(), id); err != nil {
		return handler.Error(err)
	}
	m.cfg.Logger.InfoContext(ctx, "signed in", logger.UserID(id), logger.Component("account"))
	return handler.Redirect(ProfileURL)
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	m.cfg.Codec.ClearCookie(ctx.ResponseWriter())
	return handler.Redirect("/")
}

func (m *Module) profile(ctx handler.Context, _ struct{}) handler.Response {
	page := views.Page{AppName: m.cfg.AppName, Authenticated: true}

	id := identity.FromContext(ctx).ID
	user, err := m.cfg.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, accountsvc.ErrNotFound) {
			return handler.TemplWithStatus(http.StatusNotFound, views.NotFound(page))
		}
		return handler.Error(err)
	}
	return handler.Templ(views.Account(page, user))
}

func registerValues(form accountsvc.RegisterForm) map[string]string {
	v := map[string]string{"name": form.Name, "email": form.Email}
	if form.Age != nil {
		v["age"] = strconv.Itoa(*form.Age)
	}
	return v
}
