package account

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/pkg/binder"
	"github.com/dmitrymomot/pkgindex/pkg/identity"
	accountsvc "github.com/dmitrymomot/pkgindex/svc/account"
)

// Accounts is the account service as seen by the pages.
type Accounts interface {
	CreateAccount(ctx context.Context, form accountsvc.RegisterForm) (*accountsvc.User, error)
	Authenticate(ctx context.Context, form accountsvc.LoginForm) (*accountsvc.User, error)
	UpdateLastLogin(ctx context.Context, id int64)
	GetByID(ctx context.Context, id int64) (*accountsvc.User, error)
}

type Config struct {
	AppName      string
	Accounts     Accounts
	Codec        *identity.Codec
	ErrorHandler handler.ErrorHandler[handler.Context]
	Logger       *slog.Logger
}

const (
	LoginURL   = "/login"
	ProfileURL = "/account/me"
)

// Module serves registration, login, logout and the profile page.
type Module struct {
	cfg Config
}

func New(cfg Config) *Module {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = handler.NewErrorHandler(cfg.Logger, handler.ErrorHandlerConfig{})
	}
	return &Module{cfg: cfg}
}

// Routes registers the account pages on r. Login and registration never
// look at the identity cookie.
func (m *Module) Routes(r chi.Router) {
	r.Get("/register", handler.Wrap(m.registerPage,
		handler.WithErrorHandler[handler.Context, struct{}](m.cfg.ErrorHandler),
	))
	r.Post("/register", handler.Wrap(m.register,
		handler.WithBinders[handler.Context, accountsvc.RegisterForm](binder.Form()),
		handler.WithErrorHandler[handler.Context, accountsvc.RegisterForm](m.cfg.ErrorHandler),
	))
	r.Get("/login", handler.Wrap(m.loginPage,
		handler.WithErrorHandler[handler.Context, struct{}](m.cfg.ErrorHandler),
	))
	r.Post("/login", handler.Wrap(m.login,
		handler.WithBinders[handler.Context, accountsvc.LoginForm](binder.Form()),
		handler.WithErrorHandler[handler.Context, accountsvc.LoginForm](m.cfg.ErrorHandler),
	))
	r.Get("/account/logout", handler.Wrap(m.logout,
		handler.WithErrorHandler[handler.Context, struct{}](m.cfg.ErrorHandler),
	))
	r.With(identity.RequireAuthenticated(LoginURL)).Get(ProfileURL, handler.Wrap(m.profile,
		handler.WithErrorHandler[handler.Context, struct{}](m.cfg.ErrorHandler),
	))
}

// Router returns a standalone router with the account pages.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	m.Routes(r)
	return r
}
