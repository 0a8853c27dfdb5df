package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/pkgindex/pkg/async"
	"github.com/dmitrymomot/pkgindex/pkg/logger"
)

// Service registers and authenticates accounts.
type Service struct {
	storage       Storage
	bcryptCost    int
	logger        *slog.Logger
	runner        *async.Runner
	now           func() time.Time
	afterRegister func(ctx context.Context, user *User) error
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBcryptCost sets the bcrypt cost for new hashes.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithRunner sets the runner used for last-login updates and hooks.
func WithRunner(r *async.Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.runner = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAfterRegister sets a hook run in the background after a successful
// registration. Hook errors are logged only.
func WithAfterRegister(fn func(context.Context, *User) error) Option {
	return func(s *Service) {
		s.afterRegister = fn
	}
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = async.NewRunner("account", async.WithLogger(s.logger))
	}
	return s
}

// CreateAccount sanitizes and validates form, then stores a new account.
// Validation failures return validator.ValidationErrors and a taken email
// returns ErrDuplicateIdentity.
func (s *Service) CreateAccount(ctx context.Context, form RegisterForm) (*User, error) {
	form.Sanitize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	_, err := s.storage.GetByEmail(ctx, form.Email)
	if err == nil {
		return nil, ErrDuplicateIdentity
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:         form.Name,
		Email:        form.Email,
		PasswordHash: hash,
	}
	if err := s.storage.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "account created",
		logger.UserID(user.ID),
		logger.Component("account"),
	)

	if s.afterRegister != nil {
		registered := *user
		s.runner.Go(ctx, "after_register", func(ctx context.Context) error {
			return s.afterRegister(ctx, &registered)
		})
	}

	return user, nil
}

// Authenticate returns the account matching email and password. Unknown
// emails and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, form LoginForm) (*User, error) {
	form.Sanitize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	user, err := s.storage.GetByEmail(ctx, form.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(form.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateLastLogin records the login time in the background. It never blocks
// the caller and failures are logged only.
func (s *Service) UpdateLastLogin(ctx context.Context, id int64) {
	at := s.now()
	s.runner.Go(ctx, "update_last_login", func(ctx context.Context) error {
		return s.storage.UpdateLastLogin(ctx, id, at)
	})
}

// GetByID returns ErrNotFound when no account has id.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.storage.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// Wait blocks until background tasks finish.
func (s *Service) Wait() {
	s.runner.Wait()
}
