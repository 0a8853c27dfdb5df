package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/pkgindex/pkg/logger"
)

// DefaultTimeout bounds a background task when the runner has no timeout set.
const DefaultTimeout = 10 * time.Second

// Runner executes fire-and-forget tasks that must outlive the request that
// scheduled them. Each task gets a context detached from the caller's
// cancellation but bounded by the runner timeout. Failures and panics are
// logged, never returned.
type Runner struct {
	name    string
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout sets the per-task timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for task failures.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner. name is attached to log records as component.
func NewRunner(name string, opts ...RunnerOption) *Runner {
	r := &Runner{
		name:    name,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Go schedules task. The caller's context values (request id, identity) are
// kept for logging while its deadline and cancellation are dropped.
func (r *Runner) Go(ctx context.Context, task string, fn func(context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.run(taskCtx, fn); err != nil {
			r.logger.WarnContext(taskCtx, "background task failed",
				logger.Component(r.name),
				slog.String("task", task),
				logger.Error(err),
			)
		}
	}()
}

// Wait blocks until every scheduled task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError(rec)
		}
	}()
	return fn(ctx)
}

func panicError(v any) error {
	return fmt.Errorf("%w: %v", ErrPanic, v)
}
