package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/pkgindex/pkg/logger"
	"github.com/dmitrymomot/pkgindex/pkg/requestid"
	"github.com/dmitrymomot/pkgindex/pkg/validator"
)

// ErrorPageParams is passed to the error page component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the error page. When nil a plain text body is written.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorPartial renders the fragment patched for DataStar requests.
	// Defaults to ErrorPage.
	ErrorPartial func(ErrorPageParams) templ.Component
	// ErrorTarget is the selector error pages are patched into for DataStar
	// requests. Defaults to "#main".
	ErrorTarget string
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

// ClassifyError maps err to a status code and a user-facing message.
// Unknown errors become 500 with a generic message.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "Something went wrong on our side. Please try again later.",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = messageFor(httpErr)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		info.StatusCode = http.StatusBadRequest
		info.Message = "Please correct the highlighted fields."
		if len(verrs) > 0 {
			info.Message = verrs[0].Message
		}
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func messageFor(e HTTPError) string {
	switch e.Code {
	case http.StatusNotFound:
		return "The page you are looking for does not exist."
	case http.StatusBadRequest:
		return "The request could not be understood."
	case http.StatusUnauthorized, http.StatusForbidden:
		return "You are not allowed to see this page."
	}
	if text := http.StatusText(e.Code); text != "" {
		return text
	}
	return e.Key
}

// NewErrorHandler logs the error with the request id and renders the
// configured error page with the classified status code.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ErrorTarget == "" {
		cfg.ErrorTarget = "#main"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if cfg.ErrorPage == nil {
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		params := ErrorPageParams{
			Error:      info.Message,
			StatusCode: info.StatusCode,
			RequestID:  reqID,
		}
		full := cfg.ErrorPage(params)
		partial := full
		if cfg.ErrorPartial != nil {
			partial = cfg.ErrorPartial(params)
		}
		resp := templResponse{
			status:  info.StatusCode,
			partial: partial,
			full:    full,
			options: []TemplOption{WithTarget(cfg.ErrorTarget)},
		}
		if rerr := resp.Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.Error(rerr),
				logger.Component("error_handler"),
			)
		}
	}
}
