package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/requestid"
)

// ErrorPageParams feeds the full-page error view.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast shown for datastar requests.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string                    // default "#toast-container"
	ToastMode   datastar.ElementPatchMode // default PatchPrepend
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternal.Code,
		Code:       "internal_error",
		Message:    ErrInternal.Key,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Code = "http_error"
		info.Message = httpErr.Key
	}
	if ve, ok := asValidationError(err); ok {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Code = "validation_error"
		info.Message = ve.Error()
	}

	info.Type = "error"
	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler logs every error and renders a toast for datastar
// requests or an error page for plain ones.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			renderToast(ctx, log, cfg, info, reqID)
			return
		}
		renderPage(ctx, log, cfg, info, reqID)
	}
}

func renderToast(ctx Context, log *slog.Logger, cfg ErrorHandlerConfig, info ErrorInfo, reqID string) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast configured", logger.RequestID(reqID), logger.Component("error_handler"))
		return
	}
	toast := cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: reqID})
	resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error toast", logger.RequestID(reqID), logger.Error(err))
	}
}

func renderPage(ctx Context, log *slog.Logger, cfg ErrorHandlerConfig, info ErrorInfo, reqID string) {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}
	page := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  reqID,
		RetryURL:   ctx.Request().URL.Path,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	if err := page.Render(ctx.Request().Context(), w); err != nil {
		log.Error("failed to render error page", logger.RequestID(reqID), logger.Error(err))
	}
}
