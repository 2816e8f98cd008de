package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/storefront/binder"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Classifier maps a domain error onto an HTTPError.
// It reports false for errors it does not recognise.
type Classifier func(err error) (HTTPError, bool)

// NewErrorHandler returns an ErrorHandler that renders errors as JSON bodies
// and logs them. Client errors are logged at warn level, server errors at
// error level. Classifiers are consulted in order for errors that are neither
// validation errors nor HTTPError values.
func NewErrorHandler[C Context](log *slog.Logger, classifiers ...Classifier) ErrorHandler[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C, err error) {
		status := http.StatusInternalServerError
		detail := errorToDetail(classifyError(err, classifiers), &status)
		response := jsonResponse{status: status, body: JSONResponse{Error: detail}}

		r := ctx.Request()
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := response.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}

func classifyError(err error, classifiers []Classifier) error {
	if validator.IsValidationError(err) {
		return err
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidPath):
		return ErrBadRequest
	}

	for _, classify := range classifiers {
		if mapped, ok := classify(err); ok {
			return mapped
		}
	}

	return ErrInternalServerError
}
