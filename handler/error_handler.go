package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/varlayer/pkg/binder"
	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/pkg/validator"
)

// ErrorMapper translates domain errors into HTTP errors.
type ErrorMapper func(err error) (HTTPError, bool)

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	Status  int
	Key     string
	Message string
	Details map[string][]string
}

// Detail returns the JSON representation of info.
func (i ErrorInfo) Detail() *ErrorDetail {
	return &ErrorDetail{Code: i.Key, Message: i.Message, Details: i.Details}
}

// Classify maps err to a status, key and client-safe message. Mappers are
// consulted first, in order.
func Classify(err error, mappers ...ErrorMapper) ErrorInfo {
	for _, m := range mappers {
		if m == nil {
			continue
		}
		if httpErr, ok := m(err); ok {
			return fromHTTPError(httpErr)
		}
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ErrorInfo{
			Status:  http.StatusUnprocessableEntity,
			Key:     "validation_error",
			Message: "request validation failed",
			Details: ve.Map(),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return fromHTTPError(HTTPError{Code: http.StatusUnsupportedMediaType, Key: ErrUnsupportedMediaType.Key, Message: err.Error()})
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParsePath),
		errors.Is(err, binder.ErrFailedToParseQuery):
		return fromHTTPError(HTTPError{Code: http.StatusBadRequest, Key: ErrBadRequest.Key, Message: err.Error()})
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Key:     ErrInternalServerError.Key,
		Message: "an error occurred processing your request",
	}
}

func fromHTTPError(e HTTPError) ErrorInfo {
	msg := e.Message
	if msg == "" || e.Code >= http.StatusInternalServerError {
		msg = http.StatusText(e.Code)
	}
	return ErrorInfo{Status: e.Code, Key: e.Key, Message: msg}
}

// NewErrorHandler returns an ErrorHandler that logs the error and writes
// the JSON envelope. Client errors are logged at warn level, server errors
// at error level.
func NewErrorHandler[C Context](log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[C] {
	return func(ctx C, err error) {
		info := Classify(err, mappers...)
		r := ctx.Request()

		level := slog.LevelError
		if info.Status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Error(err),
			slog.Int("status", info.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("http"),
		)

		resp := jsonResponse{status: info.Status, body: JSONResponse{Error: info.Detail()}}
		if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
			log.ErrorContext(r.Context(), "write error response", logger.Error(rerr))
		}
	}
}
