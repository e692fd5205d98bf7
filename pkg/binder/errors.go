package binder

import "errors"

var (
	ErrBinderNotApplicable  = errors.New("binder: not applicable to this request")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrFailedToParseJSON    = errors.New("binder: failed to parse JSON request body")
	ErrFailedToParsePath    = errors.New("binder: failed to parse path parameters")
	ErrFailedToParseQuery   = errors.New("binder: failed to parse query parameters")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
)
