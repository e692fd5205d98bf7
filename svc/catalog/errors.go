package catalog

import "errors"

var (
	ErrNotFound      = errors.New("catalog: not found")
	ErrDuplicateName = errors.New("catalog: variable name already used in section")
)
