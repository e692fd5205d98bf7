package account

import "errors"

var (
	ErrInvalidIdentifier = errors.New("account: invalid identifier")
	ErrAccountNotFound   = errors.New("account: not found")
	ErrNoAccount         = errors.New("account: no account in request")
)
