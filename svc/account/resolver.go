package account

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultHeader carries the account ID.
const DefaultHeader = "X-Account-ID"

// Resolver extracts the account ID from a request. It returns uuid.Nil and
// no error when the request names no account.
type Resolver func(r *http.Request) (uuid.UUID, error)

// NewHeaderResolver reads the account ID from header, DefaultHeader when
// empty.
func NewHeaderResolver(header string) Resolver {
	if header == "" {
		header = DefaultHeader
	}
	return func(r *http.Request) (uuid.UUID, error) {
		value := strings.TrimSpace(r.Header.Get(header))
		if value == "" {
			return uuid.Nil, nil
		}
		id, err := uuid.Parse(value)
		if err != nil || id == uuid.Nil {
			return uuid.Nil, fmt.Errorf("%w: header %s", ErrInvalidIdentifier, header)
		}
		return id, nil
	}
}
