package account_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/svc/account"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetAccount(ctx context.Context, id uuid.UUID) (catalog.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Account), args.Error(1)
}

func serve(mw func(http.Handler) http.Handler, header string, next http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if header != "" {
		req.Header.Set(account.DefaultHeader, header)
	}
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)
	return w
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name    string
		value   string
		want    uuid.UUID
		wantErr bool
	}{
		{"missing", "", uuid.Nil, false},
		{"valid", id.String(), id, false},
		{"padded", "  " + id.String() + " ", id, false},
		{"garbage", "acme", uuid.Nil, true},
		{"nil uuid", uuid.Nil.String(), uuid.Nil, true},
	}

	resolve := account.NewHeaderResolver("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.value != "" {
				req.Header.Set(account.DefaultHeader, tt.value)
			}
			got, err := resolve(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, account.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	acc := catalog.Account{ID: uuid.New(), Name: "Acme"}

	t.Run("stores the account", func(t *testing.T) {
		t.Parallel()

		p := new(mockProvider)
		p.On("GetAccount", mock.Anything, acc.ID).Return(acc, nil).Once()

		w := serve(account.Middleware(account.NewHeaderResolver(""), p), acc.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			got, ok := account.FromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, acc, got)
			id, ok := account.IDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, acc.ID, id)
		})

		assert.Equal(t, http.StatusOK, w.Code)
		p.AssertExpectations(t)
	})

	t.Run("passes through without identifier", func(t *testing.T) {
		t.Parallel()

		p := new(mockProvider)
		w := serve(account.Middleware(account.NewHeaderResolver(""), p), "", func(w http.ResponseWriter, r *http.Request) {
			_, ok := account.FromContext(r.Context())
			assert.False(t, ok)
		})

		assert.Equal(t, http.StatusOK, w.Code)
		p.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})

	t.Run("unknown account", func(t *testing.T) {
		t.Parallel()

		p := new(mockProvider)
		p.On("GetAccount", mock.Anything, acc.ID).Return(catalog.Account{}, catalog.ErrNotFound)

		w := serve(account.Middleware(account.NewHeaderResolver(""), p), acc.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid identifier", func(t *testing.T) {
		t.Parallel()

		p := new(mockProvider)
		w := serve(account.Middleware(account.NewHeaderResolver(""), p), "not-a-uuid", func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("provider failure is logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := new(mockProvider)
		p.On("GetAccount", mock.Anything, acc.ID).Return(catalog.Account{}, errors.New("db down"))

		var got error
		mw := account.Middleware(account.NewHeaderResolver(""), p,
			account.WithLogger(logger.New(logger.WithOutput(&buf))),
			account.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				got = err
				w.WriteHeader(http.StatusTeapot)
			}),
		)
		w := serve(mw, acc.ID.String(), func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		})

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.EqualError(t, got, "db down")
		assert.Contains(t, buf.String(), "load account")
	})

	t.Run("cache avoids repeated lookups", func(t *testing.T) {
		t.Parallel()

		p := new(mockProvider)
		p.On("GetAccount", mock.Anything, acc.ID).Return(acc, nil).Once()

		mw := account.Middleware(account.NewHeaderResolver(""), p, account.WithCache(account.NewLRUCache(8, time.Minute)))
		for range 3 {
			w := serve(mw, acc.ID.String(), func(w http.ResponseWriter, r *http.Request) {
				_, ok := account.FromContext(r.Context())
				assert.True(t, ok)
			})
			assert.Equal(t, http.StatusOK, w.Code)
		}
		p.AssertNumberOfCalls(t, "GetAccount", 1)
	})

	t.Run("skip paths", func(t *testing.T) {
		t.Parallel()

		p := new(mockProvider)
		mw := account.Middleware(account.NewHeaderResolver(""), p, account.WithSkipPaths("/api/projects"))
		w := serve(mw, "not-a-uuid", func(w http.ResponseWriter, r *http.Request) {})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequire(t *testing.T) {
	t.Parallel()

	mw := account.Require(nil)

	w := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(account.WithAccount(req.Context(), catalog.Account{ID: uuid.New()}))
	w = httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := account.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	attr, ok := extract(account.WithAccount(context.Background(), catalog.Account{ID: id}))
	require.True(t, ok)
	assert.Equal(t, "account_id", attr.Key)
	assert.Equal(t, id.String(), attr.Value.String())
}
