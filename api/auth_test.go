package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arenawallet/models"
	"arenawallet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccounts overrides only GetAccount; the embedded interface panics
// on anything else, which would mark a test touching the wrong method
type stubAccounts struct {
	service.AccountService
	account *models.Account
	err     error
}

func (s *stubAccounts) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	return s.account, s.err
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	account := &models.Account{ID: 7, Role: models.RoleAdmin}
	token, err := issuer.Issue(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	c, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.AccountID)
	assert.Equal(t, models.RoleAdmin, c.Role)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Hour)

	token, err := issuer.Issue(&models.Account{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(&models.Account{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestRequireAuth(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	account := &models.Account{ID: 3, Role: models.RoleUser, IsSuspended: true}

	server := NewServer(Config{
		Accounts: &stubAccounts{account: account},
		Tokens:   issuer,
	})

	var captured service.Actor
	handler := server.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token resolves the current account state", func(t *testing.T) {
		token, err := issuer.Issue(account)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(3), captured.AccountID)
		assert.True(t, captured.IsSuspended)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		missing := NewServer(Config{
			Accounts: &stubAccounts{err: service.ErrNotFound},
			Tokens:   issuer,
		})
		guarded := missing.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

		token, err := issuer.Issue(account)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	server := &Server{}
	handler := server.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("admin passes", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), actorContextKey, service.Actor{AccountID: 1, Role: models.RoleAdmin})
		req := httptest.NewRequest(http.MethodGet, "/admin/accounts", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user rejected", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), actorContextKey, service.Actor{AccountID: 2, Role: models.RoleUser})
		req := httptest.NewRequest(http.MethodGet, "/admin/accounts", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
