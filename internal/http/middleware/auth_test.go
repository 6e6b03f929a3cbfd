package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasadel/mallcore/internal/auth"
	"github.com/kasadel/mallcore/internal/store/core"
)

func authedRequest(t *testing.T, issuer *auth.Issuer, role string) *http.Request {
	t.Helper()
	tok, _, err := issuer.IssueAccess("actor-1", role, "a@x.dev")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestRequireAuthPassesIdentity(t *testing.T) {
	issuer, err := auth.NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)

	var got Identity
	h := RequireAuth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetIdentity(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, issuer, core.RoleBuyer))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "actor-1", got.ActorID)
	assert.Equal(t, core.RoleBuyer, got.Role)
	assert.Equal(t, "a@x.dev", got.Email)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	issuer, err := auth.NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)

	h := RequireAuth(issuer)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("el handler no debería correr")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	issuer, err := auth.NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)

	h := RequireAuth(issuer)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("el handler no debería correr")
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer no.es.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthEnforcesRole(t *testing.T) {
	issuer, err := auth.NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)

	h := RequireAuth(issuer, core.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("un buyer no pasa un guard de admin")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(t, issuer, core.RoleBuyer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
