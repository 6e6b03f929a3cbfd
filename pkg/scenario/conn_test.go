package scenario

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallDecodesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "CONFLICT",
			"message": "ya existe",
		})
	}))
	defer srv.Close()

	err := NewConn(srv.URL).Get(context.Background(), "/x", nil)
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusConflict, callErr.Status)
	assert.Equal(t, "CONFLICT", callErr.Code)
	assert.Equal(t, "ya existe", callErr.Message)
}

func TestCallSendsTokenAndBody(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var m map[string]string
		_ = json.NewDecoder(r.Body).Decode(&m)
		gotBody = m["k"]
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "si"})
	}))
	defer srv.Close()

	var out map[string]string
	conn := NewConn(srv.URL).WithToken("t-123")
	err := conn.Post(context.Background(), "/x", map[string]string{"k": "v"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer t-123", gotAuth)
	assert.Equal(t, "v", gotBody)
	assert.Equal(t, "si", out["ok"])
}

func TestWithTokenDoesNotMutateOriginal(t *testing.T) {
	base := NewConn("http://x")
	authed := base.WithToken("abc")

	assert.Empty(t, base.Token)
	assert.Equal(t, "abc", authed.Token)
	assert.Equal(t, base.BaseURL, authed.BaseURL)
}

func TestExpectErrorReturnsCallError(t *testing.T) {
	callErr := &CallError{Status: 404, Code: "NOT_FOUND"}
	got := ExpectError(t, "op", callErr)
	require.NotNil(t, got)
	assert.Equal(t, 404, got.Status)

	assert.Nil(t, ExpectError(t, "op", context.Canceled), "errores no-API retornan nil")
}
