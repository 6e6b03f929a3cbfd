package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss, err := NewIssuer("mallcore", "", 5*time.Minute)
	require.NoError(t, err)

	tok, exp, err := iss.IssueAccess("actor-1", "buyer", "b@x.dev")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := iss.ParseAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "actor-1", claims.Subject)
	assert.Equal(t, "buyer", claims.Role)
	assert.Equal(t, "b@x.dev", claims.Email)
}

func TestParseRejectsGarbage(t *testing.T) {
	iss, err := NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)

	_, err = iss.ParseAccess("no.es.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	a, err := NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)
	b, err := NewIssuer("mallcore", "", time.Minute)
	require.NoError(t, err)

	tok, _, err := a.IssueAccess("actor-1", "buyer", "b@x.dev")
	require.NoError(t, err)

	_, err = b.ParseAccess(tok)
	assert.Error(t, err, "un token firmado por otro proceso no valida")
}

func TestParseRejectsExpired(t *testing.T) {
	iss, err := NewIssuer("mallcore", "", -time.Minute)
	require.NoError(t, err)

	tok, _, err := iss.IssueAccess("actor-1", "buyer", "b@x.dev")
	require.NoError(t, err)

	_, err = iss.ParseAccess(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestShortSecretRejected(t *testing.T) {
	_, err := NewIssuer("mallcore", "corto", time.Minute)
	assert.Error(t, err)
}
