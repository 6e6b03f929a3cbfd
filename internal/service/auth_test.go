package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasadel/mallcore/internal/auth"
	"github.com/kasadel/mallcore/internal/cache"
	"github.com/kasadel/mallcore/internal/store/core"
	"github.com/kasadel/mallcore/internal/store/memory"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	issuer, err := auth.NewIssuer("mallcore", "", 5*time.Minute)
	require.NoError(t, err)
	return NewAuthService(memory.New(), issuer, cache.NewMemory("t:", time.Minute), time.Hour)
}

func TestJoinAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	sess, err := svc.Join(ctx, core.RoleBuyer, JoinInput{
		Email:    "B@X.dev",
		Name:     "Buyer",
		Password: "secreto-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "b@x.dev", sess.Actor.Email, "el email se normaliza")
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)

	again, err := svc.Login(ctx, core.RoleBuyer, "b@x.dev", "secreto-123")
	require.NoError(t, err)
	assert.Equal(t, sess.Actor.ID, again.Actor.ID)

	_, err = svc.Login(ctx, core.RoleBuyer, "b@x.dev", "otra")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, core.RoleSeller, "b@x.dev", "secreto-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "el rol forma parte de la identidad")
}

func TestJoinValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Join(ctx, core.RoleBuyer, JoinInput{Email: "a@x.dev", Name: "A", Password: "corta"})
	assert.ErrorIs(t, err, ErrValidation, "password mínima de 8")

	_, err = svc.Join(ctx, core.RoleBuyer, JoinInput{Name: "A", Password: "suficiente"})
	assert.ErrorIs(t, err, ErrValidation, "email requerido")
}

func TestJoinDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Join(ctx, core.RoleBuyer, JoinInput{Email: "a@x.dev", Name: "A", Password: "secreto-123"})
	require.NoError(t, err)

	_, err = svc.Join(ctx, core.RoleBuyer, JoinInput{Email: "a@x.dev", Name: "B", Password: "secreto-123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Join(ctx, core.RoleSeller, JoinInput{Email: "a@x.dev", Name: "C", Password: "secreto-123"})
	assert.NoError(t, err, "otro rol, otra identidad")
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	sess, err := svc.Join(ctx, core.RoleBuyer, JoinInput{Email: "a@x.dev", Name: "A", Password: "secreto-123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, core.RoleBuyer, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(ctx, core.RoleBuyer, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid, "el token rotado queda revocado")

	_, err = svc.Refresh(ctx, core.RoleSeller, rotated.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid, "el rol del token debe coincidir")

	_, err = svc.Refresh(ctx, core.RoleBuyer, "inventado")
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestMeUsesCache(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	sess, err := svc.Join(ctx, core.RoleBuyer, JoinInput{Email: "a@x.dev", Name: "A", Password: "secreto-123"})
	require.NoError(t, err)

	first, err := svc.Me(ctx, sess.Actor.ID)
	require.NoError(t, err)
	second, err := svc.Me(ctx, sess.Actor.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Email, second.Email)

	_, err = svc.Me(ctx, "no-existe")
	assert.ErrorIs(t, err, ErrActorNotFound)
}
