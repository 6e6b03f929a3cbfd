package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kasadel/mallcore/internal/auth"
	apperrors "github.com/kasadel/mallcore/internal/http/errors"
)

// Identity es el actor autenticado del request.
type Identity struct {
	ActorID string
	Role    string
	Email   string
}

type identityKey struct{}

// GetIdentity retorna la identidad del contexto. ok=false si la ruta no
// pasó por RequireAuth.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireAuth valida el bearer token y exige uno de los roles dados
// (sin roles: cualquier actor autenticado).
func RequireAuth(issuer *auth.Issuer, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				apperrors.WriteError(w, apperrors.ErrTokenMissing)
				return
			}
			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					apperrors.WriteError(w, apperrors.ErrTokenInvalid.WithDetail("token expirado"))
					return
				}
				apperrors.WriteError(w, apperrors.ErrTokenInvalid)
				return
			}
			if len(roles) > 0 && !contains(roles, claims.Role) {
				apperrors.WriteError(w, apperrors.ErrForbidden)
				return
			}
			id := Identity{ActorID: claims.Subject, Role: claims.Role, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
