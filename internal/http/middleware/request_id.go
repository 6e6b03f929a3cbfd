// Package middleware contiene los middlewares HTTP del servicio.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kasadel/mallcore/internal/observability/logger"
)

type requestIDKey struct{}

const requestIDHeader = "X-Request-Id"

// RequestID asigna (o propaga) un id de request, lo expone en el header de
// respuesta y deja en el contexto un logger con el campo request_id.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, rid)

		ctx := context.WithValue(r.Context(), requestIDKey{}, rid)
		ctx = logger.ToContext(ctx, logger.L().With(logger.RequestID(rid)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retorna el id de request del contexto, o "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
