package middleware

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/observability/logger"
)

// Recover atrapa panics del handler, los loguea con stack y responde 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(r.Context()).Error("panic recuperado",
					zap.Any("panic", rec),
					zap.Stack("stack"),
					logger.Path(r.URL.Path),
				)
				apperrors.WriteError(w, apperrors.ErrInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
