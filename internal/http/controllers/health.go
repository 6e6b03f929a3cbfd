package controllers

import (
	"net/http"

	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/http/render"
	"github.com/kasadel/mallcore/internal/store/core"
)

// HealthController expone liveness y readiness.
type HealthController struct {
	repo core.Repository
}

func NewHealthController(repo core.Repository) *HealthController {
	return &HealthController{repo: repo}
}

// Healthz responde siempre 200 mientras el proceso viva.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz verifica la dependencia de persistencia.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Ping(r.Context()); err != nil {
		apperrors.WriteError(w, apperrors.ErrServiceUnavailable.WithCause(err))
		return
	}
	render.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
