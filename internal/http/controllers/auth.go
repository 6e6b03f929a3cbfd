package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasadel/mallcore/internal/http/dto"
	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/http/middleware"
	"github.com/kasadel/mallcore/internal/http/render"
	"github.com/kasadel/mallcore/internal/service"
	"github.com/kasadel/mallcore/internal/store/core"
)

// AuthController expone join/login/refresh/me por rol.
type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// roleParam valida el segmento {role} de la URL.
func roleParam(r *http.Request) (string, error) {
	role := chi.URLParam(r, "role")
	switch role {
	case core.RoleAdmin, core.RoleSeller, core.RoleBuyer:
		return role, nil
	}
	return "", apperrors.ErrInvalidParameter.WithDetail("rol desconocido: " + role)
}

func sessionResponse(s *service.Session) dto.Session {
	return dto.Session{
		Actor: dto.NewActor(s.Actor),
		Token: dto.Token{
			Access:           s.AccessToken,
			AccessExpiresAt:  s.AccessExp,
			Refresh:          s.RefreshToken,
			RefreshExpiresAt: s.RefreshExp,
		},
	}
}

// Join maneja POST /v1/auth/{role}/join.
func (c *AuthController) Join(w http.ResponseWriter, r *http.Request) {
	role, err := roleParam(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req dto.JoinRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	sess, err := c.svc.Join(r.Context(), role, service.JoinInput{
		Email:    req.Email,
		Name:     req.Name,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, sessionResponse(sess))
}

// Login maneja POST /v1/auth/{role}/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	role, err := roleParam(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req dto.LoginRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondErr(w, r, service.ErrValidation)
		return
	}
	sess, err := c.svc.Login(r.Context(), role, req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, sessionResponse(sess))
}

// Refresh maneja POST /v1/auth/{role}/refresh. Rota el refresh token.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	role, err := roleParam(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var req dto.RefreshRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.RefreshToken == "" {
		respondErr(w, r, service.ErrValidation)
		return
	}
	sess, err := c.svc.Refresh(r.Context(), role, req.RefreshToken)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, sessionResponse(sess))
}

// Me maneja GET /v1/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	actor, err := c.svc.Me(r.Context(), id.ActorID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewActor(actor))
}
