// Package service contiene la lógica de negocio, entre controllers y
// repositorios. Los errores de dominio son sentinels que los controllers
// mapean a AppError con errors.Is.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasadel/mallcore/internal/auth"
	"github.com/kasadel/mallcore/internal/cache"
	"github.com/kasadel/mallcore/internal/observability/logger"
	"github.com/kasadel/mallcore/internal/security/password"
	tokens "github.com/kasadel/mallcore/internal/security/token"
	"github.com/kasadel/mallcore/internal/store/core"
)

var (
	ErrEmailTaken         = errors.New("service: email already registered for role")
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrRefreshInvalid     = errors.New("service: refresh token invalid or revoked")
	ErrActorNotFound      = errors.New("service: actor not found")
	ErrValidation         = errors.New("service: validation failed")
)

// Session es el resultado de join/login/refresh: actor + par de tokens.
type Session struct {
	Actor        *core.Actor
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

// AuthService maneja registro, login y rotación de refresh tokens
// para los tres roles.
type AuthService struct {
	repo       core.Repository
	issuer     *auth.Issuer
	cache      cache.Client
	refreshTTL time.Duration
	log        *zap.Logger
}

func NewAuthService(repo core.Repository, issuer *auth.Issuer, c cache.Client, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		repo:       repo,
		issuer:     issuer,
		cache:      c,
		refreshTTL: refreshTTL,
		log:        logger.Named("service.auth"),
	}
}

// JoinInput son los datos de registro, comunes a los tres roles.
type JoinInput struct {
	Email    string
	Name     string
	Nickname string
	Password string
}

// Join registra un actor del rol dado y abre sesión.
func (s *AuthService) Join(ctx context.Context, role string, in JoinInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Name == "" || len(in.Password) < 8 {
		return nil, ErrValidation
	}

	hash, err := password.Hash(password.Default, in.Password)
	if err != nil {
		return nil, err
	}
	actor := &core.Actor{
		ID:           uuid.NewString(),
		Role:         role,
		Email:        email,
		Name:         in.Name,
		Nickname:     in.Nickname,
		PasswordHash: hash,
		Status:       "active",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Actors().Create(ctx, actor); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("actor registrado", logger.Role(role), logger.ActorID(actor.ID))
	return s.openSession(ctx, actor, nil)
}

// Login verifica credenciales y abre sesión nueva.
func (s *AuthService) Login(ctx context.Context, role, email, plain string) (*Session, error) {
	actor, err := s.repo.Actors().GetByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(plain, actor.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, actor, nil)
}

// Refresh rota el refresh token: el anterior queda revocado y se emite un
// par nuevo. Reusar un token revocado o expirado falla.
func (s *AuthService) Refresh(ctx context.Context, role, refreshToken string) (*Session, error) {
	stored, err := s.repo.Tokens().GetByHash(ctx, tokens.SHA256Base64URL(refreshToken))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}
	now := time.Now().UTC()
	if stored.Role != role || stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return nil, ErrRefreshInvalid
	}
	actor, err := s.repo.Actors().GetByID(ctx, stored.ActorID)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	if err := s.repo.Tokens().Revoke(ctx, stored.ID, now); err != nil {
		return nil, err
	}
	return s.openSession(ctx, actor, &stored.ID)
}

// Me retorna el actor autenticado. El perfil es inmutable después del
// registro, así que se cachea con TTL corto sin invalidación.
func (s *AuthService) Me(ctx context.Context, actorID string) (*core.Actor, error) {
	key := "actor:" + actorID
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var a core.Actor
			if json.Unmarshal([]byte(raw), &a) == nil {
				return &a, nil
			}
		}
	}

	actor, err := s.repo.Actors().GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(actor); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), time.Minute); err != nil {
				s.log.Debug("cache de perfil falló", logger.Key(key), logger.Err(err))
			}
		}
	}
	return actor, nil
}

func (s *AuthService) openSession(ctx context.Context, actor *core.Actor, rotatedFrom *string) (*Session, error) {
	access, accessExp, err := s.issuer.IssueAccess(actor.ID, actor.Role, actor.Email)
	if err != nil {
		return nil, err
	}
	opaque, err := tokens.GenerateOpaqueToken(32)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	refreshExp := now.Add(s.refreshTTL)
	rt := &core.RefreshToken{
		ID:          uuid.NewString(),
		ActorID:     actor.ID,
		Role:        actor.Role,
		TokenHash:   tokens.SHA256Base64URL(opaque),
		IssuedAt:    now,
		ExpiresAt:   refreshExp,
		RotatedFrom: rotatedFrom,
	}
	if err := s.repo.Tokens().Create(ctx, rt); err != nil {
		return nil, err
	}
	return &Session{
		Actor:        actor,
		AccessToken:  access,
		AccessExp:    accessExp,
		RefreshToken: opaque,
		RefreshExp:   refreshExp,
	}, nil
}
