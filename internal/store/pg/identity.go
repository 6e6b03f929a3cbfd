package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasadel/mallcore/internal/store/core"
)

type actorRepo struct{ pool *pgxpool.Pool }

func (r actorRepo) Create(ctx context.Context, a *core.Actor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO actors (id, role, email, name, nickname, password_hash, status, created_at)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8)`,
		a.ID, a.Role, a.Email, a.Name, a.Nickname, a.PasswordHash, a.Status, a.CreatedAt)
	return mapErr(err)
}

func (r actorRepo) GetByEmail(ctx context.Context, role, email string) (*core.Actor, error) {
	var a core.Actor
	err := r.pool.QueryRow(ctx, `
		SELECT id, role, email, name, nickname, password_hash, status, created_at
		FROM actors WHERE role = $1 AND email = lower($2)`,
		role, email,
	).Scan(&a.ID, &a.Role, &a.Email, &a.Name, &a.Nickname, &a.PasswordHash, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r actorRepo) GetByID(ctx context.Context, id string) (*core.Actor, error) {
	var a core.Actor
	err := r.pool.QueryRow(ctx, `
		SELECT id, role, email, name, nickname, password_hash, status, created_at
		FROM actors WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Role, &a.Email, &a.Name, &a.Nickname, &a.PasswordHash, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

type tokenRepo struct{ pool *pgxpool.Pool }

func (r tokenRepo) Create(ctx context.Context, t *core.RefreshToken) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (id, actor_id, role, token_hash, issued_at, expires_at, rotated_from, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ActorID, t.Role, t.TokenHash, t.IssuedAt, t.ExpiresAt, t.RotatedFrom, t.RevokedAt)
	return mapErr(err)
}

func (r tokenRepo) GetByHash(ctx context.Context, tokenHash string) (*core.RefreshToken, error) {
	var t core.RefreshToken
	err := r.pool.QueryRow(ctx, `
		SELECT id, actor_id, role, token_hash, issued_at, expires_at, rotated_from, revoked_at
		FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash,
	).Scan(&t.ID, &t.ActorID, &t.Role, &t.TokenHash, &t.IssuedAt, &t.ExpiresAt, &t.RotatedFrom, &t.RevokedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r tokenRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1`,
		id, at)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
