// Package pg implementa core.Repository sobre PostgreSQL usando pgx.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasadel/mallcore/internal/store/core"
)

// Config para el pool de conexiones.
type Config struct {
	DSN             string
	MaxConns        int32
	ConnMaxLifetime time.Duration
}

// Store implementa core.Repository contra un pgxpool.Pool.
type Store struct {
	pool *pgxpool.Pool
}

// New abre el pool y verifica conectividad.
func New(ctx context.Context, cfg Config) (*Store, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *Store) Close()                         { s.pool.Close() }

func (s *Store) Actors() core.ActorRepository         { return actorRepo{s.pool} }
func (s *Store) Tokens() core.TokenRepository         { return tokenRepo{s.pool} }
func (s *Store) Channels() core.ChannelRepository     { return channelRepo{s.pool} }
func (s *Store) Sections() core.SectionRepository     { return sectionRepo{s.pool} }
func (s *Store) Products() core.ProductRepository     { return productRepo{s.pool} }
func (s *Store) Inquiries() core.InquiryRepository    { return inquiryRepo{s.pool} }
func (s *Store) Comments() core.CommentRepository     { return commentRepo{s.pool} }
func (s *Store) Coupons() core.CouponRepository       { return couponRepo{s.pool} }
func (s *Store) Tickets() core.TicketRepository       { return ticketRepo{s.pool} }
func (s *Store) CouponUses() core.CouponUseRepository { return useRepo{s.pool} }
func (s *Store) Carts() core.CartRepository           { return cartRepo{s.pool} }
func (s *Store) Orders() core.OrderRepository         { return orderRepo{s.pool} }
func (s *Store) Mileage() core.MileageRepository      { return mileageRepo{s.pool} }

// mapErr traduce errores de pgx a los sentinels de core.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return core.ErrConflict
		case "23503": // foreign_key_violation
			return core.ErrNotFound
		case "23514": // check_violation (stock/balance negativo)
			return core.ErrConflict
		case "22P02": // invalid_text_representation (id que no es uuid)
			return core.ErrNotFound
		}
	}
	return err
}
