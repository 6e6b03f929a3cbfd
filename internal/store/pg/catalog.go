package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasadel/mallcore/internal/store/core"
)

type channelRepo struct{ pool *pgxpool.Pool }

func (r channelRepo) Create(ctx context.Context, c *core.Channel) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO channels (id, code, name, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Code, c.Name, c.CreatedAt)
	return mapErr(err)
}

func (r channelRepo) GetByID(ctx context.Context, id string) (*core.Channel, error) {
	var c core.Channel
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, name, created_at FROM channels WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r channelRepo) List(ctx context.Context, p core.Page) ([]*core.Channel, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM channels`).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, created_at FROM channels
		ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*core.Channel
	for rows.Next() {
		var c core.Channel
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, &c)
	}
	return out, total, mapErr(rows.Err())
}

type sectionRepo struct{ pool *pgxpool.Pool }

func (r sectionRepo) Create(ctx context.Context, s *core.Section) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sections (id, channel_id, code, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.ChannelID, s.Code, s.Name, s.CreatedAt)
	return mapErr(err)
}

func (r sectionRepo) GetByID(ctx context.Context, id string) (*core.Section, error) {
	var s core.Section
	err := r.pool.QueryRow(ctx, `
		SELECT id, channel_id, code, name, created_at FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.ChannelID, &s.Code, &s.Name, &s.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r sectionRepo) ListByChannel(ctx context.Context, channelID string, p core.Page) ([]*core.Section, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM sections WHERE channel_id = $1`, channelID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, channel_id, code, name, created_at FROM sections
		WHERE channel_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		channelID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*core.Section
	for rows.Next() {
		var s core.Section
		if err := rows.Scan(&s.ID, &s.ChannelID, &s.Code, &s.Name, &s.CreatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, &s)
	}
	return out, total, mapErr(rows.Err())
}

type productRepo struct{ pool *pgxpool.Pool }

func (r productRepo) Create(ctx context.Context, pr *core.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, seller_id, channel_id, section_id, name, description, price, stock, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pr.ID, pr.SellerID, pr.ChannelID, pr.SectionID, pr.Name, pr.Description, pr.Price, pr.Stock, pr.Status, pr.CreatedAt)
	return mapErr(err)
}

func (r productRepo) GetByID(ctx context.Context, id string) (*core.Product, error) {
	var pr core.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, seller_id, channel_id, section_id, name, description, price, stock, status, created_at
		FROM products WHERE id = $1`, id,
	).Scan(&pr.ID, &pr.SellerID, &pr.ChannelID, &pr.SectionID, &pr.Name, &pr.Description, &pr.Price, &pr.Stock, &pr.Status, &pr.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &pr, nil
}

func (r productRepo) List(ctx context.Context, p core.Page) ([]*core.Product, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, seller_id, channel_id, section_id, name, description, price, stock, status, created_at
		FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*core.Product
	for rows.Next() {
		var pr core.Product
		if err := rows.Scan(&pr.ID, &pr.SellerID, &pr.ChannelID, &pr.SectionID, &pr.Name, &pr.Description, &pr.Price, &pr.Stock, &pr.Status, &pr.CreatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, &pr)
	}
	return out, total, mapErr(rows.Err())
}

// AdjustStock descuenta en un solo UPDATE condicionado; el WHERE evita que
// el stock quede negativo sin necesidad de lock explícito.
func (r productRepo) AdjustStock(ctx context.Context, id string, delta int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET stock = stock + $2
		WHERE id = $1 AND stock + $2 >= 0`,
		id, delta)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
			return mapErr(err)
		}
		if !exists {
			return core.ErrNotFound
		}
		return core.ErrConflict
	}
	return nil
}
