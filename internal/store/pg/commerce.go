package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasadel/mallcore/internal/store/core"
)

type inquiryRepo struct{ pool *pgxpool.Pool }

func (r inquiryRepo) Create(ctx context.Context, i *core.Inquiry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inquiries (id, product_id, buyer_id, title, question, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		i.ID, i.ProductID, i.BuyerID, i.Title, i.Question, i.CreatedAt)
	return mapErr(err)
}

func (r inquiryRepo) GetByID(ctx context.Context, id string) (*core.Inquiry, error) {
	var i core.Inquiry
	err := r.pool.QueryRow(ctx, `
		SELECT id, product_id, buyer_id, title, question, created_at
		FROM inquiries WHERE id = $1`, id,
	).Scan(&i.ID, &i.ProductID, &i.BuyerID, &i.Title, &i.Question, &i.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &i, nil
}

type commentRepo struct{ pool *pgxpool.Pool }

func (r commentRepo) Create(ctx context.Context, c *core.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, inquiry_id, author_id, author_role, body, visibility, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.InquiryID, c.AuthorID, c.AuthorRole, c.Body, c.Visibility, c.Status, c.CreatedAt)
	return mapErr(err)
}

func (r commentRepo) GetByID(ctx context.Context, id string) (*core.Comment, error) {
	var c core.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT id, inquiry_id, author_id, author_role, body, visibility, status, created_at
		FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.InquiryID, &c.AuthorID, &c.AuthorRole, &c.Body, &c.Visibility, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r commentRepo) ListByInquiry(ctx context.Context, inquiryID string, p core.Page) ([]*core.Comment, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE inquiry_id = $1`, inquiryID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, inquiry_id, author_id, author_role, body, visibility, status, created_at
		FROM comments WHERE inquiry_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		inquiryID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*core.Comment
	for rows.Next() {
		var c core.Comment
		if err := rows.Scan(&c.ID, &c.InquiryID, &c.AuthorID, &c.AuthorRole, &c.Body, &c.Visibility, &c.Status, &c.CreatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, &c)
	}
	return out, total, mapErr(rows.Err())
}

type couponRepo struct{ pool *pgxpool.Pool }

func (r couponRepo) Create(ctx context.Context, c *core.Coupon) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO coupons (id, name, discount_unit, discount_value, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.DiscountUnit, c.DiscountValue, c.Stock, c.CreatedAt)
	return mapErr(err)
}

func (r couponRepo) GetByID(ctx context.Context, id string) (*core.Coupon, error) {
	var c core.Coupon
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, discount_unit, discount_value, stock, created_at
		FROM coupons WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.DiscountUnit, &c.DiscountValue, &c.Stock, &c.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r couponRepo) List(ctx context.Context, p core.Page) ([]*core.Coupon, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM coupons`).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, discount_unit, discount_value, stock, created_at
		FROM coupons ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*core.Coupon
	for rows.Next() {
		var c core.Coupon
		if err := rows.Scan(&c.ID, &c.Name, &c.DiscountUnit, &c.DiscountValue, &c.Stock, &c.CreatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, &c)
	}
	return out, total, mapErr(rows.Err())
}

func (r couponRepo) AdjustStock(ctx context.Context, id string, delta int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE coupons SET stock = stock + $2
		WHERE id = $1 AND stock + $2 >= 0`,
		id, delta)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM coupons WHERE id = $1)`, id).Scan(&exists); err != nil {
			return mapErr(err)
		}
		if !exists {
			return core.ErrNotFound
		}
		return core.ErrConflict
	}
	return nil
}

type ticketRepo struct{ pool *pgxpool.Pool }

func (r ticketRepo) Create(ctx context.Context, t *core.Ticket) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tickets (id, coupon_id, buyer_id, issued_at, used_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.CouponID, t.BuyerID, t.IssuedAt, t.UsedAt)
	return mapErr(err)
}

func (r ticketRepo) GetByID(ctx context.Context, id string) (*core.Ticket, error) {
	var t core.Ticket
	err := r.pool.QueryRow(ctx, `
		SELECT id, coupon_id, buyer_id, issued_at, used_at FROM tickets WHERE id = $1`, id,
	).Scan(&t.ID, &t.CouponID, &t.BuyerID, &t.IssuedAt, &t.UsedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

// MarkUsed es atómico: el WHERE used_at IS NULL garantiza una sola redención.
func (r ticketRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tickets SET used_at = $2 WHERE id = $1 AND used_at IS NULL`,
		id, at)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tickets WHERE id = $1)`, id).Scan(&exists); err != nil {
			return mapErr(err)
		}
		if !exists {
			return core.ErrNotFound
		}
		return core.ErrConflict
	}
	return nil
}

type useRepo struct{ pool *pgxpool.Pool }

func (r useRepo) Create(ctx context.Context, u *core.CouponUse) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO coupon_uses (id, ticket_id, coupon_id, buyer_id, used_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.TicketID, u.CouponID, u.BuyerID, u.UsedAt)
	return mapErr(err)
}

func (r useRepo) GetByID(ctx context.Context, id string) (*core.CouponUse, error) {
	var u core.CouponUse
	err := r.pool.QueryRow(ctx, `
		SELECT id, ticket_id, coupon_id, buyer_id, used_at FROM coupon_uses WHERE id = $1`, id,
	).Scan(&u.ID, &u.TicketID, &u.CouponID, &u.BuyerID, &u.UsedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r useRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupon_uses WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

type cartRepo struct{ pool *pgxpool.Pool }

func (r cartRepo) Create(ctx context.Context, it *core.CartItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (id, buyer_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.BuyerID, it.ProductID, it.Quantity, it.CreatedAt)
	return mapErr(err)
}

func (r cartRepo) GetByID(ctx context.Context, id string) (*core.CartItem, error) {
	var it core.CartItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, buyer_id, product_id, quantity, created_at FROM cart_items WHERE id = $1`, id,
	).Scan(&it.ID, &it.BuyerID, &it.ProductID, &it.Quantity, &it.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &it, nil
}

func (r cartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

type orderRepo struct{ pool *pgxpool.Pool }

func (r orderRepo) Create(ctx context.Context, o *core.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, buyer_id, total, mileage, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.BuyerID, o.Total, o.Mileage, o.Status, o.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Name, it.UnitPrice, it.Quantity)
		if err != nil {
			return mapErr(err)
		}
	}
	return mapErr(tx.Commit(ctx))
}

func (r orderRepo) GetByID(ctx context.Context, id string) (*core.Order, error) {
	var o core.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, buyer_id, total, mileage, status, created_at FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.BuyerID, &o.Total, &o.Mileage, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r orderRepo) loadItems(ctx context.Context, o *core.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, name, unit_price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return mapErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var it core.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return mapErr(err)
		}
		o.Items = append(o.Items, it)
	}
	return mapErr(rows.Err())
}

func (r orderRepo) ListByBuyer(ctx context.Context, buyerID string, p core.Page) ([]*core.Order, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE buyer_id = $1`, buyerID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, buyer_id, total, mileage, status, created_at
		FROM orders WHERE buyer_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		buyerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	var out []*core.Order
	for rows.Next() {
		var o core.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Total, &o.Mileage, &o.Status, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, 0, mapErr(err)
		}
		out = append(out, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}
	for _, o := range out {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

type mileageRepo struct{ pool *pgxpool.Pool }

func (r mileageRepo) Balance(ctx context.Context, buyerID string) (int64, error) {
	var bal int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(sum(value), 0) FROM mileage_txs WHERE buyer_id = $1`, buyerID,
	).Scan(&bal)
	return bal, mapErr(err)
}

// Append inserta el movimiento y valida el balance resultante dentro de la
// misma transacción, con lock advisory por buyer para serializar.
func (r mileageRepo) Append(ctx context.Context, mtx *core.MileageTx) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, mapErr(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, mtx.BuyerID); err != nil {
		return 0, mapErr(err)
	}
	var bal int64
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(sum(value), 0) FROM mileage_txs WHERE buyer_id = $1`, mtx.BuyerID,
	).Scan(&bal); err != nil {
		return 0, mapErr(err)
	}
	if bal+mtx.Value < 0 {
		return bal, core.ErrConflict
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO mileage_txs (id, buyer_id, value, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		mtx.ID, mtx.BuyerID, mtx.Value, mtx.Reason, mtx.CreatedAt); err != nil {
		return 0, mapErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, mapErr(err)
	}
	return bal + mtx.Value, nil
}

func (r mileageRepo) History(ctx context.Context, buyerID string, p core.Page) ([]*core.MileageTx, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM mileage_txs WHERE buyer_id = $1`, buyerID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, buyer_id, value, reason, created_at
		FROM mileage_txs WHERE buyer_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		buyerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*core.MileageTx
	for rows.Next() {
		var t core.MileageTx
		if err := rows.Scan(&t.ID, &t.BuyerID, &t.Value, &t.Reason, &t.CreatedAt); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, &t)
	}
	return out, total, mapErr(rows.Err())
}
