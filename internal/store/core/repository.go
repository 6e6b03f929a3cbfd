package core

import (
	"context"
	"time"
)

// Repository agrupa los repositorios del dominio. Cada adapter (memory, pg)
// implementa el bundle completo.
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	Actors() ActorRepository
	Tokens() TokenRepository
	Channels() ChannelRepository
	Sections() SectionRepository
	Products() ProductRepository
	Inquiries() InquiryRepository
	Comments() CommentRepository
	Coupons() CouponRepository
	Tickets() TicketRepository
	CouponUses() CouponUseRepository
	Carts() CartRepository
	Orders() OrderRepository
	Mileage() MileageRepository
}

// ActorRepository maneja identidades (admin/seller/buyer).
// El email es único por rol.
type ActorRepository interface {
	Create(ctx context.Context, a *Actor) error
	GetByEmail(ctx context.Context, role, email string) (*Actor, error)
	GetByID(ctx context.Context, id string) (*Actor, error)
}

// TokenRepository maneja refresh tokens (hash, rotación, revocación).
type TokenRepository interface {
	Create(ctx context.Context, t *RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

type ChannelRepository interface {
	Create(ctx context.Context, c *Channel) error
	GetByID(ctx context.Context, id string) (*Channel, error)
	List(ctx context.Context, p Page) ([]*Channel, int64, error)
}

type SectionRepository interface {
	Create(ctx context.Context, s *Section) error
	GetByID(ctx context.Context, id string) (*Section, error)
	ListByChannel(ctx context.Context, channelID string, p Page) ([]*Section, int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, pr *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, p Page) ([]*Product, int64, error)

	// AdjustStock suma delta (negativo descuenta) de forma atómica.
	// Retorna ErrConflict si el stock quedaría negativo.
	AdjustStock(ctx context.Context, id string, delta int64) error
}

type InquiryRepository interface {
	Create(ctx context.Context, i *Inquiry) error
	GetByID(ctx context.Context, id string) (*Inquiry, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByInquiry(ctx context.Context, inquiryID string, p Page) ([]*Comment, int64, error)
}

type CouponRepository interface {
	Create(ctx context.Context, c *Coupon) error
	GetByID(ctx context.Context, id string) (*Coupon, error)
	List(ctx context.Context, p Page) ([]*Coupon, int64, error)

	// AdjustStock descuenta emisiones disponibles; ErrConflict si no alcanza.
	AdjustStock(ctx context.Context, id string, delta int64) error
}

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)

	// MarkUsed marca el ticket como usado. ErrConflict si ya estaba usado.
	MarkUsed(ctx context.Context, id string, at time.Time) error
}

type CouponUseRepository interface {
	Create(ctx context.Context, u *CouponUse) error
	GetByID(ctx context.Context, id string) (*CouponUse, error)

	// Delete borra el registro. ErrNotFound si no existe (o ya fue borrado).
	Delete(ctx context.Context, id string) error
}

type CartRepository interface {
	Create(ctx context.Context, it *CartItem) error
	GetByID(ctx context.Context, id string) (*CartItem, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByBuyer(ctx context.Context, buyerID string, p Page) ([]*Order, int64, error)
}

// MileageRepository mantiene el ledger de mileage por buyer.
type MileageRepository interface {
	Balance(ctx context.Context, buyerID string) (int64, error)

	// Append registra el movimiento y actualiza el balance de forma atómica.
	// ErrConflict si el balance quedaría negativo.
	Append(ctx context.Context, tx *MileageTx) (newBalance int64, err error)
	History(ctx context.Context, buyerID string, p Page) ([]*MileageTx, int64, error)
}
