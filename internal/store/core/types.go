package core

import "time"

// Roles de actor.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// Actor es una identidad autenticable (admin, seller o buyer).
type Actor struct {
	ID           string
	Role         string
	Email        string
	Name         string
	Nickname     string
	PasswordHash string
	Status       string // active | disabled
	CreatedAt    time.Time
}

// RefreshToken persiste el hash del refresh token opaco, con rotación.
type RefreshToken struct {
	ID          string
	ActorID     string
	Role        string
	TokenHash   string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	RotatedFrom *string
	RevokedAt   *time.Time
}

// Channel es un canal de venta (web, app, kiosko...).
type Channel struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}

// Section es una sección dentro de un canal (corner del shopping).
type Section struct {
	ID        string
	ChannelID string
	Code      string
	Name      string
	CreatedAt time.Time
}

// Product es una publicación de un seller dentro de canal/sección.
type Product struct {
	ID          string
	SellerID    string
	ChannelID   string
	SectionID   string
	Name        string
	Description string
	Price       int64 // centavos
	Stock       int64
	Status      string // on_sale | paused
	CreatedAt   time.Time
}

// Inquiry es una consulta de un buyer sobre un producto.
type Inquiry struct {
	ID        string
	ProductID string
	BuyerID   string
	Title     string
	Question  string
	CreatedAt time.Time
}

// Comment es un comentario sobre una inquiry (del buyer dueño o del seller
// del producto).
type Comment struct {
	ID         string
	InquiryID  string
	AuthorID   string
	AuthorRole string
	Body       string
	Visibility string // public | private
	Status     string // published | draft
	CreatedAt  time.Time
}

// Coupon es un cupón de descuento administrado por un admin.
type Coupon struct {
	ID            string
	Name          string
	DiscountUnit  string // amount | percent
	DiscountValue int64
	Stock         int64 // tickets emitibles restantes
	CreatedAt     time.Time
}

// Ticket es la emisión de un cupón a un buyer concreto.
type Ticket struct {
	ID       string
	CouponID string
	BuyerID  string
	IssuedAt time.Time
	UsedAt   *time.Time
}

// CouponUse registra la redención de un ticket.
type CouponUse struct {
	ID       string
	TicketID string
	CouponID string
	BuyerID  string
	UsedAt   time.Time
}

// CartItem es un ítem del carrito de un buyer, previo a la orden.
type CartItem struct {
	ID        string
	BuyerID   string
	ProductID string
	Quantity  int64
	CreatedAt time.Time
}

// Order es una orden publicada, con snapshot de precios.
type Order struct {
	ID        string
	BuyerID   string
	Total     int64
	Mileage   int64  // acreditado al publicar
	Status    string // published
	CreatedAt time.Time
	Items     []OrderItem
}

// OrderItem es una línea de orden con precio congelado.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int64
}

// MileageTx es un movimiento de mileage (acreditación o ajuste).
type MileageTx struct {
	ID        string
	BuyerID   string
	Value     int64 // positivo acredita, negativo debita
	Reason    string
	CreatedAt time.Time
}
