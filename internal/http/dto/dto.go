// Package dto define los cuerpos de request y response de la API v1.
package dto

import (
	"time"

	"github.com/kasadel/mallcore/internal/store/core"
)

// ─── Auth ───

type JoinRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type Actor struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Session struct {
	Actor Actor `json:"actor"`
	Token Token `json:"token"`
}

type Token struct {
	Access           string    `json:"access"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	Refresh          string    `json:"refresh"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

func NewActor(a *core.Actor) Actor {
	return Actor{
		ID:        a.ID,
		Role:      a.Role,
		Email:     a.Email,
		Name:      a.Name,
		Nickname:  a.Nickname,
		CreatedAt: a.CreatedAt,
	}
}

// ─── Catálogo ───

type ChannelRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Channel struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewChannel(c *core.Channel) Channel {
	return Channel{ID: c.ID, Code: c.Code, Name: c.Name, CreatedAt: c.CreatedAt}
}

type SectionRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Section struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channelId"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSection(s *core.Section) Section {
	return Section{ID: s.ID, ChannelID: s.ChannelID, Code: s.Code, Name: s.Name, CreatedAt: s.CreatedAt}
}

type ProductRequest struct {
	ChannelID   string `json:"channelId"`
	SectionID   string `json:"sectionId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
}

type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	ChannelID   string    `json:"channelId"`
	SectionID   string    `json:"sectionId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewProduct(p *core.Product) Product {
	return Product{
		ID:          p.ID,
		SellerID:    p.SellerID,
		ChannelID:   p.ChannelID,
		SectionID:   p.SectionID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// ─── Inquiries ───

type InquiryRequest struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Question  string `json:"question"`
}

type Inquiry struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	BuyerID   string    `json:"buyerId"`
	Title     string    `json:"title"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewInquiry(i *core.Inquiry) Inquiry {
	return Inquiry{
		ID:        i.ID,
		ProductID: i.ProductID,
		BuyerID:   i.BuyerID,
		Title:     i.Title,
		Question:  i.Question,
		CreatedAt: i.CreatedAt,
	}
}

type CommentRequest struct {
	Body       string `json:"body"`
	Visibility string `json:"visibility,omitempty"`
	Status     string `json:"status,omitempty"`
}

type Comment struct {
	ID         string    `json:"id"`
	InquiryID  string    `json:"inquiryId"`
	AuthorID   string    `json:"authorId"`
	AuthorRole string    `json:"authorRole"`
	Body       string    `json:"body"`
	Visibility string    `json:"visibility"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewComment(c *core.Comment) Comment {
	return Comment{
		ID:         c.ID,
		InquiryID:  c.InquiryID,
		AuthorID:   c.AuthorID,
		AuthorRole: c.AuthorRole,
		Body:       c.Body,
		Visibility: c.Visibility,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
	}
}

// ─── Cupones ───

type CouponRequest struct {
	Name          string `json:"name"`
	DiscountUnit  string `json:"discountUnit"`
	DiscountValue int64  `json:"discountValue"`
	Stock         int64  `json:"stock"`
}

type Coupon struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DiscountUnit  string    `json:"discountUnit"`
	DiscountValue int64     `json:"discountValue"`
	Stock         int64     `json:"stock"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewCoupon(c *core.Coupon) Coupon {
	return Coupon{
		ID:            c.ID,
		Name:          c.Name,
		DiscountUnit:  c.DiscountUnit,
		DiscountValue: c.DiscountValue,
		Stock:         c.Stock,
		CreatedAt:     c.CreatedAt,
	}
}

// IssueTicketRequest es el cuerpo de la emisión admin, que nombra al
// buyer destinatario. Los buyers se auto-emiten sin cuerpo.
type IssueTicketRequest struct {
	BuyerID string `json:"buyerId"`
}

type Ticket struct {
	ID       string     `json:"id"`
	CouponID string     `json:"couponId"`
	BuyerID  string     `json:"buyerId"`
	IssuedAt time.Time  `json:"issuedAt"`
	UsedAt   *time.Time `json:"usedAt,omitempty"`
}

func NewTicket(t *core.Ticket) Ticket {
	return Ticket{ID: t.ID, CouponID: t.CouponID, BuyerID: t.BuyerID, IssuedAt: t.IssuedAt, UsedAt: t.UsedAt}
}

type CouponUse struct {
	ID       string    `json:"id"`
	TicketID string    `json:"ticketId"`
	CouponID string    `json:"couponId"`
	BuyerID  string    `json:"buyerId"`
	UsedAt   time.Time `json:"usedAt"`
}

func NewCouponUse(u *core.CouponUse) CouponUse {
	return CouponUse{ID: u.ID, TicketID: u.TicketID, CouponID: u.CouponID, BuyerID: u.BuyerID, UsedAt: u.UsedAt}
}

// ─── Carrito y órdenes ───

type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type CartItem struct {
	ID        string    `json:"id"`
	BuyerID   string    `json:"buyerId"`
	ProductID string    `json:"productId"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCartItem(it *core.CartItem) CartItem {
	return CartItem{ID: it.ID, BuyerID: it.BuyerID, ProductID: it.ProductID, Quantity: it.Quantity, CreatedAt: it.CreatedAt}
}

type PublishOrderRequest struct {
	CartItemIDs []string `json:"cartItemIds"`
}

type Order struct {
	ID        string      `json:"id"`
	BuyerID   string      `json:"buyerId"`
	Total     int64       `json:"total"`
	Mileage   int64       `json:"mileage"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
}

func NewOrder(o *core.Order) Order {
	out := Order{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Total:     o.Total,
		Mileage:   o.Mileage,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Items:     make([]OrderItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return out
}

// ─── Mileage ───

type MileageBalance struct {
	BuyerID string `json:"buyerId"`
	Balance int64  `json:"balance"`
}

type MileageAdjustRequest struct {
	Value  int64  `json:"value"`
	Reason string `json:"reason"`
}

type MileageTx struct {
	ID        string    `json:"id"`
	Value     int64     `json:"value"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMileageTx(t *core.MileageTx) MileageTx {
	return MileageTx{ID: t.ID, Value: t.Value, Reason: t.Reason, CreatedAt: t.CreatedAt}
}

// ─── Paginación ───

// PageEnvelope es el sobre estándar de listados: metadata + data.
type PageEnvelope struct {
	Pagination core.Pagination `json:"pagination"`
	Data       any             `json:"data"`
}
