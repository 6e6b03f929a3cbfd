// Package memory implementa core.Repository en memoria.
// Es el driver por defecto para desarrollo y para la suite e2e: cada
// proceso arranca con estado vacío y determinista.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kasadel/mallcore/internal/store/core"
)

// Store guarda todas las entidades bajo un único RWMutex. El volumen de
// un run de e2e es chico; no hace falta sharding.
type Store struct {
	mu sync.RWMutex

	actors    map[string]*core.Actor
	tokens    map[string]*core.RefreshToken // por id
	byHash    map[string]string             // tokenHash -> id
	channels  map[string]*core.Channel
	sections  map[string]*core.Section
	products  map[string]*core.Product
	inquiries map[string]*core.Inquiry
	comments  map[string]*core.Comment
	coupons   map[string]*core.Coupon
	tickets   map[string]*core.Ticket
	uses      map[string]*core.CouponUse
	carts     map[string]*core.CartItem
	orders    map[string]*core.Order
	mileage   map[string]int64 // buyerID -> balance
	miletxs   map[string]*core.MileageTx

	// orden de inserción, para listados estables y paginables
	channelOrder []string
	sectionOrder []string
	productOrder []string
	commentOrder []string
	couponOrder  []string
	orderOrder   []string
	miletxOrder  []string
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		actors:    map[string]*core.Actor{},
		tokens:    map[string]*core.RefreshToken{},
		byHash:    map[string]string{},
		channels:  map[string]*core.Channel{},
		sections:  map[string]*core.Section{},
		products:  map[string]*core.Product{},
		inquiries: map[string]*core.Inquiry{},
		comments:  map[string]*core.Comment{},
		coupons:   map[string]*core.Coupon{},
		tickets:   map[string]*core.Ticket{},
		uses:      map[string]*core.CouponUse{},
		carts:     map[string]*core.CartItem{},
		orders:    map[string]*core.Order{},
		mileage:   map[string]int64{},
		miletxs:   map[string]*core.MileageTx{},
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close()                     {}

func (s *Store) Actors() core.ActorRepository         { return actorRepo{s} }
func (s *Store) Tokens() core.TokenRepository         { return tokenRepo{s} }
func (s *Store) Channels() core.ChannelRepository     { return channelRepo{s} }
func (s *Store) Sections() core.SectionRepository     { return sectionRepo{s} }
func (s *Store) Products() core.ProductRepository     { return productRepo{s} }
func (s *Store) Inquiries() core.InquiryRepository    { return inquiryRepo{s} }
func (s *Store) Comments() core.CommentRepository     { return commentRepo{s} }
func (s *Store) Coupons() core.CouponRepository       { return couponRepo{s} }
func (s *Store) Tickets() core.TicketRepository       { return ticketRepo{s} }
func (s *Store) CouponUses() core.CouponUseRepository { return useRepo{s} }
func (s *Store) Carts() core.CartRepository           { return cartRepo{s} }
func (s *Store) Orders() core.OrderRepository         { return orderRepo{s} }
func (s *Store) Mileage() core.MileageRepository      { return mileageRepo{s} }

// paginate corta una lista de ids según Page y retorna (ids de la página, total).
func paginate(ids []string, p core.Page) ([]string, int64) {
	total := int64(len(ids))
	off := p.Offset()
	if off >= len(ids) {
		return nil, total
	}
	end := off + p.Limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[off:end], total
}

// ─── Actors ───

type actorRepo struct{ s *Store }

func actorKey(role, email string) string {
	return role + "/" + strings.ToLower(strings.TrimSpace(email))
}

func (r actorRepo) Create(_ context.Context, a *core.Actor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.actors {
		if ex.Role == a.Role && strings.EqualFold(ex.Email, a.Email) {
			return core.ErrConflict
		}
	}
	cp := *a
	r.s.actors[a.ID] = &cp
	return nil
}

func (r actorRepo) GetByEmail(_ context.Context, role, email string) (*core.Actor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.actors {
		if a.Role == role && strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r actorRepo) GetByID(_ context.Context, id string) (*core.Actor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.actors[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// ─── Tokens ───

type tokenRepo struct{ s *Store }

func (r tokenRepo) Create(_ context.Context, t *core.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.byHash[t.TokenHash]; dup {
		return core.ErrConflict
	}
	cp := *t
	r.s.tokens[t.ID] = &cp
	r.s.byHash[t.TokenHash] = t.ID
	return nil
}

func (r tokenRepo) GetByHash(_ context.Context, hash string) (*core.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byHash[hash]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *r.s.tokens[id]
	return &cp, nil
}

func (r tokenRepo) Revoke(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return core.ErrNotFound
	}
	if t.RevokedAt == nil {
		t.RevokedAt = &at
	}
	return nil
}

// ─── Channels / Sections ───

type channelRepo struct{ s *Store }

func (r channelRepo) Create(_ context.Context, c *core.Channel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.channels {
		if ex.Code == c.Code {
			return core.ErrConflict
		}
	}
	cp := *c
	r.s.channels[c.ID] = &cp
	r.s.channelOrder = append(r.s.channelOrder, c.ID)
	return nil
}

func (r channelRepo) GetByID(_ context.Context, id string) (*core.Channel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.channels[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r channelRepo) List(_ context.Context, p core.Page) ([]*core.Channel, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids, total := paginate(r.s.channelOrder, p)
	out := make([]*core.Channel, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.channels[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

type sectionRepo struct{ s *Store }

func (r sectionRepo) Create(_ context.Context, sec *core.Section) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.channels[sec.ChannelID]; !ok {
		return core.ErrNotFound
	}
	for _, ex := range r.s.sections {
		if ex.ChannelID == sec.ChannelID && ex.Code == sec.Code {
			return core.ErrConflict
		}
	}
	cp := *sec
	r.s.sections[sec.ID] = &cp
	r.s.sectionOrder = append(r.s.sectionOrder, sec.ID)
	return nil
}

func (r sectionRepo) GetByID(_ context.Context, id string) (*core.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sec, ok := r.s.sections[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *sec
	return &cp, nil
}

func (r sectionRepo) ListByChannel(_ context.Context, channelID string, p core.Page) ([]*core.Section, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.sectionOrder {
		if r.s.sections[id].ChannelID == channelID {
			ids = append(ids, id)
		}
	}
	pageIDs, total := paginate(ids, p)
	out := make([]*core.Section, 0, len(pageIDs))
	for _, id := range pageIDs {
		cp := *r.s.sections[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

// ─── Products ───

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, pr *core.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.channels[pr.ChannelID]; !ok {
		return core.ErrNotFound
	}
	if _, ok := r.s.sections[pr.SectionID]; !ok {
		return core.ErrNotFound
	}
	cp := *pr
	r.s.products[pr.ID] = &cp
	r.s.productOrder = append(r.s.productOrder, pr.ID)
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*core.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	pr, ok := r.s.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *pr
	return &cp, nil
}

func (r productRepo) List(_ context.Context, p core.Page) ([]*core.Product, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids, total := paginate(r.s.productOrder, p)
	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.products[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

func (r productRepo) AdjustStock(_ context.Context, id string, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pr, ok := r.s.products[id]
	if !ok {
		return core.ErrNotFound
	}
	if pr.Stock+delta < 0 {
		return core.ErrConflict
	}
	pr.Stock += delta
	return nil
}

// ─── Inquiries / Comments ───

type inquiryRepo struct{ s *Store }

func (r inquiryRepo) Create(_ context.Context, i *core.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[i.ProductID]; !ok {
		return core.ErrNotFound
	}
	cp := *i
	r.s.inquiries[i.ID] = &cp
	return nil
}

func (r inquiryRepo) GetByID(_ context.Context, id string) (*core.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.inquiries[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *core.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inquiries[c.InquiryID]; !ok {
		return core.ErrNotFound
	}
	cp := *c
	r.s.comments[c.ID] = &cp
	r.s.commentOrder = append(r.s.commentOrder, c.ID)
	return nil
}

func (r commentRepo) GetByID(_ context.Context, id string) (*core.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r commentRepo) ListByInquiry(_ context.Context, inquiryID string, p core.Page) ([]*core.Comment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.commentOrder {
		if r.s.comments[id].InquiryID == inquiryID {
			ids = append(ids, id)
		}
	}
	pageIDs, total := paginate(ids, p)
	out := make([]*core.Comment, 0, len(pageIDs))
	for _, id := range pageIDs {
		cp := *r.s.comments[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

// ─── Coupons / Tickets / Uses ───

type couponRepo struct{ s *Store }

func (r couponRepo) Create(_ context.Context, c *core.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.coupons[c.ID] = &cp
	r.s.couponOrder = append(r.s.couponOrder, c.ID)
	return nil
}

func (r couponRepo) GetByID(_ context.Context, id string) (*core.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.coupons[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r couponRepo) List(_ context.Context, p core.Page) ([]*core.Coupon, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids, total := paginate(r.s.couponOrder, p)
	out := make([]*core.Coupon, 0, len(ids))
	for _, id := range ids {
		cp := *r.s.coupons[id]
		out = append(out, &cp)
	}
	return out, total, nil
}

func (r couponRepo) AdjustStock(_ context.Context, id string, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[id]
	if !ok {
		return core.ErrNotFound
	}
	if c.Stock+delta < 0 {
		return core.ErrConflict
	}
	c.Stock += delta
	return nil
}

type ticketRepo struct{ s *Store }

func (r ticketRepo) Create(_ context.Context, t *core.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.tickets[t.ID] = &cp
	return nil
}

func (r ticketRepo) GetByID(_ context.Context, id string) (*core.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r ticketRepo) MarkUsed(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return core.ErrNotFound
	}
	if t.UsedAt != nil {
		return core.ErrConflict
	}
	t.UsedAt = &at
	return nil
}

type useRepo struct{ s *Store }

func (r useRepo) Create(_ context.Context, u *core.CouponUse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.uses[u.ID] = &cp
	return nil
}

func (r useRepo) GetByID(_ context.Context, id string) (*core.CouponUse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.uses[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r useRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.uses[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.s.uses, id)
	return nil
}

// ─── Carts / Orders ───

type cartRepo struct{ s *Store }

func (r cartRepo) Create(_ context.Context, it *core.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[it.ProductID]; !ok {
		return core.ErrNotFound
	}
	cp := *it
	r.s.carts[it.ID] = &cp
	return nil
}

func (r cartRepo) GetByID(_ context.Context, id string) (*core.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.carts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r cartRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.s.carts, id)
	return nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *core.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.Items = make([]core.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	r.s.orders[o.ID] = &cp
	r.s.orderOrder = append(r.s.orderOrder, o.ID)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*core.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *o
	cp.Items = make([]core.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp, nil
}

func (r orderRepo) ListByBuyer(_ context.Context, buyerID string, p core.Page) ([]*core.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.orderOrder {
		if r.s.orders[id].BuyerID == buyerID {
			ids = append(ids, id)
		}
	}
	pageIDs, total := paginate(ids, p)
	out := make([]*core.Order, 0, len(pageIDs))
	for _, id := range pageIDs {
		o := r.s.orders[id]
		cp := *o
		cp.Items = make([]core.OrderItem, len(o.Items))
		copy(cp.Items, o.Items)
		out = append(out, &cp)
	}
	return out, total, nil
}

// ─── Mileage ───

type mileageRepo struct{ s *Store }

func (r mileageRepo) Balance(_ context.Context, buyerID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.mileage[buyerID], nil
}

func (r mileageRepo) Append(_ context.Context, tx *core.MileageTx) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bal := r.s.mileage[tx.BuyerID]
	if bal+tx.Value < 0 {
		return bal, core.ErrConflict
	}
	bal += tx.Value
	r.s.mileage[tx.BuyerID] = bal
	cp := *tx
	r.s.miletxs[tx.ID] = &cp
	r.s.miletxOrder = append(r.s.miletxOrder, tx.ID)
	return bal, nil
}

func (r mileageRepo) History(_ context.Context, buyerID string, p core.Page) ([]*core.MileageTx, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.miletxOrder {
		if r.s.miletxs[id].BuyerID == buyerID {
			ids = append(ids, id)
		}
	}
	pageIDs, total := paginate(ids, p)
	out := make([]*core.MileageTx, 0, len(pageIDs))
	for _, id := range pageIDs {
		cp := *r.s.miletxs[id]
		out = append(out, &cp)
	}
	return out, total, nil
}
