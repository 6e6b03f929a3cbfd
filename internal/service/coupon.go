package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasadel/mallcore/internal/observability/logger"
	"github.com/kasadel/mallcore/internal/store/core"
)

var (
	ErrCouponNotFound  = errors.New("service: coupon not found")
	ErrCouponExhausted = errors.New("service: coupon has no tickets left")
	ErrTicketNotFound  = errors.New("service: ticket not found")
	ErrTicketUsed      = errors.New("service: ticket already redeemed")
	ErrUseNotFound     = errors.New("service: coupon use not found")
	ErrNotTicketOwner  = errors.New("service: ticket belongs to another buyer")
)

// CouponService maneja cupones (admin), emisión de tickets y redenciones
// (buyer).
type CouponService struct {
	repo core.Repository
	log  *zap.Logger
}

func NewCouponService(repo core.Repository) *CouponService {
	return &CouponService{repo: repo, log: logger.Named("service.coupon")}
}

// CouponInput son los datos de un cupón nuevo.
type CouponInput struct {
	Name          string
	DiscountUnit  string // amount | percent
	DiscountValue int64
	Stock         int64
}

func (s *CouponService) CreateCoupon(ctx context.Context, in CouponInput) (*core.Coupon, error) {
	if in.Name == "" || in.DiscountValue <= 0 || in.Stock < 0 {
		return nil, ErrValidation
	}
	if in.DiscountUnit != "amount" && in.DiscountUnit != "percent" {
		return nil, ErrValidation
	}
	if in.DiscountUnit == "percent" && in.DiscountValue > 100 {
		return nil, ErrValidation
	}
	c := &core.Coupon{
		ID:            uuid.NewString(),
		Name:          in.Name,
		DiscountUnit:  in.DiscountUnit,
		DiscountValue: in.DiscountValue,
		Stock:         in.Stock,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Coupons().Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("cupón creado", logger.CouponID(c.ID))
	return c, nil
}

func (s *CouponService) GetCoupon(ctx context.Context, id string) (*core.Coupon, error) {
	c, err := s.repo.Coupons().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CouponService) ListCoupons(ctx context.Context, page core.Page) ([]*core.Coupon, core.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.repo.Coupons().List(ctx, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}

// IssueTicket emite un ticket del cupón al buyer, descontando stock.
func (s *CouponService) IssueTicket(ctx context.Context, buyerID, couponID string) (*core.Ticket, error) {
	if _, err := s.GetCoupon(ctx, couponID); err != nil {
		return nil, err
	}
	if err := s.repo.Coupons().AdjustStock(ctx, couponID, -1); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrCouponNotFound
		case errors.Is(err, core.ErrConflict):
			return nil, ErrCouponExhausted
		}
		return nil, err
	}
	t := &core.Ticket{
		ID:       uuid.NewString(),
		CouponID: couponID,
		BuyerID:  buyerID,
		IssuedAt: time.Now().UTC(),
	}
	if err := s.repo.Tickets().Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// IssueTicketTo emite un ticket en nombre de un admin hacia un buyer
// concreto. El destinatario tiene que existir y ser buyer.
func (s *CouponService) IssueTicketTo(ctx context.Context, buyerID, couponID string) (*core.Ticket, error) {
	if buyerID == "" {
		return nil, ErrValidation
	}
	a, err := s.repo.Actors().GetByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	if a.Role != core.RoleBuyer {
		return nil, ErrValidation
	}
	return s.IssueTicket(ctx, buyerID, couponID)
}

// GetTicket lee un ticket del buyer. Tickets ajenos no son visibles.
func (s *CouponService) GetTicket(ctx context.Context, buyerID, ticketID string) (*core.Ticket, error) {
	t, err := s.repo.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if t.BuyerID != buyerID {
		return nil, ErrNotTicketOwner
	}
	return t, nil
}

// RedeemTicket canjea el ticket exactamente una vez y registra el uso.
func (s *CouponService) RedeemTicket(ctx context.Context, buyerID, ticketID string) (*core.CouponUse, error) {
	t, err := s.GetTicket(ctx, buyerID, ticketID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.repo.Tickets().MarkUsed(ctx, t.ID, now); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrTicketNotFound
		case errors.Is(err, core.ErrConflict):
			return nil, ErrTicketUsed
		}
		return nil, err
	}
	u := &core.CouponUse{
		ID:       uuid.NewString(),
		TicketID: t.ID,
		CouponID: t.CouponID,
		BuyerID:  buyerID,
		UsedAt:   now,
	}
	if err := s.repo.CouponUses().Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("ticket canjeado", logger.CouponID(t.CouponID), logger.ActorID(buyerID))
	return u, nil
}

// GetUse lee una redención del buyer.
func (s *CouponService) GetUse(ctx context.Context, buyerID, useID string) (*core.CouponUse, error) {
	u, err := s.repo.CouponUses().GetByID(ctx, useID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUseNotFound
		}
		return nil, err
	}
	if u.BuyerID != buyerID {
		return nil, ErrUseNotFound
	}
	return u, nil
}

// EraseUse borra el registro de redención. El segundo borrado del mismo
// registro falla: ya no existe.
func (s *CouponService) EraseUse(ctx context.Context, buyerID, useID string) error {
	if _, err := s.GetUse(ctx, buyerID, useID); err != nil {
		return err
	}
	if err := s.repo.CouponUses().Delete(ctx, useID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUseNotFound
		}
		return err
	}
	return nil
}
