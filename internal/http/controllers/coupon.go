package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasadel/mallcore/internal/http/dto"
	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/http/middleware"
	"github.com/kasadel/mallcore/internal/http/render"
	"github.com/kasadel/mallcore/internal/service"
	"github.com/kasadel/mallcore/internal/store/core"
)

// CouponController expone cupones, tickets y redenciones.
type CouponController struct {
	svc *service.CouponService
}

func NewCouponController(svc *service.CouponService) *CouponController {
	return &CouponController{svc: svc}
}

// CreateCoupon maneja POST /v1/coupons (admin).
func (c *CouponController) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req dto.CouponRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	cp, err := c.svc.CreateCoupon(r.Context(), service.CouponInput{
		Name:          req.Name,
		DiscountUnit:  req.DiscountUnit,
		DiscountValue: req.DiscountValue,
		Stock:         req.Stock,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewCoupon(cp))
}

// GetCoupon maneja GET /v1/coupons/{couponId}.
func (c *CouponController) GetCoupon(w http.ResponseWriter, r *http.Request) {
	cp, err := c.svc.GetCoupon(r.Context(), chi.URLParam(r, "couponId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewCoupon(cp))
}

// ListCoupons maneja GET /v1/coupons.
func (c *CouponController) ListCoupons(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	items, pg, err := c.svc.ListCoupons(r.Context(), page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.Coupon, 0, len(items))
	for _, cp := range items {
		data = append(data, dto.NewCoupon(cp))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}

// IssueTicket maneja POST /v1/coupons/{couponId}/tickets. Un buyer se
// auto-emite; un admin emite a un buyer nombrado en el cuerpo.
func (c *CouponController) IssueTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	couponID := chi.URLParam(r, "couponId")

	var t *core.Ticket
	var err error
	if id.Role == core.RoleAdmin {
		var req dto.IssueTicketRequest
		if err := render.Decode(r, &req); err != nil {
			respondErr(w, r, err)
			return
		}
		t, err = c.svc.IssueTicketTo(r.Context(), req.BuyerID, couponID)
	} else {
		t, err = c.svc.IssueTicket(r.Context(), id.ActorID, couponID)
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewTicket(t))
}

// GetTicket maneja GET /v1/tickets/{ticketId} (buyer).
func (c *CouponController) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	t, err := c.svc.GetTicket(r.Context(), id.ActorID, chi.URLParam(r, "ticketId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewTicket(t))
}

// RedeemTicket maneja POST /v1/tickets/{ticketId}/uses (buyer).
func (c *CouponController) RedeemTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	u, err := c.svc.RedeemTicket(r.Context(), id.ActorID, chi.URLParam(r, "ticketId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewCouponUse(u))
}

// GetUse maneja GET /v1/coupon-uses/{useId} (buyer).
func (c *CouponController) GetUse(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	u, err := c.svc.GetUse(r.Context(), id.ActorID, chi.URLParam(r, "useId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewCouponUse(u))
}

// EraseUse maneja DELETE /v1/coupon-uses/{useId} (buyer). El segundo
// borrado del mismo registro responde 404.
func (c *CouponController) EraseUse(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	if err := c.svc.EraseUse(r.Context(), id.ActorID, chi.URLParam(r, "useId")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
