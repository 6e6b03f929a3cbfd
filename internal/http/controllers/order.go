package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasadel/mallcore/internal/http/dto"
	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/http/middleware"
	"github.com/kasadel/mallcore/internal/http/render"
	"github.com/kasadel/mallcore/internal/service"
)

// OrderController expone carrito, órdenes y mileage del buyer.
type OrderController struct {
	svc  *service.OrderService
	auth *service.AuthService
}

func NewOrderController(svc *service.OrderService, auth *service.AuthService) *OrderController {
	return &OrderController{svc: svc, auth: auth}
}

// AddCartItem maneja POST /v1/cart-items.
func (c *OrderController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	var req dto.CartItemRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	it, err := c.svc.AddCartItem(r.Context(), id.ActorID, req.ProductID, req.Quantity)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewCartItem(it))
}

// GetCartItem maneja GET /v1/cart-items/{itemId}.
func (c *OrderController) GetCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	it, err := c.svc.GetCartItem(r.Context(), id.ActorID, chi.URLParam(r, "itemId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewCartItem(it))
}

// RemoveCartItem maneja DELETE /v1/cart-items/{itemId}.
func (c *OrderController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	if err := c.svc.RemoveCartItem(r.Context(), id.ActorID, chi.URLParam(r, "itemId")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishOrder maneja POST /v1/orders.
func (c *OrderController) PublishOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	var req dto.PublishOrderRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	buyer, err := c.auth.Me(r.Context(), id.ActorID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	order, err := c.svc.PublishOrder(r.Context(), buyer, req.CartItemIDs)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewOrder(order))
}

// GetOrder maneja GET /v1/orders/{orderId}.
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	o, err := c.svc.GetOrder(r.Context(), id.ActorID, chi.URLParam(r, "orderId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewOrder(o))
}

// ListOrders maneja GET /v1/orders.
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	items, pg, err := c.svc.ListOrders(r.Context(), id.ActorID, page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.Order, 0, len(items))
	for _, o := range items {
		data = append(data, dto.NewOrder(o))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}

// MileageBalance maneja GET /v1/mileage.
func (c *OrderController) MileageBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	bal, err := c.svc.MileageBalance(r.Context(), id.ActorID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.MileageBalance{BuyerID: id.ActorID, Balance: bal})
}

// AdjustMileage maneja POST /v1/mileage/{buyerId}/adjustments (admin).
func (c *OrderController) AdjustMileage(w http.ResponseWriter, r *http.Request) {
	var req dto.MileageAdjustRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	buyerID := chi.URLParam(r, "buyerId")
	bal, err := c.svc.AdjustMileage(r.Context(), buyerID, req.Value, req.Reason)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.MileageBalance{BuyerID: buyerID, Balance: bal})
}

// MileageHistory maneja GET /v1/mileage/history.
func (c *OrderController) MileageHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	items, pg, err := c.svc.MileageHistory(r.Context(), id.ActorID, page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.MileageTx, 0, len(items))
	for _, t := range items {
		data = append(data, dto.NewMileageTx(t))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}
