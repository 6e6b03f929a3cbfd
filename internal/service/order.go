package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasadel/mallcore/internal/email"
	"github.com/kasadel/mallcore/internal/observability/logger"
	"github.com/kasadel/mallcore/internal/store/core"
)

var (
	ErrCartItemNotFound = errors.New("service: cart item not found")
	ErrNotCartOwner     = errors.New("service: cart item belongs to another buyer")
	ErrOrderNotFound    = errors.New("service: order not found")
	ErrNotOrderOwner    = errors.New("service: order belongs to another buyer")
	ErrOutOfStock       = errors.New("service: insufficient stock")
	ErrEmptyOrder       = errors.New("service: order has no items")
	ErrProductPaused    = errors.New("service: product is not on sale")
	ErrMileageNegative  = errors.New("service: mileage balance cannot go negative")
)

// OrderService maneja carrito, publicación de órdenes y la acreditación de
// mileage asociada.
type OrderService struct {
	repo           core.Repository
	sender         email.Sender
	accrualPercent int64
	log            *zap.Logger
}

func NewOrderService(repo core.Repository, sender email.Sender, accrualPercent int) *OrderService {
	return &OrderService{
		repo:           repo,
		sender:         sender,
		accrualPercent: int64(accrualPercent),
		log:            logger.Named("service.order"),
	}
}

// AddCartItem agrega un producto al carrito del buyer. No reserva stock:
// la validación fuerte ocurre al publicar la orden.
func (s *OrderService) AddCartItem(ctx context.Context, buyerID, productID string, qty int64) (*core.CartItem, error) {
	if qty <= 0 {
		return nil, ErrValidation
	}
	pr, err := s.repo.Products().GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if pr.Status != "on_sale" {
		return nil, ErrProductPaused
	}
	it := &core.CartItem{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Carts().Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetCartItem lee un ítem del carrito del buyer.
func (s *OrderService) GetCartItem(ctx context.Context, buyerID, itemID string) (*core.CartItem, error) {
	it, err := s.repo.Carts().GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if it.BuyerID != buyerID {
		return nil, ErrNotCartOwner
	}
	return it, nil
}

// RemoveCartItem saca un ítem del carrito.
func (s *OrderService) RemoveCartItem(ctx context.Context, buyerID, itemID string) error {
	if _, err := s.GetCartItem(ctx, buyerID, itemID); err != nil {
		return err
	}
	if err := s.repo.Carts().Delete(ctx, itemID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

// PublishOrder convierte ítems del carrito en una orden publicada:
// descuenta stock, congela precios, acredita mileage y consume los ítems.
// Si algún producto no tiene stock suficiente se revierte lo descontado y
// la orden no se crea.
func (s *OrderService) PublishOrder(ctx context.Context, buyer *core.Actor, cartItemIDs []string) (*core.Order, error) {
	if len(cartItemIDs) == 0 {
		return nil, ErrEmptyOrder
	}

	type line struct {
		item    *core.CartItem
		product *core.Product
	}
	lines := make([]line, 0, len(cartItemIDs))
	for _, id := range cartItemIDs {
		it, err := s.GetCartItem(ctx, buyer.ID, id)
		if err != nil {
			return nil, err
		}
		pr, err := s.repo.Products().GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		lines = append(lines, line{item: it, product: pr})
	}

	// Descuento de stock con rollback manual ante el primer faltante.
	var adjusted []line
	for _, ln := range lines {
		if err := s.repo.Products().AdjustStock(ctx, ln.product.ID, -ln.item.Quantity); err != nil {
			for _, done := range adjusted {
				_ = s.repo.Products().AdjustStock(ctx, done.product.ID, done.item.Quantity)
			}
			if errors.Is(err, core.ErrConflict) {
				return nil, ErrOutOfStock
			}
			return nil, err
		}
		adjusted = append(adjusted, ln)
	}

	now := time.Now().UTC()
	order := &core.Order{
		ID:        uuid.NewString(),
		BuyerID:   buyer.ID,
		Status:    "published",
		CreatedAt: now,
	}
	for _, ln := range lines {
		order.Items = append(order.Items, core.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: ln.product.ID,
			Name:      ln.product.Name,
			UnitPrice: ln.product.Price,
			Quantity:  ln.item.Quantity,
		})
		order.Total += ln.product.Price * ln.item.Quantity
	}
	order.Mileage = order.Total * s.accrualPercent / 100

	if err := s.repo.Orders().Create(ctx, order); err != nil {
		for _, done := range adjusted {
			_ = s.repo.Products().AdjustStock(ctx, done.product.ID, done.item.Quantity)
		}
		return nil, err
	}

	if order.Mileage > 0 {
		if _, err := s.repo.Mileage().Append(ctx, &core.MileageTx{
			ID:        uuid.NewString(),
			BuyerID:   buyer.ID,
			Value:     order.Mileage,
			Reason:    "order:" + order.ID,
			CreatedAt: now,
		}); err != nil {
			s.log.Error("acreditación de mileage falló", logger.OrderID(order.ID), logger.Err(err))
		}
	}

	for _, ln := range lines {
		_ = s.repo.Carts().Delete(ctx, ln.item.ID)
	}

	if err := s.sender.Send(ctx, email.OrderConfirmation(buyer.Email, order.ID, order.Total, order.Mileage)); err != nil {
		s.log.Warn("email de confirmación falló", logger.OrderID(order.ID), logger.Err(err))
	}

	s.log.Info("orden publicada",
		logger.OrderID(order.ID),
		logger.ActorID(buyer.ID),
		zap.Int64("total", order.Total),
		zap.Int64("mileage", order.Mileage),
	)
	return order, nil
}

// GetOrder lee una orden del buyer. Órdenes ajenas no son visibles.
func (s *OrderService) GetOrder(ctx context.Context, buyerID, orderID string) (*core.Order, error) {
	o, err := s.repo.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

// ListOrders pagina las órdenes del buyer.
func (s *OrderService) ListOrders(ctx context.Context, buyerID string, page core.Page) ([]*core.Order, core.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.repo.Orders().ListByBuyer(ctx, buyerID, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}

// MileageBalance retorna el balance actual del buyer.
func (s *OrderService) MileageBalance(ctx context.Context, buyerID string) (int64, error) {
	return s.repo.Mileage().Balance(ctx, buyerID)
}

// AdjustMileage aplica un movimiento manual al ledger del buyer (admin).
// Un débito que dejaría el balance negativo se rechaza completo.
func (s *OrderService) AdjustMileage(ctx context.Context, buyerID string, value int64, reason string) (int64, error) {
	if value == 0 || reason == "" {
		return 0, ErrValidation
	}
	a, err := s.repo.Actors().GetByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return 0, ErrActorNotFound
		}
		return 0, err
	}
	if a.Role != core.RoleBuyer {
		return 0, ErrValidation
	}
	bal, err := s.repo.Mileage().Append(ctx, &core.MileageTx{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		Value:     value,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			return 0, ErrMileageNegative
		}
		return 0, err
	}
	s.log.Info("ajuste de mileage aplicado",
		logger.ActorID(buyerID),
		zap.Int64("value", value),
		zap.Int64("balance", bal),
	)
	return bal, nil
}

// MileageHistory pagina los movimientos del ledger del buyer.
func (s *OrderService) MileageHistory(ctx context.Context, buyerID string, page core.Page) ([]*core.MileageTx, core.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.repo.Mileage().History(ctx, buyerID, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}
