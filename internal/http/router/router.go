// Package router arma el árbol de rutas de la API v1.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasadel/mallcore/internal/auth"
	"github.com/kasadel/mallcore/internal/http/controllers"
	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/http/middleware"
	"github.com/kasadel/mallcore/internal/observability/metrics"
	"github.com/kasadel/mallcore/internal/rate"
	"github.com/kasadel/mallcore/internal/store/core"
)

// Deps son las dependencias ya construidas que el router cablea.
type Deps struct {
	Issuer  *auth.Issuer
	Limiter rate.Limiter // nil deshabilita rate limiting

	Auth    *controllers.AuthController
	Catalog *controllers.CatalogController
	Inquiry *controllers.InquiryController
	Coupon  *controllers.CouponController
	Order   *controllers.OrderController
	Health  *controllers.HealthController
}

// New construye el router completo con middlewares y rutas v1.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover)
	r.Use(metrics.Middleware)
	r.Use(middleware.Logging)
	if d.Limiter != nil {
		r.Use(middleware.RateLimit(d.Limiter))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apperrors.WriteError(w, apperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apperrors.WriteError(w, apperrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	anyActor := middleware.RequireAuth(d.Issuer)
	adminOnly := middleware.RequireAuth(d.Issuer, core.RoleAdmin)
	sellerOnly := middleware.RequireAuth(d.Issuer, core.RoleSeller)
	buyerOnly := middleware.RequireAuth(d.Issuer, core.RoleBuyer)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/{role}/join", d.Auth.Join)
			r.Post("/{role}/login", d.Auth.Login)
			r.Post("/{role}/refresh", d.Auth.Refresh)
			r.With(anyActor).Get("/me", d.Auth.Me)
		})

		r.Route("/channels", func(r chi.Router) {
			r.With(adminOnly).Post("/", d.Catalog.CreateChannel)
			r.Get("/", d.Catalog.ListChannels)
			r.With(adminOnly).Post("/{channelId}/sections", d.Catalog.CreateSection)
			r.Get("/{channelId}/sections", d.Catalog.ListSections)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(sellerOnly).Post("/", d.Catalog.CreateProduct)
			r.Get("/", d.Catalog.ListProducts)
			r.Get("/{productId}", d.Catalog.GetProduct)
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.With(buyerOnly).Post("/", d.Inquiry.CreateInquiry)
			r.With(anyActor).Get("/{inquiryId}", d.Inquiry.GetInquiry)
			r.With(anyActor).Post("/{inquiryId}/comments", d.Inquiry.CreateComment)
			r.With(anyActor).Get("/{inquiryId}/comments", d.Inquiry.ListComments)
			r.With(anyActor).Get("/{inquiryId}/comments/{commentId}", d.Inquiry.GetComment)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.With(adminOnly).Post("/", d.Coupon.CreateCoupon)
			r.With(anyActor).Get("/", d.Coupon.ListCoupons)
			r.With(anyActor).Get("/{couponId}", d.Coupon.GetCoupon)
			r.With(middleware.RequireAuth(d.Issuer, core.RoleBuyer, core.RoleAdmin)).
				Post("/{couponId}/tickets", d.Coupon.IssueTicket)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.With(buyerOnly).Get("/{ticketId}", d.Coupon.GetTicket)
			r.With(buyerOnly).Post("/{ticketId}/uses", d.Coupon.RedeemTicket)
		})

		r.Route("/coupon-uses", func(r chi.Router) {
			r.With(buyerOnly).Get("/{useId}", d.Coupon.GetUse)
			r.With(buyerOnly).Delete("/{useId}", d.Coupon.EraseUse)
		})

		r.Route("/cart-items", func(r chi.Router) {
			r.With(buyerOnly).Post("/", d.Order.AddCartItem)
			r.With(buyerOnly).Get("/{itemId}", d.Order.GetCartItem)
			r.With(buyerOnly).Delete("/{itemId}", d.Order.RemoveCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(buyerOnly).Post("/", d.Order.PublishOrder)
			r.With(buyerOnly).Get("/", d.Order.ListOrders)
			r.With(buyerOnly).Get("/{orderId}", d.Order.GetOrder)
		})

		r.Route("/mileage", func(r chi.Router) {
			r.With(buyerOnly).Get("/", d.Order.MileageBalance)
			r.With(buyerOnly).Get("/history", d.Order.MileageHistory)
			r.With(adminOnly).Post("/{buyerId}/adjustments", d.Order.AdjustMileage)
		})
	})

	return r
}
