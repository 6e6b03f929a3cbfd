// Package controllers traduce HTTP a llamadas de servicio y errores de
// dominio a AppError.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/kasadel/mallcore/internal/http/errors"
	"github.com/kasadel/mallcore/internal/observability/logger"
	"github.com/kasadel/mallcore/internal/service"
	"github.com/kasadel/mallcore/internal/store/core"
)

// respondErr mapea sentinels de servicio al AppError correspondiente.
// Errores no reconocidos se loguean y salen como 500.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apperrors.WriteError(w, apperrors.ErrMissingFields)
	case errors.Is(err, service.ErrEmailTaken):
		apperrors.WriteError(w, apperrors.ErrEmailAlreadyInUse)
	case errors.Is(err, service.ErrInvalidCredentials):
		apperrors.WriteError(w, apperrors.ErrInvalidCredentials)
	case errors.Is(err, service.ErrRefreshInvalid):
		apperrors.WriteError(w, apperrors.ErrTokenInvalid.WithDetail("refresh token inválido o revocado"))
	case errors.Is(err, service.ErrActorNotFound),
		errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrInquiryNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrUseNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		apperrors.WriteError(w, apperrors.ErrNotFound)
	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotTicketOwner),
		errors.Is(err, service.ErrNotCartOwner),
		errors.Is(err, service.ErrNotOrderOwner):
		apperrors.WriteError(w, apperrors.ErrForbidden)
	case errors.Is(err, service.ErrCodeTaken):
		apperrors.WriteError(w, apperrors.ErrConflict.WithDetail("el código ya está en uso"))
	case errors.Is(err, service.ErrCouponExhausted):
		apperrors.WriteError(w, apperrors.ErrConflict.WithDetail("cupón sin emisiones disponibles"))
	case errors.Is(err, service.ErrTicketUsed):
		apperrors.WriteError(w, apperrors.ErrConflict.WithDetail("el ticket ya fue canjeado"))
	case errors.Is(err, service.ErrOutOfStock):
		apperrors.WriteError(w, apperrors.ErrUnprocessableEntity.WithDetail("stock insuficiente"))
	case errors.Is(err, service.ErrProductPaused):
		apperrors.WriteError(w, apperrors.ErrUnprocessableEntity.WithDetail("el producto no está a la venta"))
	case errors.Is(err, service.ErrMileageNegative):
		apperrors.WriteError(w, apperrors.ErrUnprocessableEntity.WithDetail("el balance de mileage no puede quedar negativo"))
	case errors.Is(err, service.ErrEmptyOrder):
		apperrors.WriteError(w, apperrors.ErrMissingFields.WithDetail("la orden no tiene ítems"))
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			apperrors.WriteError(w, appErr)
			return
		}
		logger.From(r.Context()).Error("error no mapeado",
			logger.Path(r.URL.Path),
			logger.Err(err),
		)
		apperrors.WriteError(w, apperrors.ErrInternalServerError)
	}
}

// parsePage lee ?page y ?limit. Valores fuera de rango caen en defaults
// al normalizar; valores no numéricos son 400.
func parsePage(r *http.Request) (core.Page, error) {
	var p core.Page
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperrors.ErrInvalidParameter.WithDetail("page debe ser un entero positivo")
		}
		p.Current = n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperrors.ErrInvalidParameter.WithDetail("limit debe ser un entero positivo")
		}
		p.Limit = n
	}
	return p, nil
}
