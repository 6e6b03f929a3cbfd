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

// InquiryController expone consultas de producto y comentarios.
type InquiryController struct {
	svc *service.InquiryService
}

func NewInquiryController(svc *service.InquiryService) *InquiryController {
	return &InquiryController{svc: svc}
}

// CreateInquiry maneja POST /v1/inquiries (buyer).
func (c *InquiryController) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	var req dto.InquiryRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	inq, err := c.svc.CreateInquiry(r.Context(), id.ActorID, req.ProductID, req.Title, req.Question)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewInquiry(inq))
}

// GetInquiry maneja GET /v1/inquiries/{inquiryId}.
func (c *InquiryController) GetInquiry(w http.ResponseWriter, r *http.Request) {
	inq, err := c.svc.GetInquiry(r.Context(), chi.URLParam(r, "inquiryId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewInquiry(inq))
}

// CreateComment maneja POST /v1/inquiries/{inquiryId}/comments.
func (c *InquiryController) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	var req dto.CommentRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	cm, err := c.svc.CreateComment(r.Context(), id.ActorID, id.Role, chi.URLParam(r, "inquiryId"), service.CommentInput{
		Body:       req.Body,
		Visibility: req.Visibility,
		Status:     req.Status,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewComment(cm))
}

// GetComment maneja GET /v1/inquiries/{inquiryId}/comments/{commentId}.
func (c *InquiryController) GetComment(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	cm, err := c.svc.GetComment(r.Context(), id.ActorID, id.Role,
		chi.URLParam(r, "inquiryId"), chi.URLParam(r, "commentId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewComment(cm))
}

// ListComments maneja GET /v1/inquiries/{inquiryId}/comments.
func (c *InquiryController) ListComments(w http.ResponseWriter, r *http.Request) {
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
	items, pg, err := c.svc.ListComments(r.Context(), id.ActorID, id.Role, chi.URLParam(r, "inquiryId"), page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.Comment, 0, len(items))
	for _, cm := range items {
		data = append(data, dto.NewComment(cm))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}
