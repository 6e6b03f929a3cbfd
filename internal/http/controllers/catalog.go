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

// CatalogController expone canales, secciones y productos.
type CatalogController struct {
	svc *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{svc: svc}
}

// CreateChannel maneja POST /v1/channels (admin).
func (c *CatalogController) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var req dto.ChannelRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	ch, err := c.svc.CreateChannel(r.Context(), req.Code, req.Name)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewChannel(ch))
}

// ListChannels maneja GET /v1/channels.
func (c *CatalogController) ListChannels(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	items, pg, err := c.svc.ListChannels(r.Context(), page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.Channel, 0, len(items))
	for _, ch := range items {
		data = append(data, dto.NewChannel(ch))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}

// CreateSection maneja POST /v1/channels/{channelId}/sections (admin).
func (c *CatalogController) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req dto.SectionRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	sec, err := c.svc.CreateSection(r.Context(), chi.URLParam(r, "channelId"), req.Code, req.Name)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewSection(sec))
}

// ListSections maneja GET /v1/channels/{channelId}/sections.
func (c *CatalogController) ListSections(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	items, pg, err := c.svc.ListSections(r.Context(), chi.URLParam(r, "channelId"), page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.Section, 0, len(items))
	for _, sec := range items {
		data = append(data, dto.NewSection(sec))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}

// CreateProduct maneja POST /v1/products (seller).
func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondErr(w, r, apperrors.ErrUnauthorized)
		return
	}
	var req dto.ProductRequest
	if err := render.Decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	pr, err := c.svc.CreateProduct(r.Context(), id.ActorID, service.ProductInput{
		ChannelID:   req.ChannelID,
		SectionID:   req.SectionID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, dto.NewProduct(pr))
}

// GetProduct maneja GET /v1/products/{productId}.
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	pr, err := c.svc.GetProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.NewProduct(pr))
}

// ListProducts maneja GET /v1/products.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	items, pg, err := c.svc.ListProducts(r.Context(), page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	data := make([]dto.Product, 0, len(items))
	for _, pr := range items {
		data = append(data, dto.NewProduct(pr))
	}
	render.JSON(w, http.StatusOK, dto.PageEnvelope{Pagination: pg, Data: data})
}
