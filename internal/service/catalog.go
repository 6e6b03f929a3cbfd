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
	ErrChannelNotFound = errors.New("service: channel not found")
	ErrSectionNotFound = errors.New("service: section not found")
	ErrProductNotFound = errors.New("service: product not found")
	ErrCodeTaken       = errors.New("service: code already in use")
)

// CatalogService administra canales, secciones y productos.
type CatalogService struct {
	repo core.Repository
	log  *zap.Logger
}

func NewCatalogService(repo core.Repository) *CatalogService {
	return &CatalogService{repo: repo, log: logger.Named("service.catalog")}
}

func (s *CatalogService) CreateChannel(ctx context.Context, code, name string) (*core.Channel, error) {
	if code == "" || name == "" {
		return nil, ErrValidation
	}
	ch := &core.Channel{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Channels().Create(ctx, ch); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return ch, nil
}

func (s *CatalogService) ListChannels(ctx context.Context, page core.Page) ([]*core.Channel, core.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.repo.Channels().List(ctx, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}

func (s *CatalogService) CreateSection(ctx context.Context, channelID, code, name string) (*core.Section, error) {
	if code == "" || name == "" {
		return nil, ErrValidation
	}
	sec := &core.Section{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		Code:      code,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Sections().Create(ctx, sec); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrChannelNotFound
		case errors.Is(err, core.ErrConflict):
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return sec, nil
}

func (s *CatalogService) ListSections(ctx context.Context, channelID string, page core.Page) ([]*core.Section, core.Pagination, error) {
	if _, err := s.repo.Channels().GetByID(ctx, channelID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.Pagination{}, ErrChannelNotFound
		}
		return nil, core.Pagination{}, err
	}
	page = page.Normalize()
	items, total, err := s.repo.Sections().ListByChannel(ctx, channelID, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}

// ProductInput son los datos de publicación de un producto.
type ProductInput struct {
	ChannelID   string
	SectionID   string
	Name        string
	Description string
	Price       int64
	Stock       int64
}

// CreateProduct publica un producto del seller en canal/sección.
func (s *CatalogService) CreateProduct(ctx context.Context, sellerID string, in ProductInput) (*core.Product, error) {
	if in.Name == "" || in.Price < 0 || in.Stock < 0 {
		return nil, ErrValidation
	}
	sec, err := s.repo.Sections().GetByID(ctx, in.SectionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	if sec.ChannelID != in.ChannelID {
		return nil, ErrSectionNotFound
	}
	pr := &core.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		ChannelID:   in.ChannelID,
		SectionID:   in.SectionID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      "on_sale",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Products().Create(ctx, pr); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	s.log.Info("producto publicado", logger.ProductID(pr.ID), logger.ActorID(sellerID))
	return pr, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	pr, err := s.repo.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return pr, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, page core.Page) ([]*core.Product, core.Pagination, error) {
	page = page.Normalize()
	items, total, err := s.repo.Products().List(ctx, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}
