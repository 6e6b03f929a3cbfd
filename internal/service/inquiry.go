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
	ErrInquiryNotFound = errors.New("service: inquiry not found")
	ErrCommentNotFound = errors.New("service: comment not found")
	ErrNotParticipant  = errors.New("service: actor is not a participant of the inquiry")
)

// InquiryService maneja consultas de producto y sus comentarios.
// Sólo el buyer dueño de la inquiry y el seller dueño del producto
// pueden comentar o leer comentarios.
type InquiryService struct {
	repo core.Repository
	log  *zap.Logger
}

func NewInquiryService(repo core.Repository) *InquiryService {
	return &InquiryService{repo: repo, log: logger.Named("service.inquiry")}
}

// CreateInquiry abre una consulta del buyer sobre un producto.
func (s *InquiryService) CreateInquiry(ctx context.Context, buyerID, productID, title, question string) (*core.Inquiry, error) {
	if title == "" || question == "" {
		return nil, ErrValidation
	}
	if _, err := s.repo.Products().GetByID(ctx, productID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	inq := &core.Inquiry{
		ID:        uuid.NewString(),
		ProductID: productID,
		BuyerID:   buyerID,
		Title:     title,
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Inquiries().Create(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

func (s *InquiryService) GetInquiry(ctx context.Context, id string) (*core.Inquiry, error) {
	inq, err := s.repo.Inquiries().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return inq, nil
}

// authorize verifica que el actor sea participante de la inquiry: el buyer
// que la abrió, o el seller dueño del producto consultado.
func (s *InquiryService) authorize(ctx context.Context, inq *core.Inquiry, actorID, role string) error {
	switch role {
	case core.RoleBuyer:
		if inq.BuyerID != actorID {
			return ErrNotParticipant
		}
	case core.RoleSeller:
		pr, err := s.repo.Products().GetByID(ctx, inq.ProductID)
		if err != nil {
			return err
		}
		if pr.SellerID != actorID {
			return ErrNotParticipant
		}
	default:
		return ErrNotParticipant
	}
	return nil
}

// CommentInput son los datos de un comentario nuevo.
type CommentInput struct {
	Body       string
	Visibility string // public | private, default public
	Status     string // published | draft, default published
}

// CreateComment agrega un comentario a la inquiry indicada. El inquiryID
// viene de la URL: si no corresponde a una inquiry existente o el actor no
// participa de ella, falla sin crear nada.
func (s *InquiryService) CreateComment(ctx context.Context, actorID, role, inquiryID string, in CommentInput) (*core.Comment, error) {
	if in.Body == "" {
		return nil, ErrValidation
	}
	if in.Visibility == "" {
		in.Visibility = "public"
	}
	if in.Status == "" {
		in.Status = "published"
	}
	if in.Visibility != "public" && in.Visibility != "private" {
		return nil, ErrValidation
	}
	if in.Status != "published" && in.Status != "draft" {
		return nil, ErrValidation
	}

	inq, err := s.GetInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, inq, actorID, role); err != nil {
		return nil, err
	}

	c := &core.Comment{
		ID:         uuid.NewString(),
		InquiryID:  inquiryID,
		AuthorID:   actorID,
		AuthorRole: role,
		Body:       in.Body,
		Visibility: in.Visibility,
		Status:     in.Status,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Comments().Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	s.log.Info("comentario creado", logger.ID(c.ID), logger.ActorID(actorID))
	return c, nil
}

// GetComment lee un comentario verificando que pertenezca a la inquiry de
// la URL y que el actor participe de ella.
func (s *InquiryService) GetComment(ctx context.Context, actorID, role, inquiryID, commentID string) (*core.Comment, error) {
	inq, err := s.GetInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, inq, actorID, role); err != nil {
		return nil, err
	}
	c, err := s.repo.Comments().GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	// El comentario debe colgar de la inquiry del path; un id de otra
	// inquiry no es visible por esta ruta.
	if c.InquiryID != inquiryID {
		return nil, ErrCommentNotFound
	}
	return c, nil
}

// ListComments pagina los comentarios de la inquiry.
func (s *InquiryService) ListComments(ctx context.Context, actorID, role, inquiryID string, page core.Page) ([]*core.Comment, core.Pagination, error) {
	inq, err := s.GetInquiry(ctx, inquiryID)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	if err := s.authorize(ctx, inq, actorID, role); err != nil {
		return nil, core.Pagination{}, err
	}
	page = page.Normalize()
	items, total, err := s.repo.Comments().ListByInquiry(ctx, inquiryID, page)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return items, core.NewPagination(page, total), nil
}
