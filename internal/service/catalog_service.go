package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/catalog"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

// CatalogService serves the public category and merchandise listings
type CatalogService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repository.Repositories, logger *zap.Logger) *CatalogService {
	return &CatalogService{repos: repos, logger: logger}
}

// Categories lists visible categories in sort-token order
func (s *CatalogService) Categories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repos.Category.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(cats), nil
}

// SearchCategories matches every token of word against group and subcategory labels
func (s *CatalogService) SearchCategories(ctx context.Context, word string) ([]CategoryResponse, error) {
	if strings.TrimSpace(word) == "" {
		return nil, &errors.ErrValidation{Message: "palabra is required", Fields: map[string]string{"palabra": "required"}}
	}
	cats, err := s.repos.Category.SearchVisible(ctx, word)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(cats), nil
}

func toCategoryResponses(cats []*domain.Category) []CategoryResponse {
	catalog.SortCategories(cats)
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryResponse{
			ID:          c.ID,
			Grupo:       c.Group,
			Grcat:       c.Subcategory,
			Imagen:      c.Image,
			Catcat:      c.SortToken,
			Visibilidad: c.Visibility,
		})
	}
	return out
}

// Merchandise lists visible merchandise with retail prices computed from current cost, tax and margin
func (s *CatalogService) Merchandise(ctx context.Context, filter domain.MerchandiseFilter) ([]MerchandiseResponse, error) {
	items, err := s.repos.Merchandise.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]MerchandiseResponse, 0, len(items))
	for _, m := range items {
		out = append(out, MerchandiseResponse{
			ID:               m.ID,
			CodigoInt:        m.Code,
			DescripcionCorta: m.ShortDescription,
			Imagen1:          m.Image1,
			Imagearray:       m.ImageArray,
			Costosiniva:      m.CostExTax,
			Iva:              m.TaxPercent,
			Margen:           m.MarginPercent,
			Grupo:            m.Group,
			Fechaordengrupo:  m.GroupOrder,
			Precio:           catalog.RetailPriceUnits(m.CostExTax, m.TaxPercent, m.MarginPercent),
		})
	}
	s.logger.Debug("Merchandise listed", zap.Int("count", len(out)))
	return out, nil
}
