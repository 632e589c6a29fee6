package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

type CatalogService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, categories ports.CategoryRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx, ports.ProductFilter{})
}

// SearchByCategory lists products whose category contains the given text,
// ignoring case. A blank category lists everything.
func (s *CatalogService) SearchByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.List(ctx, ports.ProductFilter{Category: strings.TrimSpace(category)})
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	p, err := s.products.Create(ctx, &domain.Product{
		Title:       in.Title,
		Image:       in.Image,
		Category:    in.Category,
		Price:       in.Price,
		PrevPrice:   in.PrevPrice,
		IsFlashSale: in.IsFlashSale,
		Rating:      in.Rating,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info().Str("product_id", p.ID).Str("category", p.Category).Msg("product created")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	p, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", p.ID).Msg("product updated")
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	c, err := s.categories.Create(ctx, &domain.Category{
		Name:        strings.TrimSpace(in.Name),
		Image:       in.Image,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info().Str("category", c.Name).Msg("category created")
	return c, nil
}
