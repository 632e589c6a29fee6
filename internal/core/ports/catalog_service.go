package ports

import (
	"context"

	"github.com/babycare/shop-api/internal/core/domain"
)

// ProductInput carries the fields of a new product.
type ProductInput struct {
	Title       string
	Image       string
	Category    string
	Price       float64
	PrevPrice   float64
	IsFlashSale bool
	Rating      float64
	Description string
}

type CategoryInput struct {
	Name        string
	Image       string
	Description string
}

// CatalogService covers products and categories.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	SearchByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
}
