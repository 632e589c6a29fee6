package ports

import (
	"context"

	"github.com/babycare/shop-api/internal/core/domain"
)

// ProductFilter narrows product listings. Zero value lists everything.
type ProductFilter struct {
	// Category is matched case-insensitively as a substring.
	Category string
}

// ProductPatch holds the fields of a partial product update; nil fields are
// left untouched.
type ProductPatch struct {
	Title       *string
	Image       *string
	Category    *string
	Price       *float64
	PrevPrice   *float64
	IsFlashSale *bool
	Rating      *float64
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Image == nil && p.Category == nil && p.Price == nil &&
		p.PrevPrice == nil && p.IsFlashSale == nil && p.Rating == nil && p.Description == nil
}

// ProductRepository is the product collection. Malformed ids yield
// domain.ErrInvalidID, missing documents domain.ErrProductNotFound.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
}
