package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los Get* devuelven (nil, nil) cuando el recurso no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error)
	ListByTag(ctx context.Context, tagID int64) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	AddTag(ctx context.Context, productID, tagID int64) error
	RemoveTag(ctx context.Context, productID, tagID int64) error
}
