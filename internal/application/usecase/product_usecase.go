package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca aquí:
// se maneja en el inventario por producto.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	units      repository.UnitRepository
	tags       repository.TagRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, units repository.UnitRepository, tags repository.TagRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, units: units, tags: tags}
}

// Create crea un producto validando que la categoría y la unidad existan.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.PurchasePrice, in.SalePrice); err != nil {
		return nil, err
	}
	category, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %d no existe", domain.ErrInvalidInput, in.CategoryID)
	}
	unit, err := uc.units.GetByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, fmt.Errorf("%w: unidad %d no existe", domain.ErrInvalidInput, in.UnitID)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		InternalNotes: strings.TrimSpace(in.InternalNotes),
		CategoryID:    in.CategoryID,
		UnitID:        in.UnitID,
		CategoryName:  category.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListByCategory lista los productos de una categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID int64) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListByPriceRange lista productos con precio de venta dentro del rango.
func (uc *ProductUseCase) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error) {
	if min.IsNegative() || max.LessThan(min) {
		return nil, fmt.Errorf("%w: rango de precios inválido", domain.ErrInvalidInput)
	}
	products, err := uc.repo.ListByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListByTag lista productos con la etiqueta indicada.
func (uc *ProductUseCase) ListByTag(ctx context.Context, tagID int64) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Update actualiza un producto existente.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.PurchasePrice, in.SalePrice); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	category, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %d no existe", domain.ErrInvalidInput, in.CategoryID)
	}
	unit, err := uc.units.GetByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, fmt.Errorf("%w: unidad %d no existe", domain.ErrInvalidInput, in.UnitID)
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Description = strings.TrimSpace(in.Description)
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	product.InternalNotes = strings.TrimSpace(in.InternalNotes)
	product.CategoryID = in.CategoryID
	product.UnitID = in.UnitID
	product.CategoryName = category.Name
	product.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// AddTag asocia una etiqueta a un producto.
func (uc *ProductUseCase) AddTag(ctx context.Context, productID, tagID int64) error {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	tag, err := uc.tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return domain.ErrNotFound
	}
	return uc.repo.AddTag(ctx, productID, tagID)
}

// RemoveTag quita una etiqueta de un producto.
func (uc *ProductUseCase) RemoveTag(ctx context.Context, productID, tagID int64) error {
	return uc.repo.RemoveTag(ctx, productID, tagID)
}

func validateProductInput(name string, purchasePrice, salePrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		InternalNotes: p.InternalNotes,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		UnitID:        p.UnitID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out
}
