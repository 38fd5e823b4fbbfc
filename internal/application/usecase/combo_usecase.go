package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

// ComboUseCase administración de combos y sus componentes.
type ComboUseCase struct {
	repo     repository.ComboRepository
	products repository.ProductRepository
}

// NewComboUseCase construye el caso de uso.
func NewComboUseCase(repo repository.ComboRepository, products repository.ProductRepository) *ComboUseCase {
	return &ComboUseCase{repo: repo, products: products}
}

// Create crea un combo con sus componentes. Todos los productos deben existir
// y las cantidades ser positivas.
func (uc *ComboUseCase) Create(ctx context.Context, in dto.CreateComboRequest) (*dto.ComboResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el combo debe tener al menos un producto", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	combo := &entity.Combo{Name: name, CreatedAt: now, UpdatedAt: now}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
		}
		product, err := uc.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, item.ProductID)
		}
		combo.AddItem(item.ProductID, item.Quantity)
	}

	if err := uc.repo.Create(ctx, combo); err != nil {
		return nil, err
	}
	created, err := uc.repo.GetWithItems(ctx, combo.ID)
	if err != nil {
		return nil, err
	}
	return toComboResponse(created), nil
}

// GetByID obtiene un combo con sus componentes.
func (uc *ComboUseCase) GetByID(ctx context.Context, id int64) (*dto.ComboResponse, error) {
	combo, err := uc.repo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, nil
	}
	return toComboResponse(combo), nil
}

// List lista todos los combos.
func (uc *ComboUseCase) List(ctx context.Context) ([]dto.ComboResponse, error) {
	combos, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComboResponse, 0, len(combos))
	for _, c := range combos {
		out = append(out, *toComboResponse(c))
	}
	return out, nil
}

// Rename cambia el nombre de un combo.
func (uc *ComboUseCase) Rename(ctx context.Context, id int64, in dto.UpdateComboNameRequest) (*dto.ComboResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	combo, err := uc.repo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, nil
	}
	if err := uc.repo.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	combo.Rename(name)
	return toComboResponse(combo), nil
}

// AddItem agrega (o reemplaza la cantidad de) un producto en el combo.
func (uc *ComboUseCase) AddItem(ctx context.Context, comboID int64, in dto.ComboItemRequest) (*dto.ComboResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	combo, err := uc.repo.GetWithItems(ctx, comboID)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, nil
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, in.ProductID)
	}

	if err := uc.repo.AddItem(ctx, &entity.ComboItem{
		ComboID:   comboID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	}); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, comboID)
}

// RemoveItem quita un producto del combo. El combo puede quedar vacío; una
// venta sobre un combo vacío se rechaza en el orquestador de ventas.
func (uc *ComboUseCase) RemoveItem(ctx context.Context, comboID, productID int64) (*dto.ComboResponse, error) {
	combo, err := uc.repo.GetWithItems(ctx, comboID)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, nil
	}
	if err := uc.repo.RemoveItem(ctx, comboID, productID); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, comboID)
}

// Delete elimina un combo y sus componentes.
func (uc *ComboUseCase) Delete(ctx context.Context, id int64) error {
	combo, err := uc.repo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if combo == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toComboResponse(c *entity.Combo) *dto.ComboResponse {
	items := make([]dto.ComboItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, dto.ComboItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}
	return &dto.ComboResponse{
		ID:        c.ID,
		Name:      c.Name,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
