package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/application/sales"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

// InventoryUseCase administración del inventario por producto y por lote.
// El descuento de stock por ventas no pasa por aquí: lo hace el orquestador
// de ventas dentro de su transacción. Toda mutación de cantidades invalida
// el cache de check-stock del producto afectado.
type InventoryUseCase struct {
	byProduct repository.InventoryByProductRepository
	byBatch   repository.InventoryByBatchRepository
	products  repository.ProductRepository
	cache     sales.StockCache
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(byProduct repository.InventoryByProductRepository, byBatch repository.InventoryByBatchRepository, products repository.ProductRepository, cache sales.StockCache) *InventoryUseCase {
	return &InventoryUseCase{byProduct: byProduct, byBatch: byBatch, products: products, cache: cache}
}

// CreateByProduct crea el registro de inventario de un producto. Un producto
// tiene a lo sumo un registro.
func (uc *InventoryUseCase) CreateByProduct(ctx context.Context, in dto.CreateInventoryByProductRequest) (*dto.InventoryByProductResponse, error) {
	if in.Quantity < 0 || in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: quantity y minimum_stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, in.ProductID)
	}
	existing, err := uc.byProduct.GetByProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	entryDate := time.Now().UTC()
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}
	inv := &entity.InventoryByProduct{
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		MinimumStock: in.MinimumStock,
		EntryDate:    entryDate,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := uc.byProduct.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryByProductResponse(inv, product.Name), nil
}

// GetByProductID obtiene el registro de inventario por id de registro.
func (uc *InventoryUseCase) GetByProductInventoryID(ctx context.Context, id int64) (*dto.InventoryByProductResponse, error) {
	inv, err := uc.byProduct.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	return uc.withProductName(ctx, inv)
}

// GetByProduct obtiene el registro de inventario de un producto.
func (uc *InventoryUseCase) GetByProduct(ctx context.Context, productID int64) (*dto.InventoryByProductResponse, error) {
	inv, err := uc.byProduct.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	return uc.withProductName(ctx, inv)
}

// ListByProduct lista los registros de inventario por producto.
func (uc *InventoryUseCase) ListByProduct(ctx context.Context, page dto.PageRequest) ([]dto.InventoryByProductResponse, error) {
	page.DefaultPage()
	items, err := uc.byProduct.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryByProductResponse, 0, len(items))
	for _, inv := range items {
		resp, err := uc.withProductName(ctx, inv)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// UpdateByProduct actualización parcial del registro de inventario. Un campo
// ausente no se modifica; null explícito se rechaza porque todos los campos
// son obligatorios en el registro.
func (uc *InventoryUseCase) UpdateByProduct(ctx context.Context, id int64, in dto.UpdateInventoryByProductRequest) (*dto.InventoryByProductResponse, error) {
	inv, err := uc.byProduct.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}

	if in.Quantity.Set {
		if in.Quantity.Null || in.Quantity.Value < 0 {
			return nil, fmt.Errorf("%w: quantity debe ser un entero no negativo", domain.ErrInvalidInput)
		}
		inv.Quantity = in.Quantity.Value
	}
	if in.UnitPrice.Set {
		if in.UnitPrice.Null || in.UnitPrice.Value.IsNegative() {
			return nil, fmt.Errorf("%w: unit_price debe ser un valor no negativo", domain.ErrInvalidInput)
		}
		inv.UnitPrice = in.UnitPrice.Value
	}
	if in.MinimumStock.Set {
		if in.MinimumStock.Null || in.MinimumStock.Value < 0 {
			return nil, fmt.Errorf("%w: minimum_stock debe ser un entero no negativo", domain.ErrInvalidInput)
		}
		inv.MinimumStock = in.MinimumStock.Value
	}
	if in.EntryDate.Set {
		if in.EntryDate.Null || in.EntryDate.Value.IsZero() {
			return nil, fmt.Errorf("%w: entry_date debe ser una fecha válida", domain.ErrInvalidInput)
		}
		inv.EntryDate = in.EntryDate.Value
	}
	inv.UpdatedAt = time.Now().UTC()

	if err := uc.byProduct.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, inv.ProductID)
	return uc.withProductName(ctx, inv)
}

// IncreaseStock suma unidades al registro de inventario. Las entradas de
// mercadería pasan por aquí; los descuentos solo por el orquestador de ventas.
func (uc *InventoryUseCase) IncreaseStock(ctx context.Context, id int64, quantity int) (*dto.InventoryByProductResponse, error) {
	inv, err := uc.byProduct.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	if err := inv.IncreaseStock(quantity); err != nil {
		return nil, err
	}
	inv.UpdatedAt = time.Now().UTC()
	if err := uc.byProduct.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, inv.ProductID)
	return uc.withProductName(ctx, inv)
}

// DeleteByProduct elimina un registro de inventario por producto.
func (uc *InventoryUseCase) DeleteByProduct(ctx context.Context, id int64) error {
	inv, err := uc.byProduct.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.byProduct.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, inv.ProductID)
	return nil
}

// CreateByBatch registra una entrada de inventario por lote.
func (uc *InventoryUseCase) CreateByBatch(ctx context.Context, in dto.CreateInventoryByBatchRequest) (*dto.InventoryByBatchResponse, error) {
	if strings.TrimSpace(in.Supplier) == "" {
		return nil, fmt.Errorf("%w: supplier es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, in.ProductID)
	}

	entryDate := time.Now().UTC()
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}
	batch := &entity.InventoryByBatch{
		Supplier:  strings.TrimSpace(in.Supplier),
		ProductID: in.ProductID,
		EntryDate: entryDate,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Unit:      strings.TrimSpace(in.Unit),
	}
	if err := uc.byBatch.Create(ctx, batch); err != nil {
		return nil, err
	}
	return toInventoryByBatchResponse(batch), nil
}

// GetBatch obtiene un lote por id.
func (uc *InventoryUseCase) GetBatch(ctx context.Context, id int64) (*dto.InventoryByBatchResponse, error) {
	batch, err := uc.byBatch.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toInventoryByBatchResponse(batch), nil
}

// ListBatches lista lotes paginados.
func (uc *InventoryUseCase) ListBatches(ctx context.Context, page dto.PageRequest) ([]dto.InventoryByBatchResponse, error) {
	page.DefaultPage()
	batches, err := uc.byBatch.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryByBatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, *toInventoryByBatchResponse(b))
	}
	return out, nil
}

// DeleteBatch elimina un lote.
func (uc *InventoryUseCase) DeleteBatch(ctx context.Context, id int64) error {
	batch, err := uc.byBatch.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	return uc.byBatch.Delete(ctx, id)
}

func (uc *InventoryUseCase) withProductName(ctx context.Context, inv *entity.InventoryByProduct) (*dto.InventoryByProductResponse, error) {
	name := ""
	product, err := uc.products.GetByID(ctx, inv.ProductID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		name = product.Name
	}
	return toInventoryByProductResponse(inv, name), nil
}

func toInventoryByProductResponse(inv *entity.InventoryByProduct, productName string) *dto.InventoryByProductResponse {
	return &dto.InventoryByProductResponse{
		ID:           inv.ID,
		ProductID:    inv.ProductID,
		ProductName:  productName,
		Quantity:     inv.Quantity,
		UnitPrice:    inv.UnitPrice,
		MinimumStock: inv.MinimumStock,
		TotalValue:   inv.TotalValue(),
		LowStock:     inv.IsLowStock(),
		EntryDate:    inv.EntryDate,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func toInventoryByBatchResponse(b *entity.InventoryByBatch) *dto.InventoryByBatchResponse {
	return &dto.InventoryByBatchResponse{
		ID:        b.ID,
		Supplier:  b.Supplier,
		ProductID: b.ProductID,
		EntryDate: b.EntryDate,
		Quantity:  b.Quantity,
		UnitPrice: b.UnitPrice,
		Unit:      b.Unit,
		Total:     b.Total(),
	}
}
