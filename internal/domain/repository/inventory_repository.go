package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// CategoryInventoryStats agregados de inventario de una categoría, insumo de CategoryReport.
type CategoryInventoryStats struct {
	CategoryName  string
	TotalProducts int
	TotalStock    int
	TotalValue    decimal.Decimal
	LowStockCount int
}

// CategoryStockAverages promedios de stock de una categoría, insumo de StockAverageReport.
type CategoryStockAverages struct {
	CategoryName  string
	RealAverage   decimal.Decimal
	MinimumAvg    decimal.Decimal
	TotalProducts int
	LowStockCount int
}

// InventoryByProductRepository puerto de persistencia del inventario por producto.
// GetByProductForUpdate bloquea la fila (SELECT FOR UPDATE) y debe usarse solo
// dentro de una transacción del TxRunner.
type InventoryByProductRepository interface {
	Create(ctx context.Context, inv *entity.InventoryByProduct) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryByProduct, error)
	GetByProduct(ctx context.Context, productID int64) (*entity.InventoryByProduct, error)
	GetByProductForUpdate(ctx context.Context, productID int64) (*entity.InventoryByProduct, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryByProduct, error)
	Update(ctx context.Context, inv *entity.InventoryByProduct) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	GetCategoryStats(ctx context.Context, categoryID int64) (*CategoryInventoryStats, error)
	GetCategoryAverages(ctx context.Context, categoryID int64) (*CategoryStockAverages, error)
}

// InventoryByBatchRepository puerto de persistencia de lotes de entrada.
type InventoryByBatchRepository interface {
	Create(ctx context.Context, batch *entity.InventoryByBatch) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryByBatch, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryByBatch, error)
	Delete(ctx context.Context, id int64) error
}
