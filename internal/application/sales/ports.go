package sales

import (
	"context"

	"github.com/lot-pos/lot-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios enlazados a una misma transacción.
type TxRepos struct {
	Sales     repository.SaleRepository
	Inventory repository.InventoryByProductRepository
	Products  repository.ProductRepository
	Combos    repository.ComboRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn retorna error la
// transacción se revierte, de lo contrario se confirma.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// StockCache cachea consultas de verificación de stock. Una implementación
// nula es válida cuando Redis no está configurado.
type StockCache interface {
	Get(ctx context.Context, productID int64) (*CachedStock, bool)
	Set(ctx context.Context, productID int64, stock CachedStock)
	Invalidate(ctx context.Context, productIDs ...int64)
}

// CachedStock snapshot de stock cacheado para check-stock.
type CachedStock struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
}
