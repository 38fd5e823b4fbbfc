package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryByProductRequest body para POST /api/v1/inventory/products.
type CreateInventoryByProductRequest struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinimumStock int             `json:"minimum_stock"`
	EntryDate    *time.Time      `json:"entry_date,omitempty"`
}

// UpdateInventoryByProductRequest body para PATCH /api/v1/inventory/products/{id}.
// Los campos ausentes no se modifican; un null explícito es rechazado para
// campos obligatorios.
type UpdateInventoryByProductRequest struct {
	Quantity     Patch[int]             `json:"quantity"`
	UnitPrice    Patch[decimal.Decimal] `json:"unit_price"`
	MinimumStock Patch[int]             `json:"minimum_stock"`
	EntryDate    Patch[time.Time]       `json:"entry_date"`
}

// IncreaseStockRequest body para POST /api/v1/inventory/products/{id}/increase.
type IncreaseStockRequest struct {
	Quantity int `json:"quantity"`
}

// InventoryByProductResponse registro de inventario por producto.
type InventoryByProductResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinimumStock int             `json:"minimum_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
	LowStock     bool            `json:"low_stock"`
	EntryDate    time.Time       `json:"entry_date"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateInventoryByBatchRequest body para POST /api/v1/inventory/batches.
type CreateInventoryByBatchRequest struct {
	Supplier  string          `json:"supplier"`
	ProductID int64           `json:"product_id"`
	EntryDate *time.Time      `json:"entry_date,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit,omitempty"`
}

// InventoryByBatchResponse registro de inventario por lote.
type InventoryByBatchResponse struct {
	ID        int64           `json:"id"`
	Supplier  string          `json:"supplier"`
	ProductID int64           `json:"product_id"`
	EntryDate time.Time       `json:"entry_date"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit,omitempty"`
	Total     decimal.Decimal `json:"total"`
}
