package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/v1/sales. Cuando combo_id está
// presente la venta se procesa como venta de combo y product_id se ignora.
type CreateSaleRequest struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CustomerName string          `json:"customer_name"`
	Notes        string          `json:"notes,omitempty"`
	ComboID      *int64          `json:"combo_id,omitempty"`
}

// SaleResponse representación de una venta registrada.
type SaleResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name,omitempty"`
	SaleDate     time.Time       `json:"sale_date"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CustomerName string          `json:"customer_name"`
	Notes        string          `json:"notes,omitempty"`
	ComboID      *int64          `json:"combo_id,omitempty"`
	ComboName    string          `json:"combo_name,omitempty"`
	SaleType     string          `json:"sale_type"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Page  PageResponse   `json:"page"`
}

// CheckStockResponse resultado de GET /api/v1/sales/check-stock/{productId}.
type CheckStockResponse struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
	Status       string `json:"status"`
	CanSell      bool   `json:"can_sell"`
}
