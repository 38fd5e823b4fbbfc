package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryReportResponse reporte de inventario por categoría.
type CategoryReportResponse struct {
	ID                   int64           `json:"id"`
	CategoryID           int64           `json:"category_id"`
	CategoryName         string          `json:"category_name"`
	QueryDate            time.Time       `json:"query_date"`
	TotalProducts        int             `json:"total_products"`
	TotalStock           int             `json:"total_stock"`
	TotalInventoryValue  decimal.Decimal `json:"total_inventory_value"`
	LowStockProductCount int             `json:"low_stock_product_count"`
	RiskLevel            string          `json:"risk_level"`
}

// StockAverageReportResponse reporte de promedios de stock por categoría.
type StockAverageReportResponse struct {
	ID                   int64           `json:"id"`
	CategoryID           int64           `json:"category_id"`
	CategoryName         string          `json:"category_name"`
	QueryDate            time.Time       `json:"query_date"`
	RealAverageStock     decimal.Decimal `json:"real_average_stock"`
	AverageMinimumStock  decimal.Decimal `json:"average_minimum_stock"`
	TotalProducts        int             `json:"total_products"`
	LowStockProductCount int             `json:"low_stock_product_count"`
	LowStockPercentage   decimal.Decimal `json:"low_stock_percentage"`
	InventoryHealth      string          `json:"inventory_health"`
	AttentionPriority    string          `json:"attention_priority"`
	EfficiencyScore      int             `json:"efficiency_score"`
	Recommendations      []string        `json:"recommendations,omitempty"`
}
