package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAlertItemResponse un producto en condición de alerta de stock.
type StockAlertItemResponse struct {
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	Quantity     int             `json:"quantity"`
	MinStock     int             `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	EntryDate    time.Time       `json:"entry_date"`
	StockDeficit int             `json:"stock_deficit"`
	AlertLevel   string          `json:"alert_level"`
}

// StockAlertListResponse listado de alertas de stock.
type StockAlertListResponse struct {
	Alerts []StockAlertItemResponse `json:"alerts"`
	Total  int                      `json:"total"`
}

// StockAlertSummaryResponse resumen agregado de alertas.
type StockAlertSummaryResponse struct {
	TotalAlerts       int                      `json:"total_alerts"`
	CriticalCount     int                      `json:"critical_count"`
	HighCount         int                      `json:"high_count"`
	MediumCount       int                      `json:"medium_count"`
	TotalDeficitValue decimal.Decimal          `json:"total_deficit_value"`
	TopCritical       []StockAlertItemResponse `json:"top_critical,omitempty"`
}
