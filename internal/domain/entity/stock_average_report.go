package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain"
)

// StockAverageReport snapshot inmutable de estadísticas de stock promedio de
// una categoría: promedio real, promedio de mínimos y proporción de productos
// bajo stock. Nunca se actualiza después de creado.
type StockAverageReport struct {
	ID                   int64
	CategoryID           int64
	CategoryName         string
	QueryDate            time.Time
	RealAverageStock     decimal.Decimal
	AverageMinimumStock  decimal.Decimal
	TotalProducts        int
	LowStockProductCount int
	LowStockPercentage   decimal.Decimal // 0–100
}

// NewStockAverageReport factory con las validaciones de dominio del snapshot.
func NewStockAverageReport(categoryID int64, categoryName string, queryDate time.Time, realAvgStock, avgMinStock decimal.Decimal, totalProducts, lowStockCount int, lowStockPct decimal.Decimal) (*StockAverageReport, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("%w: categoryId debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(categoryName) == "" {
		return nil, fmt.Errorf("%w: categoryName no puede ser vacío", domain.ErrInvalidInput)
	}
	if queryDate.IsZero() {
		return nil, fmt.Errorf("%w: queryDate debe ser una fecha válida", domain.ErrInvalidInput)
	}
	if realAvgStock.IsNegative() {
		return nil, fmt.Errorf("%w: realAverageStock no puede ser negativo", domain.ErrInvalidInput)
	}
	if avgMinStock.IsNegative() {
		return nil, fmt.Errorf("%w: averageMinimumStock no puede ser negativo", domain.ErrInvalidInput)
	}
	if totalProducts <= 0 {
		return nil, fmt.Errorf("%w: totalProducts debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if lowStockCount < 0 {
		return nil, fmt.Errorf("%w: lowStockProductCount no puede ser negativo", domain.ErrInvalidInput)
	}
	if lowStockCount > totalProducts {
		return nil, fmt.Errorf("%w: lowStockProductCount no puede superar totalProducts", domain.ErrInvalidInput)
	}
	if lowStockPct.IsNegative() || lowStockPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: lowStockPercentage debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return &StockAverageReport{
		CategoryID:           categoryID,
		CategoryName:         strings.TrimSpace(categoryName),
		QueryDate:            queryDate,
		RealAverageStock:     realAvgStock,
		AverageMinimumStock:  avgMinStock,
		TotalProducts:        totalProducts,
		LowStockProductCount: lowStockCount,
		LowStockPercentage:   lowStockPct,
	}, nil
}

// AverageToMinimumRatio relación stock promedio / stock mínimo promedio (0 si el mínimo es 0).
func (r *StockAverageReport) AverageToMinimumRatio() decimal.Decimal {
	if !r.AverageMinimumStock.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return r.RealAverageStock.Div(r.AverageMinimumStock)
}

// HasAdequateStock stock promedio en al menos 1.5x el mínimo promedio.
func (r *StockAverageReport) HasAdequateStock() bool {
	threshold := r.AverageMinimumStock.Mul(decimal.NewFromFloat(1.5))
	return r.RealAverageStock.GreaterThanOrEqual(threshold)
}

// NeedsUrgentRestock más del 60% de los productos bajo stock mínimo.
func (r *StockAverageReport) NeedsUrgentRestock() bool {
	return r.LowStockPercentage.GreaterThan(decimal.NewFromInt(60))
}

// InventoryHealth clasifica la salud del inventario de la categoría.
func (r *StockAverageReport) InventoryHealth() string {
	switch {
	case r.NeedsUrgentRestock():
		return "Crítica"
	case r.LowStockPercentage.GreaterThan(decimal.NewFromInt(40)):
		return "Deficiente"
	case r.LowStockPercentage.GreaterThan(decimal.NewFromInt(20)):
		return "Regular"
	case r.HasAdequateStock():
		return "Óptima"
	default:
		return "Aceptable"
	}
}

// AttentionPriority prioridad de atención sugerida para la categoría.
func (r *StockAverageReport) AttentionPriority() string {
	if r.NeedsUrgentRestock() {
		return "Alta"
	}
	if r.LowStockPercentage.GreaterThan(decimal.NewFromInt(30)) ||
		r.AverageToMinimumRatio().LessThan(decimal.NewFromFloat(1.2)) {
		return "Media"
	}
	return "Baja"
}

// EfficiencyScore puntaje 0–100 de eficiencia del inventario: parte de 100,
// penaliza productos bajo stock y promedios por debajo del mínimo, bonifica
// el stock óptimo.
func (r *StockAverageReport) EfficiencyScore() int {
	score := 100

	pctPenalty, _ := r.LowStockPercentage.Mul(decimal.NewFromFloat(0.5)).Float64()
	score -= int(pctPenalty)

	if r.RealAverageStock.LessThan(r.AverageMinimumStock) {
		score -= 30
	} else if ratio := r.AverageToMinimumRatio(); ratio.LessThan(decimal.NewFromFloat(1.5)) {
		gap, _ := decimal.NewFromFloat(1.5).Sub(ratio).Mul(decimal.NewFromInt(20)).Float64()
		score -= int(gap)
	}

	if r.HasAdequateStock() && r.LowStockPercentage.LessThan(decimal.NewFromInt(10)) {
		score += 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Recommendations recomendaciones derivadas del análisis de stock.
func (r *StockAverageReport) Recommendations() []string {
	var recs []string
	if r.NeedsUrgentRestock() {
		recs = append(recs, "Reabastecimiento urgente requerido - más del 60% de productos con stock bajo")
	}
	if r.RealAverageStock.LessThan(r.AverageMinimumStock) {
		recs = append(recs, "Stock promedio inferior al mínimo recomendado")
	}
	if r.AverageToMinimumRatio().LessThan(decimal.NewFromFloat(1.5)) {
		recs = append(recs, "Considerar aumentar niveles de stock de seguridad")
	}
	if r.HasAdequateStock() {
		recs = append(recs, "Niveles de stock adecuados - mantener política actual")
	}
	if r.LowStockPercentage.IsZero() {
		recs = append(recs, "Todos los productos con stock adecuado - excelente gestión")
	}
	return recs
}
