package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain"
)

// CategoryReport snapshot inmutable del estado de inventario de una categoría
// en un instante dado. Registro puramente aditivo: nunca se actualiza.
type CategoryReport struct {
	ID                   int64
	CategoryID           int64
	CategoryName         string
	QueryDate            time.Time
	TotalProducts        int
	TotalStock           int
	TotalInventoryValue  decimal.Decimal
	LowStockProductCount int
}

// NewCategoryReport factory con validaciones de dominio: ids positivos, nombre
// no vacío, fecha válida, conteos no negativos y consistentes entre sí.
func NewCategoryReport(categoryID int64, categoryName string, queryDate time.Time, totalProducts, totalStock int, totalValue decimal.Decimal, lowStockCount int) (*CategoryReport, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("%w: categoryId debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(categoryName) == "" {
		return nil, fmt.Errorf("%w: categoryName no puede ser vacío", domain.ErrInvalidInput)
	}
	if queryDate.IsZero() {
		return nil, fmt.Errorf("%w: queryDate debe ser una fecha válida", domain.ErrInvalidInput)
	}
	if totalProducts < 0 {
		return nil, fmt.Errorf("%w: totalProducts no puede ser negativo", domain.ErrInvalidInput)
	}
	if totalStock < 0 {
		return nil, fmt.Errorf("%w: totalStock no puede ser negativo", domain.ErrInvalidInput)
	}
	if totalValue.IsNegative() {
		return nil, fmt.Errorf("%w: totalInventoryValue no puede ser negativo", domain.ErrInvalidInput)
	}
	if lowStockCount < 0 {
		return nil, fmt.Errorf("%w: lowStockProductCount no puede ser negativo", domain.ErrInvalidInput)
	}
	if lowStockCount > totalProducts {
		return nil, fmt.Errorf("%w: lowStockProductCount no puede superar totalProducts", domain.ErrInvalidInput)
	}
	return &CategoryReport{
		CategoryID:           categoryID,
		CategoryName:         strings.TrimSpace(categoryName),
		QueryDate:            queryDate,
		TotalProducts:        totalProducts,
		TotalStock:           totalStock,
		TotalInventoryValue:  totalValue,
		LowStockProductCount: lowStockCount,
	}, nil
}

// LowStockRatio proporción de productos bajo stock mínimo (0 si no hay productos).
func (r *CategoryReport) LowStockRatio() float64 {
	if r.TotalProducts == 0 {
		return 0
	}
	return float64(r.LowStockProductCount) / float64(r.TotalProducts)
}

// RiskLevel nivel de riesgo de la categoría según la proporción de productos
// bajo stock mínimo.
func (r *CategoryReport) RiskLevel() string {
	ratio := r.LowStockRatio()
	switch {
	case ratio > 0.6:
		return "Crítico"
	case ratio > 0.4:
		return "Alto"
	case ratio > 0.2:
		return "Medio"
	default:
		return "Bajo"
	}
}
