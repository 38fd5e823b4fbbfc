package repository

import (
	"context"
	"time"

	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// StockAlertFilter filtros opcionales para la consulta de alertas.
type StockAlertFilter struct {
	CategoryID   *int64
	CategoryName string
	FromDate     *time.Time
	ToDate       *time.Time
}

// StockAlertReadRepository consulta de solo lectura de productos en o bajo su
// stock mínimo. Camino de lectura independiente del orquestador de ventas.
type StockAlertReadRepository interface {
	GetAlerts(ctx context.Context, filter StockAlertFilter) ([]entity.StockAlertItem, error)
}
