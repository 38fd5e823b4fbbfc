package repository

import (
	"context"
	"time"

	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// CategoryReportRepository puerto de persistencia para snapshots de categoría.
// Solo inserción y lectura: los reportes nunca se actualizan.
type CategoryReportRepository interface {
	Create(ctx context.Context, report *entity.CategoryReport) error
	GetByID(ctx context.Context, id int64) (*entity.CategoryReport, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CategoryReport, error)
	ListByDate(ctx context.Context, date time.Time) ([]*entity.CategoryReport, error)
}

// StockAverageReportRepository puerto de persistencia para snapshots de stock promedio.
type StockAverageReportRepository interface {
	Create(ctx context.Context, report *entity.StockAverageReport) error
	GetByID(ctx context.Context, id int64) (*entity.StockAverageReport, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockAverageReport, error)
	ListByDate(ctx context.Context, date time.Time) ([]*entity.StockAverageReport, error)
}
