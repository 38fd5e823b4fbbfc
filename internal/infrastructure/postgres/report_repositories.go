package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

var (
	_ repository.CategoryReportRepository     = (*CategoryReportRepo)(nil)
	_ repository.StockAverageReportRepository = (*StockAverageReportRepo)(nil)
)

// CategoryReportRepo persistencia de snapshots de inventario por categoría.
// Solo insert y select: los reportes nunca se actualizan ni se borran.
type CategoryReportRepo struct {
	q Querier
}

// NewCategoryReportRepository construye el adaptador.
func NewCategoryReportRepository(q Querier) *CategoryReportRepo {
	return &CategoryReportRepo{q: q}
}

// Create inserta el snapshot y asigna su id generado.
func (r *CategoryReportRepo) Create(ctx context.Context, report *entity.CategoryReport) error {
	query := `
		INSERT INTO category_reports (category_id, category_name, query_date, total_products, total_stock, total_inventory_value, low_stock_product_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		report.CategoryID, report.CategoryName, report.QueryDate, report.TotalProducts,
		report.TotalStock, report.TotalInventoryValue, report.LowStockProductCount,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("insert category report: %w", err)
	}
	return nil
}

// GetByID obtiene un snapshot por id.
func (r *CategoryReportRepo) GetByID(ctx context.Context, id int64) (*entity.CategoryReport, error) {
	query := `
		SELECT id, category_id, category_name, query_date, total_products, total_stock, total_inventory_value, low_stock_product_count
		FROM category_reports WHERE id = $1`
	var rep entity.CategoryReport
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rep.ID, &rep.CategoryID, &rep.CategoryName, &rep.QueryDate, &rep.TotalProducts,
		&rep.TotalStock, &rep.TotalInventoryValue, &rep.LowStockProductCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category report: %w", err)
	}
	return &rep, nil
}

// List lista snapshots paginados, más recientes primero.
func (r *CategoryReportRepo) List(ctx context.Context, limit, offset int) ([]*entity.CategoryReport, error) {
	query := `
		SELECT id, category_id, category_name, query_date, total_products, total_stock, total_inventory_value, low_stock_product_count
		FROM category_reports ORDER BY query_date DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListByDate lista los snapshots generados un día concreto.
func (r *CategoryReportRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.CategoryReport, error) {
	query := `
		SELECT id, category_id, category_name, query_date, total_products, total_stock, total_inventory_value, low_stock_product_count
		FROM category_reports WHERE query_date::date = $1::date ORDER BY query_date DESC`
	return r.list(ctx, query, date)
}

func (r *CategoryReportRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CategoryReport, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list category reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.CategoryReport
	for rows.Next() {
		var rep entity.CategoryReport
		if err := rows.Scan(
			&rep.ID, &rep.CategoryID, &rep.CategoryName, &rep.QueryDate, &rep.TotalProducts,
			&rep.TotalStock, &rep.TotalInventoryValue, &rep.LowStockProductCount,
		); err != nil {
			return nil, fmt.Errorf("scan category report: %w", err)
		}
		reports = append(reports, &rep)
	}
	return reports, rows.Err()
}

// StockAverageReportRepo persistencia de snapshots de promedios de stock.
type StockAverageReportRepo struct {
	q Querier
}

// NewStockAverageReportRepository construye el adaptador.
func NewStockAverageReportRepository(q Querier) *StockAverageReportRepo {
	return &StockAverageReportRepo{q: q}
}

// Create inserta el snapshot y asigna su id generado.
func (r *StockAverageReportRepo) Create(ctx context.Context, report *entity.StockAverageReport) error {
	query := `
		INSERT INTO stock_average_reports (category_id, category_name, query_date, real_average_stock, average_minimum_stock, total_products, low_stock_product_count, low_stock_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		report.CategoryID, report.CategoryName, report.QueryDate, report.RealAverageStock,
		report.AverageMinimumStock, report.TotalProducts, report.LowStockProductCount, report.LowStockPercentage,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("insert stock average report: %w", err)
	}
	return nil
}

// GetByID obtiene un snapshot por id.
func (r *StockAverageReportRepo) GetByID(ctx context.Context, id int64) (*entity.StockAverageReport, error) {
	query := `
		SELECT id, category_id, category_name, query_date, real_average_stock, average_minimum_stock, total_products, low_stock_product_count, low_stock_percentage
		FROM stock_average_reports WHERE id = $1`
	var rep entity.StockAverageReport
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rep.ID, &rep.CategoryID, &rep.CategoryName, &rep.QueryDate, &rep.RealAverageStock,
		&rep.AverageMinimumStock, &rep.TotalProducts, &rep.LowStockProductCount, &rep.LowStockPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock average report: %w", err)
	}
	return &rep, nil
}

// List lista snapshots paginados, más recientes primero.
func (r *StockAverageReportRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockAverageReport, error) {
	query := `
		SELECT id, category_id, category_name, query_date, real_average_stock, average_minimum_stock, total_products, low_stock_product_count, low_stock_percentage
		FROM stock_average_reports ORDER BY query_date DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListByDate lista los snapshots generados un día concreto.
func (r *StockAverageReportRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.StockAverageReport, error) {
	query := `
		SELECT id, category_id, category_name, query_date, real_average_stock, average_minimum_stock, total_products, low_stock_product_count, low_stock_percentage
		FROM stock_average_reports WHERE query_date::date = $1::date ORDER BY query_date DESC`
	return r.list(ctx, query, date)
}

func (r *StockAverageReportRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockAverageReport, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock average reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.StockAverageReport
	for rows.Next() {
		var rep entity.StockAverageReport
		if err := rows.Scan(
			&rep.ID, &rep.CategoryID, &rep.CategoryName, &rep.QueryDate, &rep.RealAverageStock,
			&rep.AverageMinimumStock, &rep.TotalProducts, &rep.LowStockProductCount, &rep.LowStockPercentage,
		); err != nil {
			return nil, fmt.Errorf("scan stock average report: %w", err)
		}
		reports = append(reports, &rep)
	}
	return reports, rows.Err()
}
