package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

var _ repository.StockAlertReadRepository = (*StockAlertRepo)(nil)

// StockAlertRepo consulta de solo lectura de productos en o bajo su stock
// mínimo. El nivel de alerta y el déficit se calculan en dominio.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de consulta de alertas.
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// GetAlerts lista los productos en condición de alerta que satisfacen el
// filtro, ordenados de menor a mayor stock relativo al mínimo.
func (r *StockAlertRepo) GetAlerts(ctx context.Context, filter repository.StockAlertFilter) ([]entity.StockAlertItem, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT p.name, c.name, i.quantity, i.minimum_stock, i.unit_price, i.entry_date
		FROM inventory_by_product i
		JOIN products p ON p.id = i.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE i.quantity <= i.minimum_stock`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.CategoryID != nil {
		sb.WriteString(" AND c.id = " + arg(*filter.CategoryID))
	}
	if filter.CategoryName != "" {
		sb.WriteString(" AND c.name ILIKE " + arg(filter.CategoryName))
	}
	if filter.FromDate != nil {
		sb.WriteString(" AND i.entry_date >= " + arg(*filter.FromDate))
	}
	if filter.ToDate != nil {
		sb.WriteString(" AND i.entry_date <= " + arg(*filter.ToDate))
	}
	sb.WriteString(" ORDER BY (i.quantity::float / NULLIF(i.minimum_stock, 0)) ASC NULLS FIRST, p.name")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("get stock alerts: %w", err)
	}
	defer rows.Close()

	var items []entity.StockAlertItem
	for rows.Next() {
		var item entity.StockAlertItem
		if err := rows.Scan(&item.ProductName, &item.CategoryName, &item.Quantity, &item.MinStock, &item.UnitPrice, &item.EntryDate); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		item.AlertLevel = entity.AlertLevelFor(item.Quantity, item.MinStock)
		item.StockDeficit = entity.DeficitFor(item.Quantity, item.MinStock)
		items = append(items, item)
	}
	return items, rows.Err()
}
