package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleSelect = `
	SELECT id, product_id, product_name, category_name, sale_date, quantity, unit_price,
	       customer_name, notes, combo_id, combo_name
	FROM sales`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las ventas son inmutables: solo insert, select y delete.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta y asigna su id generado. El monto total no se
// almacena: es derivado de cantidad × precio unitario.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (product_id, product_name, category_name, sale_date, quantity, unit_price, customer_name, notes, combo_id, combo_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	var comboName *string
	if sale.ComboName != "" {
		comboName = &sale.ComboName
	}
	err := r.q.QueryRow(ctx, query,
		sale.ProductID, sale.ProductName, sale.CategoryName, sale.SaleDate, sale.Quantity,
		sale.UnitPrice, sale.CustomerName, sale.Notes, sale.ComboID, comboName,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por id.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// List lista ventas paginadas, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+` ORDER BY sale_date DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// Delete elimina una venta.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var comboName *string
	err := row.Scan(
		&s.ID, &s.ProductID, &s.ProductName, &s.CategoryName, &s.SaleDate, &s.Quantity,
		&s.UnitPrice, &s.CustomerName, &s.Notes, &s.ComboID, &comboName,
	)
	if err != nil {
		return nil, err
	}
	if comboName != nil {
		s.ComboName = *comboName
	}
	return &s, nil
}
