package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

var (
	_ repository.InventoryByProductRepository = (*InventoryByProductRepo)(nil)
	_ repository.InventoryByBatchRepository   = (*InventoryByBatchRepo)(nil)
)

const inventoryByProductSelect = `
	SELECT id, product_id, quantity, unit_price, minimum_stock, entry_date, updated_at
	FROM inventory_by_product`

// InventoryByProductRepo implementación del puerto InventoryByProductRepository
// sobre PostgreSQL (usable con pool o tx).
type InventoryByProductRepo struct {
	q Querier
}

// NewInventoryByProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryByProductRepository(q Querier) *InventoryByProductRepo {
	return &InventoryByProductRepo{q: q}
}

// Create persiste el registro de inventario de un producto.
func (r *InventoryByProductRepo) Create(ctx context.Context, inv *entity.InventoryByProduct) error {
	query := `
		INSERT INTO inventory_by_product (product_id, quantity, unit_price, minimum_stock, entry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.ProductID, inv.Quantity, inv.UnitPrice, inv.MinimumStock, inv.EntryDate, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de inventario por id.
func (r *InventoryByProductRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryByProduct, error) {
	return r.getOne(ctx, inventoryByProductSelect+` WHERE id = $1`, id)
}

// GetByProduct obtiene el registro de inventario de un producto.
func (r *InventoryByProductRepo) GetByProduct(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	return r.getOne(ctx, inventoryByProductSelect+` WHERE product_id = $1`, productID)
}

// GetByProductForUpdate obtiene el registro bloqueando la fila hasta el fin de
// la transacción. Solo tiene sentido con un Querier transaccional.
func (r *InventoryByProductRepo) GetByProductForUpdate(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	return r.getOne(ctx, inventoryByProductSelect+` WHERE product_id = $1 FOR UPDATE`, productID)
}

// List lista registros de inventario paginados.
func (r *InventoryByProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryByProduct, error) {
	rows, err := r.q.Query(ctx, inventoryByProductSelect+` ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryByProduct
	for rows.Next() {
		var inv entity.InventoryByProduct
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.UnitPrice, &inv.MinimumStock, &inv.EntryDate, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		items = append(items, &inv)
	}
	return items, rows.Err()
}

// Update actualiza todos los campos mutables del registro.
func (r *InventoryByProductRepo) Update(ctx context.Context, inv *entity.InventoryByProduct) error {
	query := `
		UPDATE inventory_by_product
		SET quantity = $2, unit_price = $3, minimum_stock = $4, entry_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.Quantity, inv.UnitPrice, inv.MinimumStock, inv.EntryDate, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (camino caliente de ventas).
func (r *InventoryByProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_by_product SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// Delete elimina un registro de inventario.
func (r *InventoryByProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_by_product WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

// GetCategoryStats agregados de inventario de una categoría: total de
// productos, stock acumulado, valor total y productos en stock bajo.
func (r *InventoryByProductRepo) GetCategoryStats(ctx context.Context, categoryID int64) (*repository.CategoryInventoryStats, error) {
	query := `
		SELECT c.name,
		       COUNT(i.id),
		       COALESCE(SUM(i.quantity), 0),
		       COALESCE(SUM(i.quantity * i.unit_price), 0),
		       COUNT(i.id) FILTER (WHERE i.quantity <= i.minimum_stock)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		LEFT JOIN inventory_by_product i ON i.product_id = p.id
		WHERE c.id = $1
		GROUP BY c.name`
	var stats repository.CategoryInventoryStats
	err := r.q.QueryRow(ctx, query, categoryID).Scan(
		&stats.CategoryName, &stats.TotalProducts, &stats.TotalStock, &stats.TotalValue, &stats.LowStockCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return &stats, nil
}

// GetCategoryAverages promedios de stock real y mínimo de una categoría.
func (r *InventoryByProductRepo) GetCategoryAverages(ctx context.Context, categoryID int64) (*repository.CategoryStockAverages, error) {
	query := `
		SELECT c.name,
		       COALESCE(AVG(i.quantity), 0),
		       COALESCE(AVG(i.minimum_stock), 0),
		       COUNT(i.id),
		       COUNT(i.id) FILTER (WHERE i.quantity <= i.minimum_stock)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		LEFT JOIN inventory_by_product i ON i.product_id = p.id
		WHERE c.id = $1
		GROUP BY c.name`
	var avgs repository.CategoryStockAverages
	err := r.q.QueryRow(ctx, query, categoryID).Scan(
		&avgs.CategoryName, &avgs.RealAverage, &avgs.MinimumAvg, &avgs.TotalProducts, &avgs.LowStockCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("category averages: %w", err)
	}
	avgs.RealAverage = avgs.RealAverage.Round(2)
	avgs.MinimumAvg = avgs.MinimumAvg.Round(2)
	return &avgs, nil
}

func (r *InventoryByProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.InventoryByProduct, error) {
	var inv entity.InventoryByProduct
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.UnitPrice, &inv.MinimumStock, &inv.EntryDate, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// InventoryByBatchRepo implementación del puerto InventoryByBatchRepository.
type InventoryByBatchRepo struct {
	q Querier
}

// NewInventoryByBatchRepository construye el adaptador de persistencia para lotes.
func NewInventoryByBatchRepository(q Querier) *InventoryByBatchRepo {
	return &InventoryByBatchRepo{q: q}
}

// Create persiste un lote de entrada.
func (r *InventoryByBatchRepo) Create(ctx context.Context, batch *entity.InventoryByBatch) error {
	query := `
		INSERT INTO inventory_by_batch (supplier, product_id, entry_date, quantity, unit_price, unit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		batch.Supplier, batch.ProductID, batch.EntryDate, batch.Quantity, batch.UnitPrice, batch.Unit,
	).Scan(&batch.ID)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id.
func (r *InventoryByBatchRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryByBatch, error) {
	var b entity.InventoryByBatch
	err := r.q.QueryRow(ctx,
		`SELECT id, supplier, product_id, entry_date, quantity, unit_price, unit FROM inventory_by_batch WHERE id = $1`, id,
	).Scan(&b.ID, &b.Supplier, &b.ProductID, &b.EntryDate, &b.Quantity, &b.UnitPrice, &b.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// List lista lotes paginados, entradas más recientes primero.
func (r *InventoryByBatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryByBatch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, supplier, product_id, entry_date, quantity, unit_price, unit
		 FROM inventory_by_batch ORDER BY entry_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.InventoryByBatch
	for rows.Next() {
		var b entity.InventoryByBatch
		if err := rows.Scan(&b.ID, &b.Supplier, &b.ProductID, &b.EntryDate, &b.Quantity, &b.UnitPrice, &b.Unit); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// Delete elimina un lote.
func (r *InventoryByBatchRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_by_batch WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
