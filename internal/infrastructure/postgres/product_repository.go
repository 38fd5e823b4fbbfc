package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.name, p.description, p.purchase_price, p.sale_price, p.internal_notes,
	       p.category_id, p.unit_id, c.name, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna su id generado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, description, purchase_price, sale_price, internal_notes, category_id, unit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Description, product.PurchasePrice, product.SalePrice,
		product.InternalNotes, product.CategoryID, product.UnitID, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por id con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// List lista productos paginados, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByCategory lista los productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` WHERE p.category_id = $1 ORDER BY p.name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByPriceRange lista productos con precio de venta dentro del rango.
func (r *ProductRepo) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` WHERE p.sale_price BETWEEN $1 AND $2 ORDER BY p.sale_price`, min, max)
	if err != nil {
		return nil, fmt.Errorf("list products by price range: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByTag lista productos asociados a una etiqueta.
func (r *ProductRepo) ListByTag(ctx context.Context, tagID int64) ([]*entity.Product, error) {
	query := productSelect + `
		JOIN product_tags pt ON pt.product_id = p.id
		WHERE pt.tag_id = $1 ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, tagID)
	if err != nil {
		return nil, fmt.Errorf("list products by tag: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, purchase_price = $4, sale_price = $5,
		    internal_notes = $6, category_id = $7, unit_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.PurchasePrice, product.SalePrice,
		product.InternalNotes, product.CategoryID, product.UnitID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto. Falla con ErrConflict si tiene registros dependientes.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AddTag asocia una etiqueta a un producto (idempotente).
func (r *ProductRepo) AddTag(ctx context.Context, productID, tagID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		productID, tagID,
	)
	if err != nil {
		return fmt.Errorf("add product tag: %w", err)
	}
	return nil
}

// RemoveTag quita una etiqueta de un producto.
func (r *ProductRepo) RemoveTag(ctx context.Context, productID, tagID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1 AND tag_id = $2`, productID, tagID)
	if err != nil {
		return fmt.Errorf("remove product tag: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.PurchasePrice, &p.SalePrice, &p.InternalNotes,
		&p.CategoryID, &p.UnitID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
