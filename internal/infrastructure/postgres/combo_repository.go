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

var _ repository.ComboRepository = (*ComboRepo)(nil)

// ComboRepo implementación del puerto ComboRepository sobre PostgreSQL.
type ComboRepo struct {
	q Querier
}

// NewComboRepository construye el adaptador de persistencia para combos.
func NewComboRepository(q Querier) *ComboRepo {
	return &ComboRepo{q: q}
}

// Create persiste el combo y sus items.
func (r *ComboRepo) Create(ctx context.Context, combo *entity.Combo) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO combos (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
		combo.Name, combo.CreatedAt, combo.UpdatedAt,
	).Scan(&combo.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert combo: %w", err)
	}

	for i := range combo.Items {
		combo.Items[i].ComboID = combo.ID
		if err := r.AddItem(ctx, &combo.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetWithItems obtiene un combo con sus items y nombres de producto.
func (r *ComboRepo) GetWithItems(ctx context.Context, id int64) (*entity.Combo, error) {
	var c entity.Combo
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM combos WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get combo: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

// List lista todos los combos con sus items.
func (r *ComboRepo) List(ctx context.Context) ([]*entity.Combo, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM combos ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()

	var combos []*entity.Combo
	for rows.Next() {
		var c entity.Combo
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan combo: %w", err)
		}
		combos = append(combos, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range combos {
		items, err := r.listItems(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
	}
	return combos, nil
}

// UpdateName cambia el nombre del combo.
func (r *ComboRepo) UpdateName(ctx context.Context, id int64, name string) error {
	_, err := r.q.Exec(ctx, `UPDATE combos SET name = $2, updated_at = now() WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update combo name: %w", err)
	}
	return nil
}

// AddItem agrega un producto al combo; si ya existe, reemplaza la cantidad.
func (r *ComboRepo) AddItem(ctx context.Context, item *entity.ComboItem) error {
	query := `
		INSERT INTO combo_items (combo_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (combo_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id`
	err := r.q.QueryRow(ctx, query, item.ComboID, item.ProductID, item.Quantity).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert combo item: %w", err)
	}
	return nil
}

// RemoveItem quita un producto del combo.
func (r *ComboRepo) RemoveItem(ctx context.Context, comboID, productID int64) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM combo_items WHERE combo_id = $1 AND product_id = $2`, comboID, productID)
	if err != nil {
		return fmt.Errorf("remove combo item: %w", err)
	}
	return nil
}

// Delete elimina el combo; sus items caen por ON DELETE CASCADE.
func (r *ComboRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM combos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete combo: %w", err)
	}
	return nil
}

func (r *ComboRepo) listItems(ctx context.Context, comboID int64) ([]entity.ComboItem, error) {
	query := `
		SELECT ci.id, ci.combo_id, ci.product_id, ci.quantity, p.name
		FROM combo_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.combo_id = $1
		ORDER BY ci.id`
	rows, err := r.q.Query(ctx, query, comboID)
	if err != nil {
		return nil, fmt.Errorf("list combo items: %w", err)
	}
	defer rows.Close()

	var items []entity.ComboItem
	for rows.Next() {
		var item entity.ComboItem
		if err := rows.Scan(&item.ID, &item.ComboID, &item.ProductID, &item.Quantity, &item.ProductName); err != nil {
			return nil, fmt.Errorf("scan combo item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
