package repository

import (
	"context"

	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}

// UnitRepository puerto de persistencia para unidades de medida.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id int64) (*entity.Unit, error)
	List(ctx context.Context) ([]*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, id int64) error
}

// TagRepository puerto de persistencia para etiquetas.
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id int64) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
	Delete(ctx context.Context, id int64) error
}

// BranchRepository puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id int64) (*entity.Branch, error)
	List(ctx context.Context) ([]*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id int64) error
}

// ComboRepository puerto de persistencia para combos y sus items.
// GetWithItems incluye los items con nombre de producto desnormalizado.
type ComboRepository interface {
	Create(ctx context.Context, combo *entity.Combo) error
	GetWithItems(ctx context.Context, id int64) (*entity.Combo, error)
	List(ctx context.Context) ([]*entity.Combo, error)
	UpdateName(ctx context.Context, id int64, name string) error
	AddItem(ctx context.Context, item *entity.ComboItem) error
	RemoveItem(ctx context.Context, comboID, productID int64) error
	Delete(ctx context.Context, id int64) error
}
