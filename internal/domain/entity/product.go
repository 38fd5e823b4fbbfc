package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock no vive aquí: se maneja en InventoryByProduct.
type Product struct {
	ID            int64
	Name          string
	Description   string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	InternalNotes string
	CategoryID    int64
	UnitID        int64
	CategoryName  string // denormalizado en lecturas con JOIN a categories
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
