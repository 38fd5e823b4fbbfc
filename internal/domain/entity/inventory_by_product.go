package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain"
)

// InventoryByProduct stock vigente de un producto: cantidad, precio unitario y
// stock mínimo configurado. Una fila por producto.
// Invariante: Quantity nunca queda negativo; un decremento que lo dejaría
// negativo se rechaza completo.
type InventoryByProduct struct {
	ID           int64
	ProductID    int64
	Quantity     int
	UnitPrice    decimal.Decimal
	MinimumStock int
	EntryDate    time.Time
	UpdatedAt    time.Time
}

// ReduceStock descuenta unidades del stock. Rechaza cantidades no positivas y
// decrementos mayores al stock disponible; el llamador persiste vía repositorio.
func (i *InventoryByProduct) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity > i.Quantity {
		return domain.ErrInsufficientStock
	}
	i.Quantity -= quantity
	return nil
}

// IncreaseStock suma unidades al stock. Rechaza cantidades no positivas.
func (i *InventoryByProduct) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	i.Quantity += quantity
	return nil
}

// IsLowStock indica si la cantidad está en o bajo el stock mínimo.
func (i *InventoryByProduct) IsLowStock() bool {
	return i.Quantity <= i.MinimumStock
}

// TotalValue valor del stock actual (cantidad × precio unitario).
func (i *InventoryByProduct) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
