package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryByBatch lote de entrada de mercadería: proveedor, producto, cantidad
// y precio al momento del ingreso. Registro histórico, no se descuenta en ventas.
type InventoryByBatch struct {
	ID        int64
	Supplier  string
	ProductID int64
	EntryDate time.Time
	Quantity  int
	UnitPrice decimal.Decimal
	Unit      string
	CreatedAt time.Time
}

// Total valor del lote (cantidad × precio unitario).
func (b *InventoryByBatch) Total() decimal.Decimal {
	return b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
}
