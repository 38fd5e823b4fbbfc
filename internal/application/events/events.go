package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleCompleted se emite después de confirmar la transacción de una venta.
// Los consumidores (reportes, integraciones externas) reciben el evento de
// forma asíncrona; un fallo en un consumidor nunca revierte la venta.
type SaleCompleted struct {
	EventID      string          `json:"event_id"`
	SaleID       int64           `json:"sale_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CustomerName string          `json:"customer_name"`
	ComboID      *int64          `json:"combo_id,omitempty"`
	ComboName    string          `json:"combo_name,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// IsComboSale indica si el evento proviene de una venta de combo.
func (e SaleCompleted) IsComboSale() bool {
	return e.ComboID != nil
}

// Publisher publica eventos SaleCompleted hacia los consumidores.
type Publisher interface {
	Publish(event SaleCompleted)
}

// Handler procesa un evento SaleCompleted.
type Handler interface {
	Handle(event SaleCompleted)
}
