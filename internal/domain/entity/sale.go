package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/domain"
)

// ComboCategoryName nombre de categoría con que se registra una venta de combo.
const ComboCategoryName = "COMBO"

// Sale venta inmutable una vez creada. ProductName y CategoryName se
// desnormalizan al momento de la venta; no hay join vivo contra el catálogo.
// TotalAmount es derivado (cantidad × precio unitario), nunca se almacena.
type Sale struct {
	ID           int64
	ProductID    int64
	ProductName  string
	CategoryName string
	SaleDate     time.Time
	Quantity     int
	UnitPrice    decimal.Decimal
	CustomerName string
	Notes        string
	ComboID      *int64
	ComboName    string
}

// NewSale crea una venta validando los invariantes de dominio:
// productID > 0, quantity > 0, unitPrice > 0 y customerName no vacío.
func NewSale(productID int64, productName, categoryName string, quantity int, unitPrice decimal.Decimal, customerName, notes string) (*Sale, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: productId debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(productName) == "" {
		return nil, fmt.Errorf("%w: productName no puede ser vacío", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !unitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unitPrice debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, fmt.Errorf("%w: customerName no puede ser vacío", domain.ErrInvalidInput)
	}
	return &Sale{
		ProductID:    productID,
		ProductName:  strings.TrimSpace(productName),
		CategoryName: strings.TrimSpace(categoryName),
		SaleDate:     time.Now().UTC(),
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		CustomerName: strings.TrimSpace(customerName),
		Notes:        strings.TrimSpace(notes),
	}, nil
}

// NewComboSale crea la venta que representa un combo completo. Usa el producto
// de referencia indicado, el nombre del combo como nombre de producto y la
// categoría marcador "COMBO". Las notas quedan prefijadas con el combo.
func NewComboSale(comboID int64, comboName string, productID int64, quantity int, unitPrice decimal.Decimal, customerName, notes string) (*Sale, error) {
	if comboID <= 0 {
		return nil, fmt.Errorf("%w: comboId debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(comboName) == "" {
		return nil, fmt.Errorf("%w: comboName no puede ser vacío", domain.ErrInvalidInput)
	}
	fullNotes := "Combo: " + strings.TrimSpace(comboName)
	if strings.TrimSpace(notes) != "" {
		fullNotes += " - " + strings.TrimSpace(notes)
	}
	sale, err := NewSale(productID, comboName, ComboCategoryName, quantity, unitPrice, customerName, fullNotes)
	if err != nil {
		return nil, err
	}
	sale.ComboID = &comboID
	sale.ComboName = strings.TrimSpace(comboName)
	return sale, nil
}

// TotalAmount monto total derivado: cantidad × precio unitario.
func (s *Sale) TotalAmount() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// IsComboSale indica si la venta corresponde a un combo.
func (s *Sale) IsComboSale() bool { return s.ComboID != nil }

// IsLargeSale venta grande: más de 10 unidades.
func (s *Sale) IsLargeSale() bool { return s.Quantity > 10 }

// IsHighValueSale venta de alto valor: monto total mayor a 100.
func (s *Sale) IsHighValueSale() bool {
	return s.TotalAmount().GreaterThan(decimal.NewFromInt(100))
}

// SaleType clasifica la venta según cantidad y monto.
func (s *Sale) SaleType() string {
	switch {
	case s.IsLargeSale() && s.IsHighValueSale():
		return "Premium"
	case s.IsLargeSale():
		return "Bulk"
	case s.IsHighValueSale():
		return "High Value"
	default:
		return "Standard"
	}
}
