package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// NewSale — validaciones de dominio
// ──────────────────────────────────────────────────────────────────────────────

func TestNewSale_ValoresValidos(t *testing.T) {
	sale, err := entity.NewSale(1, "Gaseosa 1.5L", "Bebidas", 4, decimal.NewFromFloat(2.50), "Cliente Uno", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), sale.ProductID)
	assert.Equal(t, "Gaseosa 1.5L", sale.ProductName)
	assert.Equal(t, "Bebidas", sale.CategoryName)
	assert.Equal(t, 4, sale.Quantity)
	assert.False(t, sale.SaleDate.IsZero(), "la fecha de venta debe asignarse al crear")
	assert.Nil(t, sale.ComboID)
	assert.False(t, sale.IsComboSale())
}

func TestNewSale_TotalAmountDerivado(t *testing.T) {
	sale, err := entity.NewSale(1, "Gaseosa 1.5L", "Bebidas", 4, decimal.NewFromFloat(2.50), "Cliente Uno", "")
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount().Equal(decimal.NewFromFloat(10.00)),
		"4 unidades a 2.50 deben totalizar 10.00, obtuvo %s", sale.TotalAmount())
}

func TestNewSale_RechazaEntradasInvalidas(t *testing.T) {
	price := decimal.NewFromFloat(2.50)
	cases := []struct {
		name      string
		productID int64
		prodName  string
		quantity  int
		unitPrice decimal.Decimal
		customer  string
	}{
		{"productId cero", 0, "Gaseosa", 1, price, "Cliente"},
		{"productId negativo", -3, "Gaseosa", 1, price, "Cliente"},
		{"nombre de producto vacío", 1, "  ", 1, price, "Cliente"},
		{"cantidad cero", 1, "Gaseosa", 0, price, "Cliente"},
		{"cantidad negativa", 1, "Gaseosa", -2, price, "Cliente"},
		{"precio cero", 1, "Gaseosa", 1, decimal.Zero, "Cliente"},
		{"precio negativo", 1, "Gaseosa", 1, decimal.NewFromInt(-5), "Cliente"},
		{"cliente vacío", 1, "Gaseosa", 1, price, "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewSale(tc.productID, tc.prodName, "Bebidas", tc.quantity, tc.unitPrice, tc.customer, "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNewSale_RecortaEspacios(t *testing.T) {
	sale, err := entity.NewSale(1, "  Gaseosa  ", " Bebidas ", 1, decimal.NewFromInt(2), "  Cliente  ", "  nota  ")
	require.NoError(t, err)

	assert.Equal(t, "Gaseosa", sale.ProductName)
	assert.Equal(t, "Bebidas", sale.CategoryName)
	assert.Equal(t, "Cliente", sale.CustomerName)
	assert.Equal(t, "nota", sale.Notes)
}

// ──────────────────────────────────────────────────────────────────────────────
// NewComboSale — naming y notas del combo
// ──────────────────────────────────────────────────────────────────────────────

func TestNewComboSale_CategoriaMarcadorYNotas(t *testing.T) {
	sale, err := entity.NewComboSale(7, "Combo Desayuno", 3, 2, decimal.NewFromFloat(8.00), "Cliente Dos", "")
	require.NoError(t, err)

	assert.Equal(t, "Combo Desayuno", sale.ProductName, "el nombre del combo reemplaza al del producto")
	assert.Equal(t, entity.ComboCategoryName, sale.CategoryName)
	assert.Equal(t, "Combo: Combo Desayuno", sale.Notes)
	require.NotNil(t, sale.ComboID)
	assert.Equal(t, int64(7), *sale.ComboID)
	assert.True(t, sale.IsComboSale())
}

func TestNewComboSale_NotasConcatenadas(t *testing.T) {
	sale, err := entity.NewComboSale(7, "Combo Desayuno", 3, 1, decimal.NewFromFloat(8.00), "Cliente", "sin azúcar")
	require.NoError(t, err)

	assert.Equal(t, "Combo: Combo Desayuno - sin azúcar", sale.Notes)
}

func TestNewComboSale_RechazaComboInvalido(t *testing.T) {
	_, err := entity.NewComboSale(0, "Combo", 1, 1, decimal.NewFromInt(5), "Cliente", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "comboId cero debe rechazarse")

	_, err = entity.NewComboSale(7, "  ", 1, 1, decimal.NewFromInt(5), "Cliente", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre de combo vacío debe rechazarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// SaleType — clasificación por cantidad y monto
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleType_Clasificacion(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		unitPrice decimal.Decimal
		want      string
	}{
		{"pocas unidades bajo monto", 2, decimal.NewFromInt(10), "Standard"},
		{"muchas unidades bajo monto", 11, decimal.NewFromInt(5), "Bulk"},
		{"pocas unidades alto monto", 2, decimal.NewFromInt(60), "High Value"},
		{"muchas unidades alto monto", 12, decimal.NewFromInt(20), "Premium"},
		{"frontera exacta 10 unidades 100 total", 10, decimal.NewFromInt(10), "Standard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sale, err := entity.NewSale(1, "Producto", "Cat", tc.quantity, tc.unitPrice, "Cliente", "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, sale.SaleType())
		})
	}
}
