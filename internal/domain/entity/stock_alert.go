package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de alerta de stock.
const (
	AlertLevelCritical = "Crítico - Sin stock"
	AlertLevelHigh     = "Alto - Stock muy bajo"
	AlertLevelMedium   = "Medio - Stock bajo"
	AlertLevelNormal   = "Normal"
)

// StockAlertItem vista de solo lectura de un producto en o bajo su stock mínimo.
type StockAlertItem struct {
	ProductName  string
	CategoryName string
	Quantity     int
	MinStock     int
	UnitPrice    decimal.Decimal
	EntryDate    time.Time
	StockDeficit int
	AlertLevel   string
}

// AlertLevelFor clasifica la severidad de la alerta.
// Crítico: sin stock; Alto: en o bajo el 50% del mínimo; Medio: en o bajo el mínimo.
func AlertLevelFor(current, minimum int) string {
	if current < 0 {
		return "Error - Stock negativo"
	}
	if minimum <= 0 {
		return "Error - Stock mínimo inválido"
	}
	if current == 0 {
		return AlertLevelCritical
	}
	if current*2 <= minimum {
		return AlertLevelHigh
	}
	if current <= minimum {
		return AlertLevelMedium
	}
	return AlertLevelNormal
}

// DeficitFor unidades que faltan para alcanzar el mínimo (0 si no falta).
func DeficitFor(current, minimum int) int {
	if d := minimum - current; d > 0 {
		return d
	}
	return 0
}
