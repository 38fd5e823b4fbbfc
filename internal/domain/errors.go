package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// StockShortage detalle de faltante de stock de un producto dentro de una venta.
type StockShortage struct {
	ProductID   int64
	ProductName string
	Available   int
	Required    int
}

// StockShortageError agrupa todos los faltantes detectados al validar una venta.
// Para combos incluye una entrada por cada producto corto; la venta completa
// se rechaza sin mutar ningún inventario.
type StockShortageError struct {
	Shortages []StockShortage
}

// Error implementa error con el detalle por producto, en el formato del mensaje
// de rechazo de ventas.
func (e *StockShortageError) Error() string {
	if len(e.Shortages) == 0 {
		return ErrInsufficientStock.Error()
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (Disponible: %d, Requerido: %d)", s.ProductName, s.Available, s.Required))
	}
	return "stock insuficiente: " + strings.Join(parts, ", ")
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }

// NewStockShortageError construye el error con los faltantes detectados.
func NewStockShortageError(shortages ...StockShortage) *StockShortageError {
	return &StockShortageError{Shortages: shortages}
}
