package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Unit unidad de medida de un producto (kg, unidad, litro...).
type Unit struct {
	ID           int64
	Name         string
	Abbreviation string
	CreatedAt    time.Time
}

// Tag etiqueta libre asociable a productos.
type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ProductTag relación N:M entre productos y etiquetas.
type ProductTag struct {
	ProductID int64
	TagID     int64
}

// Branch sucursal del negocio.
type Branch struct {
	ID        int64
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
