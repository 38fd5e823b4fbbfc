package dto

import "time"

// CreateComboRequest body para POST /api/v1/combos.
type CreateComboRequest struct {
	Name  string             `json:"name"`
	Items []ComboItemRequest `json:"items"`
}

// ComboItemRequest un producto dentro de un combo.
type ComboItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// UpdateComboNameRequest body para PUT /api/v1/combos/{id}.
type UpdateComboNameRequest struct {
	Name string `json:"name"`
}

// ComboItemResponse un producto dentro de un combo, con nombre resuelto.
type ComboItemResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

// ComboResponse representación de un combo con sus componentes.
type ComboResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Items     []ComboItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
