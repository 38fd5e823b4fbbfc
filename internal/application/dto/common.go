package dto

import "encoding/json"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Patch campo opcional con semántica tri-estado para updates parciales:
// ausente (no tocar), null explícito (limpiar) o valor (asignar).
// Evita la colisión entre "cero" y "sin cambio" de los punteros simples.
type Patch[T any] struct {
	Set   bool // el campo vino en el JSON
	Null  bool // vino como null explícito
	Value T
}

// UnmarshalJSON marca Set siempre que el campo esté presente; json no invoca
// este método para campos ausentes, por lo que Set queda en false en ese caso.
func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		return nil
	}
	return json.Unmarshal(b, &p.Value)
}
