package dto

import "strings"

// PageRequest paginación y búsqueda para listados (?page=1&limit=10&search=...).
type PageRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

// DefaultPage aplica valores por defecto y límites.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	p.Search = strings.TrimSpace(p.Search)
}

// Offset calcula el desplazamiento a partir de la página.
func (p PageRequest) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse arma los metadatos a partir del total de registros.
func NewPageResponse(p PageRequest, total int) PageResponse {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return PageResponse{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError detalle de un campo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo.
type MessageResponse struct {
	Message string `json:"message"`
}
