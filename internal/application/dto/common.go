package dto

import (
	"github.com/jhoicas/logbook-api/internal/domain"
)

// Valores por defecto de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest paginación para listados (page base 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Offset devuelve el desplazamiento SQL de la página.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

// Check valida que page y limit sean enteros positivos.
func (p PageRequest) Check() error {
	verr := &domain.ValidationError{}
	if p.Page < 1 {
		verr.Add("page", "min=1")
	}
	if p.Limit < 1 {
		verr.Add("limit", "min=1")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination calcula el número de páginas.
func NewPagination(total int, page PageRequest) Pagination {
	pages := 0
	if page.Limit > 0 {
		pages = (total + page.Limit - 1) / page.Limit
	}
	return Pagination{Total: total, Page: page.Page, Limit: page.Limit, Pages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple sin datos.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
