package dto

import "github.com/jhoicas/crm-api/internal/domain"

// ErrorResponse cuerpo de error HTTP.
// Details solo se completa en errores de validación (un elemento por campo inválido).
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

// DeletedResponse respuesta de los endpoints DELETE: el id eliminado.
type DeletedResponse struct {
	ID string `json:"id"`
}

// CreatedIDResponse respuesta de los endpoints que solo devuelven el id nuevo.
type CreatedIDResponse struct {
	ID string `json:"id"`
}
