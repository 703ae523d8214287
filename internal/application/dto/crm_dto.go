package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body para POST /api/customers y PUT /api/customers/:id.
type CustomerRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Company string `json:"company" validate:"notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,e164"`
}

// CustomerResponse cliente en respuestas, con las referencias a sus registros hijos.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Interactions []string  `json:"interactions"`
	Purchases    []string  `json:"purchases"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InteractionRequest body para crear o actualizar una interacción.
type InteractionRequest struct {
	Date            string `json:"date" validate:"notblank"`
	InteractionType string `json:"interaction_type" validate:"notblank"`
	Description     string `json:"description"`
	Status          string `json:"status" validate:"notblank"`
	Comments        string `json:"comments"`
}

// InteractionResponse interacción en respuestas.
type InteractionResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	Date            string    `json:"date"`
	InteractionType string    `json:"interaction_type"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	Comments        string    `json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PurchaseRequest body para crear o actualizar una compra.
// Quantity y Price aceptan número o string JSON ("2", 2, "10.50").
type PurchaseRequest struct {
	Date     string          `json:"date" validate:"notblank"`
	Product  string          `json:"product" validate:"notblank"`
	Quantity decimal.Decimal `json:"quantity" validate:"dpos"`
	Price    decimal.Decimal `json:"price" validate:"dnonneg"`
}

// PurchaseResponse compra en respuestas.
type PurchaseResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Date       string          `json:"date"`
	Product    string          `json:"product"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
