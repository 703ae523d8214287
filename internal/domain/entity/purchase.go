package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra hecha por un cliente.
type Purchase struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Date       string          `json:"date"`
	Product    string          `json:"product"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Subtotal devuelve Quantity * Price.
func (p Purchase) Subtotal() decimal.Decimal {
	return p.Quantity.Mul(p.Price)
}
