package entity

import "time"

// Interaction registra un contacto con un cliente (llamada, reunión, correo...).
type Interaction struct {
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
