package entity

import "time"

// Customer representa un cliente del CRM.
// Las listas de interacciones y compras no se persisten aquí: se derivan de sus
// propios almacenes al leer (ver crm.CustomerUseCase).
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
