package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// KeyValue define el puerto de persistencia clave-valor (DIP). Values devuelve los
// registros en el orden de claves del backend; los llamadores no deben depender de él.
type KeyValue[V any] interface {
	// Get devuelve (valor, true, nil) si la clave existe y (cero, false, nil) si no.
	Get(ctx context.Context, key string) (V, bool, error)
	// Insert crea o reemplaza el valor de la clave.
	Insert(ctx context.Context, key string, value V) error
	// Remove elimina la clave y devuelve el valor eliminado; false si no existía.
	Remove(ctx context.Context, key string) (V, bool, error)
	Values(ctx context.Context) ([]V, error)
}

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository = KeyValue[entity.Customer]

// ChildRepository puerto para registros que pertenecen a un cliente.
type ChildRepository[V any] interface {
	KeyValue[V]
	// ValuesByCustomer devuelve solo los registros cuyo CustomerID coincide.
	ValuesByCustomer(ctx context.Context, customerID string) ([]V, error)
}

// InteractionRepository puerto de persistencia para Interaction.
type InteractionRepository = ChildRepository[entity.Interaction]

// PurchaseRepository puerto de persistencia para Purchase.
type PurchaseRepository interface {
	ChildRepository[entity.Purchase]
	// TotalForCustomer suma Quantity * Price de las compras del cliente.
	TotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)
}
