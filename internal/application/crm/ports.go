package crm

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CustomerDocument datos de un cliente con sus registros hijos, para exportar.
type CustomerDocument struct {
	Customer     entity.Customer
	Interactions []entity.Interaction
	Purchases    []entity.Purchase
	Total        decimal.Decimal // suma de Quantity * Price de todas las compras
	GeneratedAt  time.Time
}

// DocumentRenderer convierte un CustomerDocument a un formato de salida (PDF, XML...).
type DocumentRenderer interface {
	Render(ctx context.Context, doc *CustomerDocument) ([]byte, error)
}
