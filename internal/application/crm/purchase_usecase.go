package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// PurchaseUseCase casos de uso para compras de clientes.
type PurchaseUseCase struct {
	customers repository.CustomerRepository
	purchases repository.PurchaseRepository
	log       zerolog.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	customers repository.CustomerRepository,
	purchases repository.PurchaseRepository,
	log zerolog.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		customers: customers,
		purchases: purchases,
		log:       log.With().Str("usecase", "purchase").Logger(),
	}
}

// Add registra una compra para el cliente y devuelve su id.
func (uc *PurchaseUseCase) Add(ctx context.Context, customerID string, in dto.PurchaseRequest) (string, error) {
	_, ok, err := uc.customers.Get(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no se puede agregar la compra: %w", notFound("cliente", customerID))
	}
	if err := validation.Validate(in); err != nil {
		return "", err
	}
	ts := now()
	purchase := entity.Purchase{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Date:       in.Date,
		Product:    in.Product,
		Quantity:   in.Quantity,
		Price:      in.Price,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := uc.purchases.Insert(ctx, purchase.ID, purchase); err != nil {
		return "", fmt.Errorf("crear compra: %w", err)
	}
	uc.log.Debug().
		Str("customer_id", customerID).
		Str("purchase_id", purchase.ID).
		Msg("compra creada")
	return purchase.ID, nil
}

// Get obtiene una compra por id.
func (uc *PurchaseUseCase) Get(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, ok, err := uc.purchases.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener compra: %w", err)
	}
	if !ok {
		return nil, notFound("compra", id)
	}
	return toPurchaseResponse(purchase), nil
}

// ListForCustomer devuelve las compras del cliente; lista vacía si el cliente no existe.
func (uc *PurchaseUseCase) ListForCustomer(ctx context.Context, customerID string) ([]*dto.PurchaseResponse, error) {
	_, ok, err := uc.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		uc.log.Debug().Str("customer_id", customerID).Msg("cliente inexistente, lista vacía")
		return []*dto.PurchaseResponse{}, nil
	}
	list, err := uc.purchases.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return out, nil
}

// Update reemplaza los campos editables de la compra.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, ok, err := uc.purchases.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener compra: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("no se puede actualizar: %w", notFound("compra", id))
	}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	purchase.Date = in.Date
	purchase.Product = in.Product
	purchase.Quantity = in.Quantity
	purchase.Price = in.Price
	purchase.UpdatedAt = now()
	if err := uc.purchases.Insert(ctx, purchase.ID, purchase); err != nil {
		return nil, fmt.Errorf("actualizar compra: %w", err)
	}
	return toPurchaseResponse(purchase), nil
}

// Delete elimina la compra y devuelve su id.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) (string, error) {
	removed, ok, err := uc.purchases.Remove(ctx, id)
	if err != nil {
		return "", fmt.Errorf("eliminar compra: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no se puede eliminar: %w", notFound("compra", id))
	}
	uc.log.Debug().
		Str("customer_id", removed.CustomerID).
		Str("purchase_id", id).
		Msg("compra eliminada")
	return id, nil
}

// FilterByDate devuelve las compras de esa fecha (exacta, sin distinguir mayúsculas).
func (uc *PurchaseUseCase) FilterByDate(ctx context.Context, date string) ([]*dto.PurchaseResponse, error) {
	return uc.filter(ctx, func(p entity.Purchase) bool { return equalFold(p.Date, date) })
}

func (uc *PurchaseUseCase) filter(ctx context.Context, keep func(entity.Purchase) bool) ([]*dto.PurchaseResponse, error) {
	list, err := uc.purchases.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		if keep(p) {
			out = append(out, toPurchaseResponse(p))
		}
	}
	return out, nil
}

func toPurchaseResponse(p entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Date:       p.Date,
		Product:    p.Product,
		Quantity:   p.Quantity,
		Price:      p.Price,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
