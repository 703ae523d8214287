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

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	customers    repository.CustomerRepository
	interactions repository.InteractionRepository
	purchases    repository.PurchaseRepository
	log          zerolog.Logger
}

// NewCustomerUseCase construye el caso de uso. Los repos hijos solo se leen para
// derivar las referencias de cada cliente.
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	interactions repository.InteractionRepository,
	purchases repository.PurchaseRepository,
	log zerolog.Logger,
) *CustomerUseCase {
	return &CustomerUseCase{
		customers:    customers,
		interactions: interactions,
		purchases:    purchases,
		log:          log.With().Str("usecase", "customer").Logger(),
	}
}

// Create valida el payload, asigna un id nuevo y persiste el cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	ts := now()
	customer := entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := uc.customers.Insert(ctx, customer.ID, customer); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	uc.log.Debug().Str("customer_id", customer.ID).Msg("cliente creado")
	return toCustomerResponse(customer, childRefs{}), nil
}

// Get obtiene un cliente por id con sus referencias.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, ok, err := uc.customers.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		return nil, notFound("cliente", id)
	}
	refs, err := uc.refsFor(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, refs), nil
}

// List lista todos los clientes en el orden del backend.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	return uc.filter(ctx, func(entity.Customer) bool { return true })
}

// SearchByName devuelve los clientes cuyo nombre coincide exactamente, sin distinguir mayúsculas.
func (uc *CustomerUseCase) SearchByName(ctx context.Context, name string) ([]*dto.CustomerResponse, error) {
	return uc.filter(ctx, func(c entity.Customer) bool { return equalFold(c.Name, name) })
}

// Update reemplaza los campos editables del cliente. Un id inexistente es
// ErrNotFound aunque el payload sea inválido; un fallo nunca modifica el almacén.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, ok, err := uc.customers.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("no se puede actualizar: %w", notFound("cliente", id))
	}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.Company = in.Company
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.UpdatedAt = now()
	if err := uc.customers.Insert(ctx, customer.ID, customer); err != nil {
		return nil, fmt.Errorf("actualizar cliente: %w", err)
	}
	refs, err := uc.refsFor(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("customer_id", id).Msg("cliente actualizado")
	return toCustomerResponse(customer, refs), nil
}

// Delete elimina el cliente y devuelve su id. Sus interacciones y compras NO se
// eliminan: siguen accesibles por su propio id.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) (string, error) {
	_, ok, err := uc.customers.Remove(ctx, id)
	if err != nil {
		return "", fmt.Errorf("eliminar cliente: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no se puede eliminar: %w", notFound("cliente", id))
	}
	uc.log.Debug().Str("customer_id", id).Msg("cliente eliminado")
	return id, nil
}

func (uc *CustomerUseCase) filter(ctx context.Context, keep func(entity.Customer) bool) ([]*dto.CustomerResponse, error) {
	list, err := uc.customers.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	refs, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if keep(c) {
			out = append(out, toCustomerResponse(c, refs[c.ID]))
		}
	}
	return out, nil
}

// childRefs ids de los registros hijos de un cliente.
type childRefs struct {
	interactions []string
	purchases    []string
}

// loadRefs agrupa por CustomerID los ids de interacciones y compras (recorrido lineal).
func (uc *CustomerUseCase) loadRefs(ctx context.Context) (map[string]childRefs, error) {
	interactions, err := uc.interactions.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar interacciones: %w", err)
	}
	purchases, err := uc.purchases.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	refs := make(map[string]childRefs)
	for _, i := range interactions {
		r := refs[i.CustomerID]
		r.interactions = append(r.interactions, i.ID)
		refs[i.CustomerID] = r
	}
	for _, p := range purchases {
		r := refs[p.CustomerID]
		r.purchases = append(r.purchases, p.ID)
		refs[p.CustomerID] = r
	}
	return refs, nil
}

// refsFor ids de los registros hijos de un solo cliente.
func (uc *CustomerUseCase) refsFor(ctx context.Context, customerID string) (childRefs, error) {
	var refs childRefs
	interactions, err := uc.interactions.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return refs, fmt.Errorf("listar interacciones: %w", err)
	}
	purchases, err := uc.purchases.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return refs, fmt.Errorf("listar compras: %w", err)
	}
	for _, i := range interactions {
		refs.interactions = append(refs.interactions, i.ID)
	}
	for _, p := range purchases {
		refs.purchases = append(refs.purchases, p.ID)
	}
	return refs, nil
}

func toCustomerResponse(c entity.Customer, refs childRefs) *dto.CustomerResponse {
	interactions := refs.interactions
	if interactions == nil {
		interactions = []string{}
	}
	purchases := refs.purchases
	if purchases == nil {
		purchases = []string{}
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Interactions: interactions,
		Purchases:    purchases,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
