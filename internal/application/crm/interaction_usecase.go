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

// InteractionUseCase casos de uso para interacciones de clientes.
type InteractionUseCase struct {
	customers    repository.CustomerRepository
	interactions repository.InteractionRepository
	log          zerolog.Logger
}

// NewInteractionUseCase construye el caso de uso.
func NewInteractionUseCase(
	customers repository.CustomerRepository,
	interactions repository.InteractionRepository,
	log zerolog.Logger,
) *InteractionUseCase {
	return &InteractionUseCase{
		customers:    customers,
		interactions: interactions,
		log:          log.With().Str("usecase", "interaction").Logger(),
	}
}

// Add registra una interacción para el cliente y devuelve su id.
func (uc *InteractionUseCase) Add(ctx context.Context, customerID string, in dto.InteractionRequest) (string, error) {
	_, ok, err := uc.customers.Get(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no se puede agregar la interacción: %w", notFound("cliente", customerID))
	}
	if err := validation.Validate(in); err != nil {
		return "", err
	}
	ts := now()
	interaction := entity.Interaction{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Date:            in.Date,
		InteractionType: in.InteractionType,
		Description:     in.Description,
		Status:          in.Status,
		Comments:        in.Comments,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := uc.interactions.Insert(ctx, interaction.ID, interaction); err != nil {
		return "", fmt.Errorf("crear interacción: %w", err)
	}
	uc.log.Debug().
		Str("customer_id", customerID).
		Str("interaction_id", interaction.ID).
		Msg("interacción creada")
	return interaction.ID, nil
}

// Get obtiene una interacción por id.
func (uc *InteractionUseCase) Get(ctx context.Context, id string) (*dto.InteractionResponse, error) {
	interaction, ok, err := uc.interactions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener interacción: %w", err)
	}
	if !ok {
		return nil, notFound("interacción", id)
	}
	return toInteractionResponse(interaction), nil
}

// ListForCustomer devuelve las interacciones del cliente. Si el cliente no existe
// devuelve una lista vacía, no un error.
func (uc *InteractionUseCase) ListForCustomer(ctx context.Context, customerID string) ([]*dto.InteractionResponse, error) {
	_, ok, err := uc.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		uc.log.Debug().Str("customer_id", customerID).Msg("cliente inexistente, lista vacía")
		return []*dto.InteractionResponse{}, nil
	}
	list, err := uc.interactions.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listar interacciones: %w", err)
	}
	out := make([]*dto.InteractionResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toInteractionResponse(i))
	}
	return out, nil
}

// Update reemplaza los campos editables. El cliente dueño no cambia.
func (uc *InteractionUseCase) Update(ctx context.Context, id string, in dto.InteractionRequest) (*dto.InteractionResponse, error) {
	interaction, ok, err := uc.interactions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener interacción: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("no se puede actualizar: %w", notFound("interacción", id))
	}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	interaction.Date = in.Date
	interaction.InteractionType = in.InteractionType
	interaction.Description = in.Description
	interaction.Status = in.Status
	interaction.Comments = in.Comments
	interaction.UpdatedAt = now()
	if err := uc.interactions.Insert(ctx, interaction.ID, interaction); err != nil {
		return nil, fmt.Errorf("actualizar interacción: %w", err)
	}
	return toInteractionResponse(interaction), nil
}

// Delete elimina la interacción y devuelve su id. Como las referencias del cliente
// se derivan del almacén, desaparece también de la lista del cliente.
func (uc *InteractionUseCase) Delete(ctx context.Context, id string) (string, error) {
	removed, ok, err := uc.interactions.Remove(ctx, id)
	if err != nil {
		return "", fmt.Errorf("eliminar interacción: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no se puede eliminar: %w", notFound("interacción", id))
	}
	uc.log.Debug().
		Str("customer_id", removed.CustomerID).
		Str("interaction_id", id).
		Msg("interacción eliminada")
	return id, nil
}

// FilterByStatus devuelve las interacciones con ese estado (exacto, sin distinguir mayúsculas).
func (uc *InteractionUseCase) FilterByStatus(ctx context.Context, status string) ([]*dto.InteractionResponse, error) {
	return uc.filter(ctx, func(i entity.Interaction) bool { return equalFold(i.Status, status) })
}

func (uc *InteractionUseCase) filter(ctx context.Context, keep func(entity.Interaction) bool) ([]*dto.InteractionResponse, error) {
	list, err := uc.interactions.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar interacciones: %w", err)
	}
	out := make([]*dto.InteractionResponse, 0, len(list))
	for _, i := range list {
		if keep(i) {
			out = append(out, toInteractionResponse(i))
		}
	}
	return out, nil
}

func toInteractionResponse(i entity.Interaction) *dto.InteractionResponse {
	return &dto.InteractionResponse{
		ID:              i.ID,
		CustomerID:      i.CustomerID,
		Date:            i.Date,
		InteractionType: i.InteractionType,
		Description:     i.Description,
		Status:          i.Status,
		Comments:        i.Comments,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
