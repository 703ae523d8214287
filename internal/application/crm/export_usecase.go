package crm

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ExportUseCase genera el estado de cuenta (PDF) y la exportación XML de un cliente.
type ExportUseCase struct {
	customers    repository.CustomerRepository
	interactions repository.InteractionRepository
	purchases    repository.PurchaseRepository
	statement    DocumentRenderer
	xml          DocumentRenderer
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	customers repository.CustomerRepository,
	interactions repository.InteractionRepository,
	purchases repository.PurchaseRepository,
	statement DocumentRenderer,
	xml DocumentRenderer,
) *ExportUseCase {
	return &ExportUseCase{
		customers:    customers,
		interactions: interactions,
		purchases:    purchases,
		statement:    statement,
		xml:          xml,
	}
}

// StatementPDF devuelve el estado de cuenta del cliente en PDF.
func (uc *ExportUseCase) StatementPDF(ctx context.Context, customerID string) ([]byte, error) {
	doc, err := uc.document(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out, err := uc.statement.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("generar estado de cuenta: %w", err)
	}
	return out, nil
}

// CustomerXML devuelve el cliente con interacciones y compras en XML canónico.
func (uc *ExportUseCase) CustomerXML(ctx context.Context, customerID string) ([]byte, error) {
	doc, err := uc.document(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out, err := uc.xml.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("exportar XML: %w", err)
	}
	return out, nil
}

func (uc *ExportUseCase) document(ctx context.Context, customerID string) (*CustomerDocument, error) {
	customer, ok, err := uc.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if !ok {
		return nil, notFound("cliente", customerID)
	}
	interactions, err := uc.interactions.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listar interacciones: %w", err)
	}
	purchases, err := uc.purchases.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	total, err := uc.purchases.TotalForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("total de compras: %w", err)
	}
	doc := &CustomerDocument{
		Customer:     customer,
		Interactions: interactions,
		Purchases:    purchases,
		Total:        total,
		GeneratedAt:  now(),
	}
	return doc, nil
}
