package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository    = (*Map[entity.Customer])(nil)
	_ repository.InteractionRepository = (*Map[entity.Interaction])(nil)
	_ repository.PurchaseRepository    = (*PurchaseMap)(nil)
)

// Map es un mapa tipado sobre un bucket del backend; los valores se guardan como JSON.
type Map[V any] struct {
	backend Backend
	bucket  string
}

// NewMap construye el mapa del bucket indicado.
func NewMap[V any](backend Backend, bucket string) *Map[V] {
	return &Map[V]{backend: backend, bucket: bucket}
}

// Get obtiene y decodifica el valor de la clave.
func (m *Map[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, err := m.backend.Get(ctx, m.bucket, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("kv: get %s/%s: %w", m.bucket, key, err)
	}
	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("kv: decodificar %s/%s: %w", m.bucket, key, err)
	}
	return v, true, nil
}

// Insert codifica y guarda el valor (crea o reemplaza).
func (m *Map[V]) Insert(ctx context.Context, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv: codificar %s/%s: %w", m.bucket, key, err)
	}
	if err := m.backend.Put(ctx, m.bucket, key, raw); err != nil {
		return fmt.Errorf("kv: put %s/%s: %w", m.bucket, key, err)
	}
	return nil
}

// Remove elimina la clave y devuelve el valor que tenía.
func (m *Map[V]) Remove(ctx context.Context, key string) (V, bool, error) {
	var zero V
	v, ok, err := m.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	if err := m.backend.Delete(ctx, m.bucket, key); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			// Otro llamador la eliminó entre el Get y el Delete.
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("kv: delete %s/%s: %w", m.bucket, key, err)
	}
	return v, true, nil
}

// Values decodifica todos los valores del bucket en orden de clave.
func (m *Map[V]) Values(ctx context.Context) ([]V, error) {
	raws, err := m.backend.Scan(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("kv: scan %s: %w", m.bucket, err)
	}
	return m.decodeAll(raws)
}

// ValuesByCustomer devuelve, en orden de clave, los valores cuyo customer_id coincide.
// Si el backend implementa CustomerScanner el filtro lo hace el backend.
func (m *Map[V]) ValuesByCustomer(ctx context.Context, customerID string) ([]V, error) {
	if cs, ok := m.backend.(CustomerScanner); ok {
		raws, err := cs.ScanByCustomer(ctx, m.bucket, customerID)
		if err != nil {
			return nil, fmt.Errorf("kv: scan %s por cliente: %w", m.bucket, err)
		}
		return m.decodeAll(raws)
	}

	raws, err := m.backend.Scan(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("kv: scan %s: %w", m.bucket, err)
	}
	out := make([]V, 0)
	for _, raw := range raws {
		var owner struct {
			CustomerID string `json:"customer_id"`
		}
		if err := json.Unmarshal(raw, &owner); err != nil {
			return nil, fmt.Errorf("kv: decodificar %s: %w", m.bucket, err)
		}
		if owner.CustomerID != customerID {
			continue
		}
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("kv: decodificar %s: %w", m.bucket, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *Map[V]) decodeAll(raws [][]byte) ([]V, error) {
	out := make([]V, 0, len(raws))
	for _, raw := range raws {
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("kv: decodificar %s: %w", m.bucket, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// PurchaseMap es el mapa de compras con el total por cliente.
type PurchaseMap struct {
	*Map[entity.Purchase]
}

// NewPurchaseMap construye el mapa sobre el bucket de compras.
func NewPurchaseMap(backend Backend) *PurchaseMap {
	return &PurchaseMap{Map: NewMap[entity.Purchase](backend, BucketPurchases)}
}

// TotalForCustomer suma Quantity * Price de las compras del cliente. Usa el
// PurchaseTotaler del backend si existe; si no, suma en memoria.
func (m *PurchaseMap) TotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	if t, ok := m.backend.(PurchaseTotaler); ok {
		total, err := t.PurchaseTotal(ctx, m.bucket, customerID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("kv: total de compras: %w", err)
		}
		return total, nil
	}
	list, err := m.ValuesByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range list {
		total = total.Add(p.Subtotal())
	}
	return total, nil
}
