package kv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
)

func TestMap_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	purchases := kv.NewMap[entity.Purchase](kv.NewMemory(), kv.BucketPurchases)

	p := entity.Purchase{
		ID:         "p-1",
		CustomerID: "c-1",
		Date:       "2024-01-01",
		Product:    "Widget",
		Quantity:   decimal.NewFromInt(2),
		Price:      decimal.RequireFromString("10.50"),
	}
	require.NoError(t, purchases.Insert(ctx, p.ID, p))

	got, ok, err := purchases.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.Product, got.Product)
	assert.True(t, p.Price.Equal(got.Price))
	assert.True(t, got.Subtotal().Equal(decimal.NewFromInt(21)))

	removed, ok, err := purchases.Remove(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.ID, removed.ID)

	_, ok, err = purchases.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = purchases.Remove(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok, "eliminar dos veces no es error, solo false")
}

func TestMap_ValuesEnOrdenDeClave(t *testing.T) {
	ctx := context.Background()
	customers := kv.NewMap[entity.Customer](kv.NewMemory(), kv.BucketCustomers)
	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, customers.Insert(ctx, id, entity.Customer{ID: id, Name: "n-" + id}))
	}

	vals, err := customers.Values(ctx)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{vals[0].ID, vals[1].ID, vals[2].ID})
}

type failingBackend struct{ kv.Backend }

var errBoom = errors.New("boom")

func (failingBackend) Get(context.Context, string, string) ([]byte, error) { return nil, errBoom }
func (failingBackend) Scan(context.Context, string) ([][]byte, error)     { return nil, errBoom }

func TestMap_PropagaErroresDelBackend(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMap[entity.Customer](failingBackend{kv.NewMemory()}, kv.BucketCustomers)

	_, _, err := m.Get(ctx, "x")
	assert.ErrorIs(t, err, errBoom)
	_, err = m.Values(ctx)
	assert.ErrorIs(t, err, errBoom)
}

func TestMap_JSONCorrupto(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Put(ctx, kv.BucketCustomers, "x", []byte("{no-json")))

	_, _, err := kv.NewMap[entity.Customer](mem, kv.BucketCustomers).Get(ctx, "x")
	assert.Error(t, err)
}

// indexedBackend simula un backend con filtro y total nativos.
type indexedBackend struct {
	kv.Backend
	scannedBucket string
	scannedID     string
	totalBucket   string
}

func (b *indexedBackend) ScanByCustomer(_ context.Context, bucket, customerID string) ([][]byte, error) {
	b.scannedBucket, b.scannedID = bucket, customerID
	return [][]byte{[]byte(`{"id":"i-1","customer_id":"c-1"}`)}, nil
}

func (b *indexedBackend) PurchaseTotal(_ context.Context, bucket, _ string) (decimal.Decimal, error) {
	b.totalBucket = bucket
	return decimal.RequireFromString("99.99"), nil
}

func TestMap_UsaCapacidadesDelBackend(t *testing.T) {
	ctx := context.Background()
	b := &indexedBackend{Backend: kv.NewMemory()}

	got, err := kv.NewMap[entity.Interaction](b, kv.BucketInteractions).ValuesByCustomer(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i-1", got[0].ID)
	assert.Equal(t, kv.BucketInteractions, b.scannedBucket)
	assert.Equal(t, "c-1", b.scannedID)

	total, err := kv.NewPurchaseMap(b).TotalForCustomer(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, kv.BucketPurchases, b.totalBucket)
}

func TestMap_ValuesByCustomerSinCapacidadFiltraEnMemoria(t *testing.T) {
	ctx := context.Background()
	purchases := kv.NewPurchaseMap(kv.NewMemory())
	require.NoError(t, purchases.Insert(ctx, "p-1", entity.Purchase{ID: "p-1", CustomerID: "c-1"}))
	require.NoError(t, purchases.Insert(ctx, "p-2", entity.Purchase{ID: "p-2", CustomerID: "c-2"}))

	got, err := purchases.ValuesByCustomer(ctx, "c-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-2", got[0].ID)
}
