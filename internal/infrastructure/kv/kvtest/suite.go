// Package kvtest contiene la batería de pruebas común a todos los kv.Backend.
package kvtest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
)

// RunBackendSuite ejecuta la batería contra backends creados por newBackend.
// Cada subtest recibe un backend nuevo (o un bucket aislado).
func RunBackendSuite(t *testing.T, newBackend func(t *testing.T) kv.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetInexistente", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(ctx, kv.BucketCustomers, "nope")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("PutGetReemplaza", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, kv.BucketCustomers, "a", []byte(`{"v":1}`)))
		require.NoError(t, b.Put(ctx, kv.BucketCustomers, "a", []byte(`{"v":2}`)))

		got, err := b.Get(ctx, kv.BucketCustomers, "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("BucketsAislados", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Put(ctx, kv.BucketCustomers, "x", []byte(`{"c":true}`)))
		_, err := b.Get(ctx, kv.BucketPurchases, "x")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)

		vals, err := b.Scan(ctx, kv.BucketInteractions)
		require.NoError(t, err)
		assert.Empty(t, vals)
	})

	t.Run("DeleteInexistente", func(t *testing.T) {
		b := newBackend(t)
		assert.ErrorIs(t, b.Delete(ctx, kv.BucketPurchases, "nope"), kv.ErrKeyNotFound)
	})

	t.Run("DeleteYScanOrdenado", func(t *testing.T) {
		b := newBackend(t)
		for _, k := range []string{"c", "a", "b"} {
			require.NoError(t, b.Put(ctx, kv.BucketInteractions, k, []byte(`"`+k+`"`)))
		}
		require.NoError(t, b.Delete(ctx, kv.BucketInteractions, "b"))

		vals, err := b.Scan(ctx, kv.BucketInteractions)
		require.NoError(t, err)
		require.Len(t, vals, 2)
		assert.JSONEq(t, `"a"`, string(vals[0]))
		assert.JSONEq(t, `"c"`, string(vals[1]))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newBackend(t).Ping(ctx))
	})
}

// RunCustomerQuerySuite verifica ValuesByCustomer y TotalForCustomer sobre el
// backend, use o no sus capacidades opcionales (CustomerScanner, PurchaseTotaler).
func RunCustomerQuerySuite(t *testing.T, newBackend func(t *testing.T) kv.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("ValuesByCustomer", func(t *testing.T) {
		b := newBackend(t)
		interactions := kv.NewMap[entity.Interaction](b, kv.BucketInteractions)
		for _, i := range []entity.Interaction{
			{ID: "i-3", CustomerID: "c-1", Status: "Open"},
			{ID: "i-1", CustomerID: "c-1", Status: "Closed"},
			{ID: "i-2", CustomerID: "c-2", Status: "Open"},
		} {
			require.NoError(t, interactions.Insert(ctx, i.ID, i))
		}

		got, err := interactions.ValuesByCustomer(ctx, "c-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "i-1", got[0].ID)
		assert.Equal(t, "i-3", got[1].ID)

		none, err := interactions.ValuesByCustomer(ctx, "c-9")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("TotalForCustomer", func(t *testing.T) {
		b := newBackend(t)
		purchases := kv.NewPurchaseMap(b)
		for _, p := range []entity.Purchase{
			{ID: "p-1", CustomerID: "c-1", Quantity: decimal.NewFromInt(2), Price: decimal.RequireFromString("10.50")},
			{ID: "p-2", CustomerID: "c-1", Quantity: decimal.RequireFromString("0.5"), Price: decimal.RequireFromString("3.3")},
			{ID: "p-3", CustomerID: "c-2", Quantity: decimal.NewFromInt(100), Price: decimal.NewFromInt(100)},
		} {
			require.NoError(t, purchases.Insert(ctx, p.ID, p))
		}

		total, err := purchases.TotalForCustomer(ctx, "c-1")
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("22.65")), "total=%s", total)

		zero, err := purchases.TotalForCustomer(ctx, "c-9")
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
	})
}
