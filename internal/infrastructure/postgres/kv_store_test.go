package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
	"github.com/jhoicas/crm-api/internal/infrastructure/kv/kvtest"
	"github.com/jhoicas/crm-api/internal/infrastructure/migrations"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
)

// Requiere una base de pruebas: DATABASE_TEST_URL=postgres://...
func TestKVStore_Suite(t *testing.T) {
	dsn := os.Getenv("DATABASE_TEST_URL")
	if dsn == "" {
		t.Skip("DATABASE_TEST_URL no definido")
	}
	ctx := context.Background()

	store, pool := newStore(t, dsn)

	kvtest.RunBackendSuite(t, func(t *testing.T) kv.Backend {
		_, err := pool.Exec(ctx, `TRUNCATE kv_entries`)
		require.NoError(t, err)
		return store
	})
}

func TestKVStore_ConsultasPorCliente(t *testing.T) {
	dsn := os.Getenv("DATABASE_TEST_URL")
	if dsn == "" {
		t.Skip("DATABASE_TEST_URL no definido")
	}
	ctx := context.Background()
	store, pool := newStore(t, dsn)

	kvtest.RunCustomerQuerySuite(t, func(t *testing.T) kv.Backend {
		_, err := pool.Exec(ctx, `TRUNCATE kv_entries`)
		require.NoError(t, err)
		return store
	})

	// Total en NUMERIC: sin pérdida de precisión con decimales largos.
	_, err := pool.Exec(ctx, `TRUNCATE kv_entries`)
	require.NoError(t, err)
	purchases := kv.NewPurchaseMap(store)
	require.NoError(t, purchases.Insert(ctx, "p-1", entity.Purchase{
		ID:         "p-1",
		CustomerID: "c-1",
		Quantity:   decimal.RequireFromString("3"),
		Price:      decimal.RequireFromString("0.1000000000000000000001"),
	}))
	total, err := store.PurchaseTotal(ctx, kv.BucketPurchases, "c-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("0.3000000000000000000003")), "total=%s", total)
}

func TestKVStore_DBEsUnaSolaInstancia(t *testing.T) {
	dsn := os.Getenv("DATABASE_TEST_URL")
	if dsn == "" {
		t.Skip("DATABASE_TEST_URL no definido")
	}
	store, _ := newStore(t, dsn)
	assert.Same(t, store.DB(), store.DB())
}

func newStore(t *testing.T, dsn string) (*postgres.KVStore, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pool, err := postgres.NewPoolFromURL(ctx, dsn)
	require.NoError(t, err)
	store := postgres.NewKVStore(pool)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, migrations.Up(ctx, store.DB(), migrations.Postgres, zerolog.Nop()))
	return store, pool
}
