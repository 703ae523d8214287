package redis_test

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
	"github.com/jhoicas/crm-api/internal/infrastructure/kv/kvtest"
	crmredis "github.com/jhoicas/crm-api/internal/infrastructure/redis"
)

var seq atomic.Int64

// newClient requiere un Redis de pruebas: REDIS_TEST_ADDR=localhost:6379
func newClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return rdb
}

// newStore usa un prefijo único y borra sus hashes al terminar.
func newStore(t *testing.T, rdb *goredis.Client) (*crmredis.KVStore, string) {
	t.Helper()
	prefix := fmt.Sprintf("crm-test-%d-%d", os.Getpid(), seq.Add(1))
	t.Cleanup(func() {
		ctx := context.Background()
		for _, b := range []string{kv.BucketCustomers, kv.BucketInteractions, kv.BucketPurchases} {
			rdb.Del(ctx, prefix+":"+b)
		}
	})
	return crmredis.New(rdb, prefix), prefix
}

func TestKVStore_Suite(t *testing.T) {
	rdb := newClient(t)
	t.Cleanup(func() { _ = rdb.Close() })

	kvtest.RunBackendSuite(t, func(t *testing.T) kv.Backend {
		store, _ := newStore(t, rdb)
		return store
	})
}

func TestKVStore_ConsultasPorCliente(t *testing.T) {
	rdb := newClient(t)
	t.Cleanup(func() { _ = rdb.Close() })

	kvtest.RunCustomerQuerySuite(t, func(t *testing.T) kv.Backend {
		store, _ := newStore(t, rdb)
		return store
	})
}

func TestKVStore_UnHashPorBucket(t *testing.T) {
	ctx := context.Background()
	rdb := newClient(t)
	t.Cleanup(func() { _ = rdb.Close() })
	store, prefix := newStore(t, rdb)

	require.NoError(t, store.Put(ctx, kv.BucketCustomers, "c1", []byte(`{"id":"c1"}`)))
	require.NoError(t, store.Put(ctx, kv.BucketCustomers, "c2", []byte(`{"id":"c2"}`)))

	n, err := rdb.HLen(ctx, prefix+":"+kv.BucketCustomers).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	vals, err := store.Scan(ctx, kv.BucketCustomers)
	require.NoError(t, err)
	assert.Len(t, vals, 2)
}
