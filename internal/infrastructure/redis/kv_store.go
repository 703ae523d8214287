// Package redis implementa kv.Backend con un hash de Redis por bucket.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
	"github.com/jhoicas/crm-api/pkg/config"
)

var _ kv.Backend = (*KVStore)(nil)

// KVStore guarda cada bucket en el hash "<prefix>:<bucket>" (campo = clave, valor = JSON).
type KVStore struct {
	rdb    goredis.UniversalClient
	prefix string
}

// New construye el backend sobre un cliente existente.
func New(rdb goredis.UniversalClient, prefix string) *KVStore {
	return &KVStore{rdb: rdb, prefix: prefix}
}

// Open crea el cliente desde la configuración y verifica la conexión.
func Open(ctx context.Context, cfg config.RedisConfig) (*KVStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return New(rdb, cfg.Prefix), nil
}

func (s *KVStore) hashKey(bucket string) string {
	if s.prefix == "" {
		return bucket
	}
	return s.prefix + ":" + bucket
}

// isRedisNil indica clave o campo inexistente.
func isRedisNil(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// Get devuelve el valor del campo o kv.ErrKeyNotFound.
func (s *KVStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	raw, err := s.rdb.HGet(ctx, s.hashKey(bucket), key).Bytes()
	if err != nil {
		if isRedisNil(err) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis hget: %w", err)
	}
	return raw, nil
}

// Put inserta o reemplaza el campo.
func (s *KVStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	if err := s.rdb.HSet(ctx, s.hashKey(bucket), key, value).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Delete elimina el campo; kv.ErrKeyNotFound si no existía.
func (s *KVStore) Delete(ctx context.Context, bucket, key string) error {
	n, err := s.rdb.HDel(ctx, s.hashKey(bucket), key).Result()
	if err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	if n == 0 {
		return kv.ErrKeyNotFound
	}
	return nil
}

// Scan lee el hash completo y lo ordena por clave; Redis no garantiza orden en HGETALL.
func (s *KVStore) Scan(ctx context.Context, bucket string) ([][]byte, error) {
	all, err := s.rdb.HGetAll(ctx, s.hashKey(bucket)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, []byte(all[k]))
	}
	return out, nil
}

// Ping verifica la conexión.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close cierra el cliente.
func (s *KVStore) Close() error {
	return s.rdb.Close()
}
