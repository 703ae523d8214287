package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
)

var (
	_ kv.Backend         = (*KVStore)(nil)
	_ kv.CustomerScanner = (*KVStore)(nil)
	_ kv.PurchaseTotaler = (*KVStore)(nil)
)

// KVStore backend clave-valor sobre la tabla kv_entries (ver migraciones).
type KVStore struct {
	pool *pgxpool.Pool

	dbOnce sync.Once
	db     *sql.DB
}

// NewKVStore construye el backend. El esquema debe estar migrado.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}

// DB expone el pool como *sql.DB para goose. Siempre devuelve la misma
// instancia; Close la cierra.
func (s *KVStore) DB() *sql.DB {
	s.dbOnce.Do(func() {
		s.db = stdlib.OpenDBFromPool(s.pool)
	})
	return s.db
}

// Get devuelve el JSON guardado o kv.ErrKeyNotFound.
func (s *KVStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var raw string
	err := s.pool.QueryRow(ctx,
		`SELECT value::text FROM kv_entries WHERE bucket = $1 AND key = $2`,
		bucket, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv entry: %w", err)
	}
	return []byte(raw), nil
}

// Put inserta o reemplaza la entrada.
func (s *KVStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (bucket, key, value, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (bucket, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.pool.Exec(ctx, query, bucket, key, string(value)); err != nil {
		return fmt.Errorf("put kv entry: %w", err)
	}
	return nil
}

// Delete elimina la entrada; kv.ErrKeyNotFound si no existía.
func (s *KVStore) Delete(ctx context.Context, bucket, key string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM kv_entries WHERE bucket = $1 AND key = $2`, bucket, key)
	if err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return kv.ErrKeyNotFound
	}
	return nil
}

// Scan devuelve los valores del bucket ordenados por clave (orden de bytes).
func (s *KVStore) Scan(ctx context.Context, bucket string) ([][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT value::text FROM kv_entries WHERE bucket = $1 ORDER BY key COLLATE "C"`,
		bucket,
	)
	if err != nil {
		return nil, fmt.Errorf("scan kv entries: %w", err)
	}
	return collectValues(rows)
}

// ScanByCustomer devuelve los valores del bucket con ese customer_id, ordenados
// por clave. El filtro usa el índice idx_kv_entries_customer.
func (s *KVStore) ScanByCustomer(ctx context.Context, bucket, customerID string) ([][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT value::text FROM kv_entries
		 WHERE bucket = $1 AND value->>'customer_id' = $2
		 ORDER BY key COLLATE "C"`,
		bucket, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("scan kv entries por cliente: %w", err)
	}
	return collectValues(rows)
}

// PurchaseTotal suma quantity * price en NUMERIC; 0 si el cliente no tiene compras.
func (s *KVStore) PurchaseTotal(ctx context.Context, bucket, customerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM((value->>'quantity')::numeric * (value->>'price')::numeric), 0)
		 FROM kv_entries
		 WHERE bucket = $1 AND value->>'customer_id' = $2`,
		bucket, customerID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar compras: %w", err)
	}
	return total, nil
}

func collectValues(rows pgx.Rows) ([][]byte, error) {
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan kv row: %w", err)
		}
		out = append(out, []byte(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan kv rows: %w", err)
	}
	return out, nil
}

// Ping verifica la conexión.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close cierra el *sql.DB de DB (si se pidió) y luego el pool.
func (s *KVStore) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	s.pool.Close()
	return err
}
