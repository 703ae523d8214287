// Package sqlite implementa kv.Backend sobre un archivo SQLite (driver modernc, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
)

var _ kv.Backend = (*KVStore)(nil)

// KVStore backend clave-valor sobre la tabla kv_entries.
type KVStore struct {
	db *sql.DB
}

// Open abre (o crea) el archivo y verifica la conexión. El esquema se aplica aparte con migrations.Up.
func Open(ctx context.Context, path string) (*KVStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un solo escritor: SQLite serializa las escrituras de todos modos.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &KVStore{db: db}, nil
}

// DB expone la conexión para migraciones.
func (s *KVStore) DB() *sql.DB {
	return s.db
}

// Get devuelve el valor guardado o kv.ErrKeyNotFound.
func (s *KVStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE bucket = ? AND key = ?`, bucket, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv entry: %w", err)
	}
	return raw, nil
}

// Put inserta o reemplaza la entrada.
func (s *KVStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (bucket, key, value, updated_at)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (bucket, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, bucket, key, value); err != nil {
		return fmt.Errorf("put kv entry: %w", err)
	}
	return nil
}

// Delete elimina la entrada; kv.ErrKeyNotFound si no existía.
func (s *KVStore) Delete(ctx context.Context, bucket, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE bucket = ? AND key = ?`, bucket, key)
	if err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	if n == 0 {
		return kv.ErrKeyNotFound
	}
	return nil
}

// Scan devuelve los valores del bucket ordenados por clave (BINARY, orden de bytes).
func (s *KVStore) Scan(ctx context.Context, bucket string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM kv_entries WHERE bucket = ? ORDER BY key`, bucket,
	)
	if err != nil {
		return nil, fmt.Errorf("scan kv entries: %w", err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan kv row: %w", err)
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan kv rows: %w", err)
	}
	return out, nil
}

// Ping verifica la conexión.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close cierra la base.
func (s *KVStore) Close() error {
	return s.db.Close()
}
