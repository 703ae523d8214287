// Package migrations aplica el esquema SQL embebido con goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Dialectos soportados; el valor es también el directorio embebido.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// TableName tabla de control de versiones de goose.
const TableName = "schema_migrations"

// goose guarda dialecto, FS y logger en estado global.
var mu sync.Mutex

// Up aplica las migraciones pendientes del dialecto indicado.
func Up(ctx context.Context, db *sql.DB, dialect string, log zerolog.Logger) error {
	gooseDialect, err := toGooseDialect(dialect)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedded)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&zerologGooseLogger{log: log.With().Str("component", "migrations").Logger()})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migrations: dialecto %s: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, dialect); err != nil {
		return fmt.Errorf("migrations: up %s: %w", dialect, err)
	}
	return nil
}

// Version devuelve la versión aplicada del esquema.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	gooseDialect, err := toGooseDialect(dialect)
	if err != nil {
		return 0, err
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return 0, fmt.Errorf("migrations: dialecto %s: %w", dialect, err)
	}
	return goose.GetDBVersionContext(ctx, db)
}

func toGooseDialect(dialect string) (string, error) {
	switch dialect {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("migrations: dialecto no soportado %q", dialect)
	}
}

// zerologGooseLogger implementa goose.Logger sobre zerolog.
type zerologGooseLogger struct {
	log zerolog.Logger
}

func (l *zerologGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

// Fatalf no termina el proceso; el error también llega al llamador.
func (l *zerologGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}
