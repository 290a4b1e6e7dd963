// internal/infrastructure/persistence/journal/connection.go
package journal

import (
	"context"
	"fmt"
	"time"

	"eneba-loot-goblin/pkg/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Поддерживаемые драйверы
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connect открывает соединение и создает схему журнала
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported journal driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	// Прогон пишет одну строку, большой пул не нужен
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("✅ Журнал прогонов подключен (%s)", driver)
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS goblin_runs (
		id VARCHAR(36) PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		rows_total INTEGER NOT NULL DEFAULT 0,
		rows_accepted INTEGER NOT NULL DEFAULT 0,
		rows_skipped INTEGER NOT NULL DEFAULT 0,
		offers_selected INTEGER NOT NULL DEFAULT 0,
		header_valid BOOLEAN NOT NULL DEFAULT TRUE,
		delivered BOOLEAN NOT NULL DEFAULT FALSE,
		error_text TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goblin_runs_started_at ON goblin_runs(started_at)`,
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create journal schema: %w", err)
		}
	}
	return nil
}
