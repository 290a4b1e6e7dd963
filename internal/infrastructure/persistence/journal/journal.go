// internal/infrastructure/persistence/journal/journal.go
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RunRecord - итог одного прогона. Предложения не сохраняются.
type RunRecord struct {
	ID             string    `db:"id" json:"id"`
	StartedAt      time.Time `db:"started_at" json:"started_at"`
	FinishedAt     time.Time `db:"finished_at" json:"finished_at"`
	RowsTotal      int       `db:"rows_total" json:"rows_total"`
	RowsAccepted   int       `db:"rows_accepted" json:"rows_accepted"`
	RowsSkipped    int       `db:"rows_skipped" json:"rows_skipped"`
	OffersSelected int       `db:"offers_selected" json:"offers_selected"`
	HeaderValid    bool      `db:"header_valid" json:"header_valid"`
	Delivered      bool      `db:"delivered" json:"delivered"`
	ErrorText      string    `db:"error_text" json:"error_text"`
}

// Repository пишет и читает журнал прогонов
type Repository struct {
	db *sqlx.DB
}

// NewRepository создает репозиторий
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Record сохраняет запись о прогоне
func (r *Repository) Record(ctx context.Context, rec RunRecord) error {
	query := `
	INSERT INTO goblin_runs (
		id, started_at, finished_at, rows_total, rows_accepted, rows_skipped,
		offers_selected, header_valid, delivered, error_text
	) VALUES (
		:id, :started_at, :finished_at, :rows_total, :rows_accepted, :rows_skipped,
		:offers_selected, :header_valid, :delivered, :error_text
	)`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to record run %s: %w", rec.ID, err)
	}
	return nil
}

// Recent возвращает последние прогоны, новые первыми
func (r *Repository) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var runs []RunRecord
	query := r.db.Rebind(`
	SELECT id, started_at, finished_at, rows_total, rows_accepted, rows_skipped,
	       offers_selected, header_valid, delivered, error_text
	FROM goblin_runs
	ORDER BY started_at DESC
	LIMIT ?`)
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Close закрывает соединение
func (r *Repository) Close() error {
	return r.db.Close()
}
