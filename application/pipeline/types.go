// application/pipeline/types.go
package pipeline

import (
	"context"
	"time"

	"eneba-loot-goblin/internal/feed"
	"eneba-loot-goblin/internal/infrastructure/persistence/journal"
	"eneba-loot-goblin/internal/metrics"
	"eneba-loot-goblin/internal/notification"
	"eneba-loot-goblin/internal/types"
)

// FeedFetcher загружает текст фида
type FeedFetcher interface {
	Fetch(ctx context.Context, source string) (string, error)
}

// Notifier доставляет уведомление
type Notifier interface {
	Name() string
	Send(ctx context.Context, doc notification.Document) error
}

// RunLock защищает от параллельных прогонов
type RunLock interface {
	Acquire(ctx context.Context, token string) error
	Release(ctx context.Context, token string) error
}

// RunJournal сохраняет итоги прогонов
type RunJournal interface {
	Record(ctx context.Context, rec journal.RunRecord) error
}

// MetricsPusher выгружает метрики
type MetricsPusher interface {
	Push(ctx context.Context, r *metrics.Registry) error
}

// Outcome - чем закончился прогон
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeNoOffers  Outcome = "no_offers"
	OutcomeLockHeld  Outcome = "lock_held"
	OutcomeFailed    Outcome = "failed"
)

// RunReport - итог прогона
type RunReport struct {
	RunID      string                 `json:"run_id"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	Outcome    Outcome                `json:"outcome"`
	Parse      feed.Report            `json:"parse"`
	Selected   []types.Offer          `json:"selected"`
	Document   *notification.Document `json:"document,omitempty"`
	Err        error                  `json:"-"`
}

// Delivered сообщает, ушло ли уведомление
func (r *RunReport) Delivered() bool {
	return r.Outcome == OutcomeDelivered
}
