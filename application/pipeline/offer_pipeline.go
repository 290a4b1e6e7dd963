// application/pipeline/offer_pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"eneba-loot-goblin/internal/feed"
	redislock "eneba-loot-goblin/internal/infrastructure/cache/redis"
	"eneba-loot-goblin/internal/infrastructure/persistence/journal"
	"eneba-loot-goblin/internal/metrics"
	"eneba-loot-goblin/internal/notification"
	"eneba-loot-goblin/internal/sampler"
	"eneba-loot-goblin/internal/types"
	"eneba-loot-goblin/pkg/logger"

	"github.com/google/uuid"
)

// Deps - зависимости пайплайна. Lock, Journal и Pusher необязательны.
type Deps struct {
	FeedSource string
	Filter     types.FilterConfig

	Fetcher  FeedFetcher
	Notifier Notifier
	Random   sampler.Source

	Lock    RunLock
	Journal RunJournal
	Metrics *metrics.Registry
	Pusher  MetricsPusher

	Now   func() time.Time
	NewID func() string
}

// OfferPipeline - один прогон: загрузка, отбор, форматирование, отправка
type OfferPipeline struct {
	deps Deps
}

// NewOfferPipeline создает пайплайн и подставляет значения по умолчанию
func NewOfferPipeline(deps Deps) *OfferPipeline {
	if deps.Random == nil {
		deps.Random = sampler.CryptoSource{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRegistry()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.New().String() }
	}
	return &OfferPipeline{deps: deps}
}

// Run выполняет прогон. Пустой результат ошибкой не считается.
func (p *OfferPipeline) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     p.deps.NewID(),
		StartedAt: p.deps.Now(),
	}
	logger.Info("🚀 Прогон %s запущен", report.RunID)

	if p.deps.Lock != nil {
		err := p.deps.Lock.Acquire(ctx, report.RunID)
		switch {
		case errors.Is(err, redislock.ErrLockHeld):
			logger.Warn("⏳ Другой прогон уже выполняется, выходим")
			report.Outcome = OutcomeLockHeld
			report.FinishedAt = p.deps.Now()
			return report, nil
		case err != nil:
			logger.Warn("⚠️ Блокировка недоступна, продолжаем без нее: %v", err)
		default:
			defer p.release(report.RunID)
		}
	}

	err := p.execute(ctx, report)
	if err != nil {
		report.Outcome = OutcomeFailed
		report.Err = err
	}
	p.finish(ctx, report)
	return report, err
}

func (p *OfferPipeline) execute(ctx context.Context, report *RunReport) error {
	csvText, err := p.deps.Fetcher.Fetch(ctx, p.deps.FeedSource)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	offers, parseReport := feed.ParseOffers(csvText, p.deps.Filter)
	report.Parse = parseReport
	p.observeParse(parseReport)
	logger.Info("🔎 Строк в фиде: %d, подходящих: %d, отброшено: %d",
		parseReport.RowsTotal, parseReport.Accepted, parseReport.SkippedTotal())

	if len(offers) == 0 {
		logger.Info("📭 Подходящих предложений нет, уведомление не отправляется")
		report.Outcome = OutcomeNoOffers
		return nil
	}

	report.Selected = sampler.SelectSubset(offers, p.deps.Filter.MaxOffers, p.deps.Random)
	p.deps.Metrics.OffersSelected.Set(float64(len(report.Selected)))
	if len(report.Selected) == 0 {
		logger.Info("MAX_OFFERS=0, отправлять нечего")
		report.Outcome = OutcomeNoOffers
		return nil
	}

	doc := notification.Build(report.Selected, p.deps.Filter)
	report.Document = &doc

	if err := p.deps.Notifier.Send(ctx, doc); err != nil {
		p.deps.Metrics.Deliveries.WithLabelValues("error").Inc()
		return fmt.Errorf("deliver via %s: %w", p.deps.Notifier.Name(), err)
	}
	p.deps.Metrics.Deliveries.WithLabelValues("ok").Inc()

	logger.Info("📨 Отправлено предложений: %d", len(report.Selected))
	report.Outcome = OutcomeDelivered
	return nil
}

func (p *OfferPipeline) observeParse(r feed.Report) {
	p.deps.Metrics.FeedRows.Add(float64(r.RowsTotal))
	for reason, n := range r.Skipped {
		p.deps.Metrics.RowsSkipped.WithLabelValues(reason).Add(float64(n))
	}
	p.deps.Metrics.OffersEligible.Set(float64(r.Accepted))
}

// finish пишет журнал и метрики. Их сбои только логируются.
func (p *OfferPipeline) finish(ctx context.Context, report *RunReport) {
	report.FinishedAt = p.deps.Now()
	p.deps.Metrics.RunDuration.Set(report.FinishedAt.Sub(report.StartedAt).Seconds())
	if report.Err == nil {
		p.deps.Metrics.LastSuccess.Set(float64(report.FinishedAt.Unix()))
	}

	if p.deps.Journal != nil {
		if err := p.deps.Journal.Record(ctx, toRunRecord(report)); err != nil {
			logger.Warn("⚠️ Не удалось записать журнал прогона: %v", err)
		}
	}

	if p.deps.Pusher != nil {
		if err := p.deps.Pusher.Push(ctx, p.deps.Metrics); err != nil {
			logger.Warn("⚠️ Не удалось выгрузить метрики: %v", err)
		}
	}

	logger.Status(map[string]string{
		"run":      report.RunID,
		"outcome":  string(report.Outcome),
		"rows":     strconv.Itoa(report.Parse.RowsTotal),
		"eligible": strconv.Itoa(report.Parse.Accepted),
		"selected": strconv.Itoa(len(report.Selected)),
		"duration": report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String(),
	})
}

func (p *OfferPipeline) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.deps.Lock.Release(ctx, token); err != nil {
		logger.Warn("⚠️ Не удалось снять блокировку: %v", err)
	}
}

func toRunRecord(r *RunReport) journal.RunRecord {
	rec := journal.RunRecord{
		ID:             r.RunID,
		StartedAt:      r.StartedAt.UTC(),
		FinishedAt:     r.FinishedAt.UTC(),
		RowsTotal:      r.Parse.RowsTotal,
		RowsAccepted:   r.Parse.Accepted,
		RowsSkipped:    r.Parse.SkippedTotal(),
		OffersSelected: len(r.Selected),
		HeaderValid:    r.Parse.HeaderErr == nil,
		Delivered:      r.Delivered(),
	}
	if r.Err != nil {
		rec.ErrorText = r.Err.Error()
	}
	return rec
}
