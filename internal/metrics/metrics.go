// internal/metrics/metrics.go
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry - метрики одного прогона
type Registry struct {
	reg *prometheus.Registry

	FeedRows       prometheus.Counter
	RowsSkipped    *prometheus.CounterVec
	OffersEligible prometheus.Gauge
	OffersSelected prometheus.Gauge
	Deliveries     *prometheus.CounterVec
	RunDuration    prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

// NewRegistry создает изолированный реестр метрик
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	feedRows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goblin_feed_rows_total",
		Help: "Data rows read from the feed.",
	})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "goblin_feed_rows_skipped_total",
		Help: "Feed rows rejected, by first failed check.",
	}, []string{"reason"})
	eligible := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goblin_offers_eligible",
		Help: "Offers that passed every check.",
	})
	selected := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goblin_offers_selected",
		Help: "Offers included in the notification.",
	})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "goblin_delivery_total",
		Help: "Webhook deliveries by result.",
	}, []string{"result"})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goblin_run_duration_seconds",
		Help: "Wall time of the last run.",
	})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goblin_last_success_timestamp_seconds",
		Help: "Unix time of the last run that finished without error.",
	})

	r.MustRegister(feedRows, skipped, eligible, selected, deliveries, duration, lastSuccess)
	return &Registry{
		reg:            r,
		FeedRows:       feedRows,
		RowsSkipped:    skipped,
		OffersEligible: eligible,
		OffersSelected: selected,
		Deliveries:     deliveries,
		RunDuration:    duration,
		LastSuccess:    lastSuccess,
	}
}

// Pusher выгружает метрики в Prometheus Pushgateway
type Pusher struct {
	url string
	job string
}

// NewPusher создает выгрузчик
func NewPusher(url, job string) *Pusher {
	return &Pusher{url: url, job: job}
}

// Push отправляет содержимое реестра, заменяя прежние значения группы job
func (p *Pusher) Push(ctx context.Context, r *Registry) error {
	if err := push.New(p.url, p.job).Gatherer(r.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", p.url, err)
	}
	return nil
}
