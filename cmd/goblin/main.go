// cmd/goblin/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eneba-loot-goblin/application/pipeline"
	"eneba-loot-goblin/internal/config"
	"eneba-loot-goblin/internal/delivery/discord"
	"eneba-loot-goblin/internal/fetcher"
	redislock "eneba-loot-goblin/internal/infrastructure/cache/redis"
	"eneba-loot-goblin/internal/infrastructure/persistence/journal"
	"eneba-loot-goblin/internal/metrics"
	"eneba-loot-goblin/internal/sampler"
	"eneba-loot-goblin/pkg/logger"
)

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(*envPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	if err := logger.InitGlobal(cfg.LogFile, cfg.LogLevel, cfg.Debug); err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}

	printConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg)
	stop()
	logger.Close()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config) int {
	deps := pipeline.Deps{
		FeedSource: cfg.FeedURL,
		Filter:     cfg.Filter,
		Fetcher:    fetcher.NewFeedFetcher(cfg.HTTPTimeout),
		Notifier:   discord.NewWebhookNotifier(cfg.DiscordWebhook, cfg.HTTPTimeout),
		Random:     sampler.CryptoSource{},
		Metrics:    metrics.NewRegistry(),
	}

	if cfg.Redis.Enabled {
		redisService := redislock.NewRedisService(cfg.Redis)
		if err := redisService.Start(ctx); err != nil {
			logger.Warn("⚠️ Redis недоступен, блокировка прогона отключена: %v", err)
		} else {
			defer closeWithWarning("Redis", redisService.Stop)
			deps.Lock = redislock.NewRunLock(redisService.GetClient(), "run", cfg.Redis.LockTTL)
		}
	}

	if cfg.Journal.Enabled {
		db, err := journal.Connect(ctx, cfg.Journal.Driver, cfg.Journal.DSN)
		if err != nil {
			logger.Warn("⚠️ Журнал прогонов недоступен: %v", err)
		} else {
			repo := journal.NewRepository(db)
			defer closeWithWarning("журнал прогонов", repo.Close)
			deps.Journal = repo
		}
	}

	if cfg.Metrics.PushgatewayURL != "" {
		deps.Pusher = metrics.NewPusher(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job)
	}

	if _, err := pipeline.NewOfferPipeline(deps).Run(ctx); err != nil {
		logger.Error("❌ Ошибка прогона: %v", err)
		return 1
	}

	logger.Info("🏁 Прогон завершен")
	return 0
}

// closeWithWarning закрывает необязательную инфраструктуру; ошибка прогон не валит
func closeWithWarning(name string, closeFn func() error) bool {
	if err := closeFn(); err != nil {
		logger.Warn("⚠️ Не удалось закрыть %s: %v", name, err)
		return false
	}
	return true
}

func printConfig(cfg *config.Config) {
	logger.Info("🔧 Конфигурация:")
	logger.Info("   Фид: %s", cfg.FeedURL)
	logger.Info("   Макс. цена: %s €", cfg.Filter.MaxPrice.String())
	logger.Info("   Макс. предложений: %d", cfg.Filter.MaxOffers)
	logger.Info("   Политика регионов: %s", cfg.Filter.RegionPolicy)
	logger.Info("   Язык: %s", cfg.Filter.Language)
	logger.Info("   Redis: %s", enabled(cfg.Redis.Enabled, cfg.RedisAddr()))
	logger.Info("   Журнал: %s", enabled(cfg.Journal.Enabled, cfg.Journal.Driver))
	logger.Info("   Pushgateway: %s", enabled(cfg.Metrics.PushgatewayURL != "", cfg.Metrics.PushgatewayURL))
}

func enabled(on bool, detail string) string {
	if !on {
		return "выкл"
	}
	return fmt.Sprintf("вкл (%s)", detail)
}
