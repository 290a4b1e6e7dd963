// internal/fetcher/feed_fetcher.go
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"eneba-loot-goblin/pkg/logger"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptCSV      = "text/csv, */*;q=0.1"
	acceptLanguage = "en-US,en;q=0.9"
)

// FeedFetcher загружает CSV фида по HTTP или из локального файла
type FeedFetcher struct {
	httpClient *http.Client
}

// NewFeedFetcher создает загрузчик
func NewFeedFetcher(timeout time.Duration) *FeedFetcher {
	return &FeedFetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch возвращает текст фида. Источник без http-префикса читается как файл.
func (f *FeedFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(source), "http") {
		logger.Info("📂 Чтение фида из файла %s", source)
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("read feed file: %w", err)
		}
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptCSV)
	req.Header.Set("Accept-Language", acceptLanguage)
	if referer := refererFor(source); referer != "" {
		req.Header.Set("Referer", referer)
	}

	logger.Info("📡 Загрузка фида...")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}

	logger.Info("✅ Фид загружен: %d байт", len(body))
	return string(body), nil
}

// refererFor возвращает scheme://host источника
func refererFor(source string) string {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}
