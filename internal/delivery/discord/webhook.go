// internal/delivery/discord/webhook.go
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"eneba-loot-goblin/internal/notification"
	"eneba-loot-goblin/pkg/logger"
)

const maxErrorBody = 512

// Image - картинка embed
type Image struct {
	URL string `json:"url"`
}

// Embed - embed-объект Discord
type Embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       *Image `json:"image,omitempty"`
}

// Payload - тело запроса к webhook
type Payload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds"`
}

// NewPayload преобразует уведомление в формат Discord
func NewPayload(doc notification.Document) Payload {
	embed := Embed{
		Title:       doc.Title,
		Description: doc.Description,
	}
	if doc.HasImage() {
		embed.Image = &Image{URL: doc.ImageURL}
	}
	return Payload{Embeds: []Embed{embed}}
}

// WebhookNotifier отправляет уведомления в Discord webhook
type WebhookNotifier struct {
	webhookURL string
	httpClient *http.Client
	stats      map[string]interface{}
}

// NewWebhookNotifier создает нотификатор
func NewWebhookNotifier(webhookURL string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		stats: map[string]interface{}{
			"sent":           0,
			"failed":         0,
			"last_sent_time": time.Time{},
			"type":           "discord",
		},
	}
}

// Name возвращает имя
func (n *WebhookNotifier) Name() string {
	return "discord"
}

// GetStats возвращает статистику
func (n *WebhookNotifier) GetStats() map[string]interface{} {
	return n.stats
}

// Send отправляет уведомление. Повторных попыток нет.
func (n *WebhookNotifier) Send(ctx context.Context, doc notification.Document) error {
	if err := n.post(ctx, NewPayload(doc)); err != nil {
		n.stats["failed"] = n.stats["failed"].(int) + 1
		return err
	}

	n.stats["sent"] = n.stats["sent"].(int) + 1
	n.stats["last_sent_time"] = time.Now()
	return nil
}

func (n *WebhookNotifier) post(ctx context.Context, payload Payload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	logger.Debug("Discord webhook ответил %d", resp.StatusCode)
	return nil
}
