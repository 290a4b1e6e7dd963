// internal/notification/formatter.go
package notification

import (
	"fmt"
	"strings"

	"eneba-loot-goblin/internal/types"
)

// Document - готовое к отправке уведомление
type Document struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// HasImage сообщает, выбрана ли картинка
func (d Document) HasImage() bool {
	return d.ImageURL != ""
}

type locale struct {
	titleFormat string
	linkLabel   string
}

var locales = map[string]locale{
	"el": {titleFormat: "Χαμηλές τιμές κάτω από %s €", linkLabel: "Link"},
	"en": {titleFormat: "Low prices under %s €", linkLabel: "Link"},
}

const defaultLocale = "el"

func localeFor(lang string) locale {
	if l, ok := locales[lang]; ok {
		return l
	}
	return locales[defaultLocale]
}

// FormatLine форматирует одну строку описания
func FormatLine(offer types.Offer, linkLabel string) string {
	line := fmt.Sprintf("- **%s**: %s €", offer.Title, offer.Price.StringFixed(2))
	if offer.URL != "" {
		line += fmt.Sprintf(" -- [%s](%s)", linkLabel, offer.URL)
	}
	return line
}

// Build собирает уведомление из упорядоченного списка предложений.
// Картинка берется у последнего предложения, у которого она есть.
func Build(offers []types.Offer, cfg types.FilterConfig) Document {
	loc := localeFor(cfg.Language)

	lines := make([]string, 0, len(offers))
	imageURL := ""
	for _, offer := range offers {
		lines = append(lines, FormatLine(offer, loc.linkLabel))
		if offer.ImageURL != "" {
			imageURL = offer.ImageURL
		}
	}

	return Document{
		Title:       fmt.Sprintf(loc.titleFormat, cfg.MaxPrice.String()),
		Description: strings.Join(lines, "\n"),
		ImageURL:    imageURL,
	}
}
