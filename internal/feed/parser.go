// internal/feed/parser.go
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"eneba-loot-goblin/internal/filters"
	"eneba-loot-goblin/internal/types"
	"eneba-loot-goblin/pkg/logger"
)

// ErrHeaderInvalid - заголовок отсутствует или в нем нет обязательных колонок
var ErrHeaderInvalid = errors.New("csv header is invalid")

// SkipMalformed - строка не разобрана как CSV
const SkipMalformed = "malformed"

// Колонки фида
const (
	ColumnTitle         = "original_title"
	ColumnTitleFallback = "title"
	ColumnPrice         = "price"
	ColumnAvailability  = "availability"
	ColumnCategory      = "google_product_category"
	ColumnRegion        = "region"
	ColumnImage         = "image_link"
	ColumnLink          = "link"
)

// Report - итог разбора фида
type Report struct {
	RowsTotal int            `json:"rows_total"`
	Accepted  int            `json:"accepted"`
	Skipped   map[string]int `json:"skipped"`
	DataLines int            `json:"data_lines"`
	HeaderErr error          `json:"-"`
}

// QuoteRunaway - записей заметно меньше, чем непустых строк: незакрытая кавычка
// могла поглотить хвост фида
func (r Report) QuoteRunaway() bool {
	return r.DataLines > 1 && r.RowsTotal*2 < r.DataLines
}

// SkippedTotal возвращает число отброшенных строк
func (r Report) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

type header map[string]int

func (h header) field(record []string, column string) (string, bool) {
	idx, ok := h[column]
	if !ok || idx >= len(record) {
		return "", ok
	}
	return record[idx], true
}

// ParseOffers разбирает CSV фида и возвращает строки, прошедшие все фильтры.
// Проблемы с данными не возвращаются ошибкой: результат просто короче.
func ParseOffers(csvText string, cfg types.FilterConfig) ([]types.Offer, Report) {
	report := Report{Skipped: make(map[string]int)}
	offers := make([]types.Offer, 0)

	csvText = strings.TrimPrefix(csvText, "\ufeff")
	if strings.TrimSpace(csvText) == "" {
		return offers, report
	}

	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	h, err := readHeader(r)
	if err != nil {
		report.HeaderErr = err
		logger.Warn("⚠️ Заголовок CSV не прошел проверку: %v", err)
		return offers, report
	}

	chain := filters.NewEligibilityChain(cfg)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		report.RowsTotal++
		if err != nil {
			report.Skipped[SkipMalformed]++
			logger.Debug("Строка %d пропущена: %v", report.RowsTotal, err)
			continue
		}

		candidate := buildCandidate(h, record)
		if ok, reason := chain.Apply(candidate); !ok {
			report.Skipped[reason]++
			continue
		}

		offers = append(offers, types.Offer{
			Title:       candidate.Title,
			Price:       candidate.Price,
			ImageURL:    candidate.ImageURL,
			URL:         candidate.URL,
			IsAvailable: true,
			CategoryID:  candidate.CategoryID,
		})
	}

	report.Accepted = len(offers)
	report.DataLines = countDataLines(csvText)
	if report.QuoteRunaway() {
		logger.Warn("⚠️ Разобрано записей: %d при %d непустых строках, проверьте кавычки в фиде",
			report.RowsTotal, report.DataLines)
	}
	return offers, report
}

// countDataLines считает непустые строки после заголовка
func countDataLines(text string) int {
	lines := strings.Split(text, "\n")
	n := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func readHeader(r *csv.Reader) (header, error) {
	record, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", ErrHeaderInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderInvalid, err)
	}

	h := make(header, len(record))
	for i, name := range record {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}

	if _, ok := h[ColumnTitle]; !ok {
		if idx, ok := h[ColumnTitleFallback]; ok {
			h[ColumnTitle] = idx
		}
	}

	var missing []string
	for _, column := range []string{ColumnTitle, ColumnPrice} {
		if _, ok := h[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrHeaderInvalid, strings.Join(missing, ", "))
	}
	return h, nil
}

func buildCandidate(h header, record []string) filters.Candidate {
	title, _ := h.field(record, ColumnTitle)
	rawPrice, _ := h.field(record, ColumnPrice)
	availability, _ := h.field(record, ColumnAvailability)
	rawCategory, _ := h.field(record, ColumnCategory)
	region, _ := h.field(record, ColumnRegion)
	image, _ := h.field(record, ColumnImage)
	link, _ := h.field(record, ColumnLink)

	c := filters.Candidate{
		Title:        strings.TrimSpace(title),
		RawPrice:     strings.TrimSpace(rawPrice),
		Availability: availability,
		RawCategory:  strings.TrimSpace(rawCategory),
		Region:       region,
		ImageURL:     strings.TrimSpace(image),
		URL:          link,
	}
	c.Price, c.PriceParsed = ExtractPrice(c.RawPrice)
	if id, err := strconv.Atoi(c.RawCategory); err == nil {
		c.CategoryID, c.CategoryOK = id, true
	}
	return c
}
