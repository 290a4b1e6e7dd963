// internal/filters/filters.go
package filters

import (
	"github.com/shopspring/decimal"
)

// Candidate - строка фида после извлечения полей, до проверки условий
type Candidate struct {
	Title        string
	RawPrice     string
	Price        decimal.Decimal
	PriceParsed  bool
	Availability string
	RawCategory  string
	CategoryID   int
	CategoryOK   bool
	Region       string
	ImageURL     string
	URL          string
}

// Filter - интерфейс фильтра
type Filter interface {
	Name() string
	Apply(c Candidate) bool
	GetStats() FilterStats
}

// FilterStats - статистика фильтра
type FilterStats struct {
	TotalProcessed int64 `json:"total_processed"`
	PassedThrough  int64 `json:"passed_through"`
	FilteredOut    int64 `json:"filtered_out"`
}

func (s *FilterStats) record(passed bool) bool {
	s.TotalProcessed++
	if passed {
		s.PassedThrough++
	} else {
		s.FilteredOut++
	}
	return passed
}

// Chain применяет фильтры по порядку и останавливается на первом отказе
type Chain struct {
	filters []Filter
}

// NewChain создает цепочку фильтров
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Apply возвращает имя отклонившего фильтра или пустую строку
func (c *Chain) Apply(candidate Candidate) (bool, string) {
	for _, f := range c.filters {
		if !f.Apply(candidate) {
			return false, f.Name()
		}
	}
	return true, ""
}

// GetStats возвращает статистику по имени фильтра
func (c *Chain) GetStats() map[string]FilterStats {
	stats := make(map[string]FilterStats, len(c.filters))
	for _, f := range c.filters {
		stats[f.Name()] = f.GetStats()
	}
	return stats
}
