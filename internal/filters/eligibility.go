// internal/filters/eligibility.go
package filters

import (
	"regexp"
	"strings"

	"eneba-loot-goblin/internal/types"

	"github.com/shopspring/decimal"
)

// Имена фильтров, они же причины отбраковки строк
const (
	NamePrice        = "price"
	NameMaxPrice     = "max_price"
	NameCategory     = "category"
	NameAvailability = "availability"
	NameTitle        = "title"
	NameRegion       = "region"
)

const inStock = "in stock"

var listedRegions = map[string]struct{}{
	"europe": {},
	"global": {},
}

// " VR" как отдельный токен: перед ним пробел, после - не буква и не цифра
var vrToken = regexp.MustCompile(` VR(?:[^\p{L}\p{N}]|$)`)

// PriceFilter пропускает только распознанные положительные цены
type PriceFilter struct{ stats FilterStats }

func (f *PriceFilter) Name() string { return NamePrice }

func (f *PriceFilter) Apply(c Candidate) bool {
	return f.stats.record(c.PriceParsed && c.Price.IsPositive())
}

func (f *PriceFilter) GetStats() FilterStats { return f.stats }

// MaxPriceFilter отбрасывает цены выше потолка. Цена, равная потолку, проходит.
type MaxPriceFilter struct {
	maxPrice decimal.Decimal
	stats    FilterStats
}

func NewMaxPriceFilter(maxPrice decimal.Decimal) *MaxPriceFilter {
	return &MaxPriceFilter{maxPrice: maxPrice}
}

func (f *MaxPriceFilter) Name() string { return NameMaxPrice }

func (f *MaxPriceFilter) Apply(c Candidate) bool {
	return f.stats.record(!c.Price.GreaterThan(f.maxPrice))
}

func (f *MaxPriceFilter) GetStats() FilterStats { return f.stats }

// CategoryFilter пропускает только категорию игр
type CategoryFilter struct{ stats FilterStats }

func (f *CategoryFilter) Name() string { return NameCategory }

func (f *CategoryFilter) Apply(c Candidate) bool {
	return f.stats.record(c.CategoryOK && c.CategoryID == types.GamesCategoryID)
}

func (f *CategoryFilter) GetStats() FilterStats { return f.stats }

// AvailabilityFilter пропускает только "in stock"
type AvailabilityFilter struct{ stats FilterStats }

func (f *AvailabilityFilter) Name() string { return NameAvailability }

func (f *AvailabilityFilter) Apply(c Candidate) bool {
	return f.stats.record(IsInStock(c.Availability))
}

func (f *AvailabilityFilter) GetStats() FilterStats { return f.stats }

// TitleFilter отбрасывает пустые названия, DLC и VR издания
type TitleFilter struct{ stats FilterStats }

func (f *TitleFilter) Name() string { return NameTitle }

func (f *TitleFilter) Apply(c Candidate) bool {
	return f.stats.record(c.Title != "" && !IsExcludedTitle(c.Title))
}

func (f *TitleFilter) GetStats() FilterStats { return f.stats }

// RegionFilter сверяет регион с набором {europe, global} согласно политике
type RegionFilter struct {
	policy types.RegionPolicy
	stats  FilterStats
}

func NewRegionFilter(policy types.RegionPolicy) *RegionFilter {
	return &RegionFilter{policy: policy}
}

func (f *RegionFilter) Name() string { return NameRegion }

func (f *RegionFilter) Apply(c Candidate) bool {
	listed := IsListedRegion(c.Region)
	if f.policy == types.RegionIncludeListed {
		return f.stats.record(listed)
	}
	return f.stats.record(!listed)
}

func (f *RegionFilter) GetStats() FilterStats { return f.stats }

// NewEligibilityChain собирает цепочку в порядке проверок фида
func NewEligibilityChain(cfg types.FilterConfig) *Chain {
	return NewChain(
		&PriceFilter{},
		NewMaxPriceFilter(cfg.MaxPrice),
		&CategoryFilter{},
		&AvailabilityFilter{},
		&TitleFilter{},
		NewRegionFilter(cfg.RegionPolicy),
	)
}

// IsInStock сравнивает поле наличия без учета регистра и пробелов
func IsInStock(availability string) bool {
	return strings.ToLower(strings.TrimSpace(availability)) == inStock
}

// IsExcludedTitle - "(DLC)" или отдельный токен " VR"
func IsExcludedTitle(title string) bool {
	return strings.Contains(title, "(DLC)") || vrToken.MatchString(title)
}

// IsListedRegion проверяет принадлежность региона набору {europe, global}
func IsListedRegion(region string) bool {
	_, ok := listedRegions[strings.ToLower(strings.TrimSpace(region))]
	return ok
}
