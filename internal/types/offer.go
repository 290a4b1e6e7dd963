// internal/types/offer.go
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GamesCategoryID - категория "Video Games" в таксономии Google Product Category
const GamesCategoryID = 1279

// Offer - предложение, прошедшее все фильтры фида
type Offer struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	URL         string          `json:"url,omitempty"`
	IsAvailable bool            `json:"is_available"`
	CategoryID  int             `json:"category_id"`
}

// RegionPolicy определяет, как трактуется набор регионов {europe, global}
type RegionPolicy string

const (
	// RegionExcludeListed - регионы из набора отбрасываются (поведение исходного бота)
	RegionExcludeListed RegionPolicy = "exclude-listed"
	// RegionIncludeListed - проходят только регионы из набора
	RegionIncludeListed RegionPolicy = "include-listed"
)

// ParseRegionPolicy разбирает значение REGION_POLICY
func ParseRegionPolicy(s string) (RegionPolicy, bool) {
	switch RegionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case RegionExcludeListed:
		return RegionExcludeListed, true
	case RegionIncludeListed:
		return RegionIncludeListed, true
	}
	return RegionExcludeListed, false
}

// FilterConfig - параметры отбора, неизменяемы в течение прогона
type FilterConfig struct {
	MaxPrice     decimal.Decimal
	MaxOffers    int
	RegionPolicy RegionPolicy
	Language     string
}
