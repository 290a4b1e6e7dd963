// internal/feed/price.go
package feed

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Первое число в поле цены: "5.27 EUR", "EUR 5,27", "€5,27"
var priceToken = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// ExtractPrice находит первое число в строке и разбирает его как decimal.
// Запятая считается десятичным разделителем.
func ExtractPrice(raw string) (decimal.Decimal, bool) {
	token := priceToken.FindString(raw)
	if token == "" {
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(strings.Replace(token, ",", ".", 1))
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}
