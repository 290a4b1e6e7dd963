// internal/sampler/sampler.go
package sampler

import (
	"crypto/rand"
	"math/big"
	"sort"

	"eneba-loot-goblin/internal/types"
)

// Source - источник равномерных случайных индексов в [0, n)
type Source interface {
	IntN(n int) int
}

// CryptoSource берет случайность из crypto/rand
type CryptoSource struct{}

// IntN возвращает равномерное число в [0, n)
func (CryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("sampler: IntN called with non-positive n")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("sampler: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// SelectSubset выбирает min(maxOffers, len(offers)) предложений равновероятно
// без повторов и сортирует выборку по возрастанию цены. Входной слайс не меняется.
func SelectSubset(offers []types.Offer, maxOffers int, src Source) []types.Offer {
	n := min(maxOffers, len(offers))
	if n <= 0 {
		return []types.Offer{}
	}

	pool := make([]types.Offer, len(offers))
	copy(pool, offers)

	// Частичный Фишер-Йетс: перемешиваем только первые n позиций
	for i := 0; i < n; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	sample := pool[:n:n]
	sort.SliceStable(sample, func(a, b int) bool {
		return sample[a].Price.LessThan(sample[b].Price)
	})
	return sample
}
