package sampler

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"eneba-loot-goblin/internal/types"

	"github.com/shopspring/decimal"
)

func makeOffers(prices ...string) []types.Offer {
	offers := make([]types.Offer, 0, len(prices))
	for i, p := range prices {
		offers = append(offers, types.Offer{
			Title:       fmt.Sprintf("game-%d", i),
			Price:       decimal.RequireFromString(p),
			IsAvailable: true,
			CategoryID:  types.GamesCategoryID,
		})
	}
	return offers
}

func seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestSelectSubsetSize(t *testing.T) {
	offers := makeOffers("5", "1", "3", "9", "2")
	for _, limit := range []int{-1, 0, 1, 3, 5, 8} {
		got := SelectSubset(offers, limit, seeded(1))
		want := min(max(0, limit), len(offers))
		if len(got) != want {
			t.Fatalf("SelectSubset(limit=%d): got=%d want=%d", limit, len(got), want)
		}
	}
}

func TestSelectSubsetEmptyInput(t *testing.T) {
	got := SelectSubset(nil, 3, seeded(1))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSelectSubsetSortedByPrice(t *testing.T) {
	offers := makeOffers("19.99", "0.99", "7.50", "7.49", "12", "3", "15.10", "1.01", "8", "4.44")
	for seed := uint64(0); seed < 50; seed++ {
		got := SelectSubset(offers, 4, seeded(seed))
		for i := 1; i < len(got); i++ {
			if got[i].Price.LessThan(got[i-1].Price) {
				t.Fatalf("seed %d: not sorted at %d: %s < %s", seed, i, got[i].Price, got[i-1].Price)
			}
		}
	}
}

func TestSelectSubsetDoesNotMutateInput(t *testing.T) {
	offers := makeOffers("5", "4", "3", "2", "1")
	before := make([]string, len(offers))
	for i, o := range offers {
		before[i] = o.Title
	}

	SelectSubset(offers, 3, seeded(42))

	for i, o := range offers {
		if o.Title != before[i] {
			t.Fatalf("input mutated at %d: got=%s want=%s", i, o.Title, before[i])
		}
	}
}

func TestSelectSubsetNoDuplicates(t *testing.T) {
	offers := makeOffers("1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	got := SelectSubset(offers, 10, seeded(3))
	seen := make(map[string]bool)
	for _, o := range got {
		if seen[o.Title] {
			t.Fatalf("duplicate offer %s", o.Title)
		}
		seen[o.Title] = true
	}
}

func TestSelectSubsetUniformSelection(t *testing.T) {
	offers := makeOffers("1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	const trials = 30000
	counts := make(map[string]int)
	src := seeded(2024)

	for i := 0; i < trials; i++ {
		for _, o := range SelectSubset(offers, 3, src) {
			counts[o.Title]++
		}
	}

	// Каждое предложение ожидается в 3/10 прогонов
	expected := float64(trials) * 3 / 10
	for _, o := range offers {
		got := float64(counts[o.Title])
		if got < expected*0.95 || got > expected*1.05 {
			t.Fatalf("%s selected %v times, expected about %v", o.Title, got, expected)
		}
	}
}

func TestCryptoSourceRange(t *testing.T) {
	var src CryptoSource
	for i := 0; i < 1000; i++ {
		if v := src.IntN(7); v < 0 || v >= 7 {
			t.Fatalf("IntN(7) out of range: %d", v)
		}
	}
	got := SelectSubset(makeOffers("3", "1", "2"), 2, src)
	if len(got) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(got))
	}
}
