package filters

import (
	"testing"

	"eneba-loot-goblin/internal/types"

	"github.com/shopspring/decimal"
)

func eligible() Candidate {
	return Candidate{
		Title:        "Hollow Knight",
		Price:        decimal.RequireFromString("9.99"),
		PriceParsed:  true,
		Availability: "in stock",
		CategoryID:   types.GamesCategoryID,
		CategoryOK:   true,
		Region:       "united states",
	}
}

func testConfig(policy types.RegionPolicy) types.FilterConfig {
	return types.FilterConfig{
		MaxPrice:     decimal.RequireFromString("20"),
		MaxOffers:    3,
		RegionPolicy: policy,
	}
}

func TestChainRejectsWithReason(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Candidate)
		reason string
	}{
		{"unparsed price", func(c *Candidate) { c.PriceParsed = false }, NamePrice},
		{"zero price", func(c *Candidate) { c.Price = decimal.Zero }, NamePrice},
		{"negative price", func(c *Candidate) { c.Price = decimal.RequireFromString("-1") }, NamePrice},
		{"above ceiling", func(c *Candidate) { c.Price = decimal.RequireFromString("20.01") }, NameMaxPrice},
		{"category unparsed", func(c *Candidate) { c.CategoryOK = false }, NameCategory},
		{"other category", func(c *Candidate) { c.CategoryID = 1 }, NameCategory},
		{"out of stock", func(c *Candidate) { c.Availability = "out of stock" }, NameAvailability},
		{"dlc", func(c *Candidate) { c.Title = "Witcher 3 (DLC)" }, NameTitle},
		{"vr", func(c *Candidate) { c.Title = "Half-Life Alyx VR" }, NameTitle},
		{"empty title", func(c *Candidate) { c.Title = "" }, NameTitle},
		{"listed region", func(c *Candidate) { c.Region = " Europe " }, NameRegion},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := eligible()
			tc.mutate(&c)
			ok, reason := NewEligibilityChain(testConfig(types.RegionExcludeListed)).Apply(c)
			if ok {
				t.Fatalf("expected rejection")
			}
			if reason != tc.reason {
				t.Fatalf("reason: got=%s want=%s", reason, tc.reason)
			}
		})
	}
}

func TestChainAcceptsPriceAtCeiling(t *testing.T) {
	c := eligible()
	c.Price = decimal.RequireFromString("20.00")
	if ok, reason := NewEligibilityChain(testConfig(types.RegionExcludeListed)).Apply(c); !ok {
		t.Fatalf("price equal to ceiling rejected by %s", reason)
	}
}

func TestRegionPolicy(t *testing.T) {
	c := eligible()
	c.Region = "GLOBAL"

	if ok, _ := NewEligibilityChain(testConfig(types.RegionExcludeListed)).Apply(c); ok {
		t.Fatalf("exclude-listed must reject listed region")
	}
	if ok, _ := NewEligibilityChain(testConfig(types.RegionIncludeListed)).Apply(c); !ok {
		t.Fatalf("include-listed must accept listed region")
	}

	c.Region = "north america"
	if ok, _ := NewEligibilityChain(testConfig(types.RegionIncludeListed)).Apply(c); ok {
		t.Fatalf("include-listed must reject unlisted region")
	}
}

func TestIsExcludedTitle(t *testing.T) {
	cases := map[string]bool{
		"Beat Saber VR":            true,
		"Beat Saber VR Edition":    true,
		"Skyrim VR (PC)":           true,
		"Minecraft (DLC)":          true,
		"VRChat Plus":              false,
		"Nova VRoom":               false,
		"Overwatch":                false,
		"Minecraft DLC":            false,
		"Superhot VR-ready bundle": true,
		"Beat Saber\tVR":           false,
		"Beat Saber\nVR":           false,
	}
	for title, want := range cases {
		if got := IsExcludedTitle(title); got != want {
			t.Fatalf("IsExcludedTitle(%q): got=%v want=%v", title, got, want)
		}
	}
}

func TestIsInStock(t *testing.T) {
	for _, v := range []string{"in stock", " IN STOCK ", "In Stock"} {
		if !IsInStock(v) {
			t.Fatalf("IsInStock(%q) = false", v)
		}
	}
	for _, v := range []string{"", "instock", "in stock soon", "out of stock"} {
		if IsInStock(v) {
			t.Fatalf("IsInStock(%q) = true", v)
		}
	}
}

func TestChainStats(t *testing.T) {
	chain := NewEligibilityChain(testConfig(types.RegionExcludeListed))
	chain.Apply(eligible())
	bad := eligible()
	bad.Availability = "preorder"
	chain.Apply(bad)

	stats := chain.GetStats()
	if got := stats[NameAvailability]; got.TotalProcessed != 2 || got.FilteredOut != 1 {
		t.Fatalf("availability stats: %+v", got)
	}
	if got := stats[NameTitle]; got.TotalProcessed != 1 || got.PassedThrough != 1 {
		t.Fatalf("title stats: %+v", got)
	}
}
