package notification

import (
	"testing"

	"eneba-loot-goblin/internal/types"

	"github.com/shopspring/decimal"
)

func cfg(lang string) types.FilterConfig {
	return types.FilterConfig{
		MaxPrice:  decimal.RequireFromString("20"),
		MaxOffers: 3,
		Language:  lang,
	}
}

func offer(title, price, image, url string) types.Offer {
	return types.Offer{
		Title:       title,
		Price:       decimal.RequireFromString(price),
		ImageURL:    image,
		URL:         url,
		IsAvailable: true,
		CategoryID:  types.GamesCategoryID,
	}
}

func TestBuildDescription(t *testing.T) {
	offers := []types.Offer{
		offer("Celeste", "4.5", "http://img/celeste", ""),
		offer("Hades", "12.99", "", "http://link/hades"),
	}

	doc := Build(offers, cfg("en"))

	want := "- **Celeste**: 4.50 €\n- **Hades**: 12.99 € -- [Link](http://link/hades)"
	if doc.Description != want {
		t.Fatalf("Description:\ngot=%q\nwant=%q", doc.Description, want)
	}
	if doc.Title != "Low prices under 20 €" {
		t.Fatalf("Title: got=%q", doc.Title)
	}
}

func TestBuildPicksLastImage(t *testing.T) {
	offers := []types.Offer{
		offer("A", "1", "http://img/a", ""),
		offer("B", "2", "http://img/b", ""),
		offer("C", "3", "", ""),
	}
	doc := Build(offers, cfg("en"))
	if doc.ImageURL != "http://img/b" {
		t.Fatalf("ImageURL: got=%q want=http://img/b", doc.ImageURL)
	}

	doc = Build([]types.Offer{offer("C", "3", "", "")}, cfg("en"))
	if doc.HasImage() {
		t.Fatalf("expected no image, got %q", doc.ImageURL)
	}
}

func TestBuildDefaultsToGreek(t *testing.T) {
	c := cfg("")
	c.MaxPrice = decimal.RequireFromString("12.5")
	doc := Build(nil, c)
	if doc.Title != "Χαμηλές τιμές κάτω από 12.5 €" {
		t.Fatalf("Title: got=%q", doc.Title)
	}
	if doc.Description != "" {
		t.Fatalf("Description: got=%q want empty", doc.Description)
	}
}

func TestBuildIsPure(t *testing.T) {
	offers := []types.Offer{
		offer("A", "1.1", "http://img/a", "http://a"),
		offer("B", "2.2", "", "http://b"),
	}
	first := Build(offers, cfg("el"))
	second := Build(offers, cfg("el"))
	if first != second {
		t.Fatalf("Build is not deterministic:\n%+v\n%+v", first, second)
	}
}
