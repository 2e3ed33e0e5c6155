package pricing

import (
	"math"
	"reflect"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculateThemePriceMumbaiScenario(t *testing.T) {
	got := CalculateThemePrice(8000, 50, "Mumbai", nil)

	want := PriceBreakdown{
		BasePrice:         16000,
		LocationSurcharge: 1600,
		TotalPrice:        17600,
		Taxes:             3168,
		FinalAmount:       20768,
	}

	if !approx(got.BasePrice, want.BasePrice) ||
		!approx(got.LocationSurcharge, want.LocationSurcharge) ||
		!approx(got.TotalPrice, want.TotalPrice) ||
		!approx(got.Taxes, want.Taxes) ||
		got.FinalAmount != want.FinalAmount {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
	if len(got.AddonPrices) != 0 {
		t.Fatalf("expected no addons, got %v", got.AddonPrices)
	}
}

func TestScaleForGuestsIsLinear(t *testing.T) {
	for _, g := range []int{1, 10, 25, 37, 50, 200} {
		got := ScaleForGuests(8000, g)
		want := 8000 * float64(g) / 25
		if !approx(got, want) {
			t.Errorf("guests=%d: got %v want %v", g, got, want)
		}
	}

	if ScaleForGuests(8000, 0) != 8000 || ScaleForGuests(8000, -4) != 8000 {
		t.Errorf("non-positive guest counts should use the reference headcount")
	}
}

func TestFinalAmountLaw(t *testing.T) {
	addons := []Addon{{ID: "balloons", Price: 1499}, {ID: "lights", Price: 2750.5}}
	cities := []string{"Mumbai", "Pune", "Nowhere", ""}

	for _, city := range cities {
		for _, g := range []int{5, 25, 60} {
			b := CalculateThemePrice(12345, g, city, addons)
			addonSum := b.AddonTotal()
			subtotal := b.BasePrice + addonSum + b.LocationSurcharge
			want := math.Round(subtotal + 0.18*subtotal)

			if b.FinalAmount != want {
				t.Errorf("%s/%d: final %v want %v", city, g, b.FinalAmount, want)
			}
			if !approx(b.Taxes, 0.18*subtotal) {
				t.Errorf("%s/%d: taxes %v want %v", city, g, b.Taxes, 0.18*subtotal)
			}
			if !approx(b.TotalPrice, subtotal) {
				t.Errorf("%s/%d: subtotal %v want %v", city, g, b.TotalPrice, subtotal)
			}
		}
	}
}

func TestUnlistedCityHasNoSurcharge(t *testing.T) {
	b := CalculateThemePrice(10000, 25, "Shimla", nil)
	if b.LocationSurcharge != 0 {
		t.Fatalf("expected zero surcharge, got %v", b.LocationSurcharge)
	}
	if SurchargeRate("") != 0 {
		t.Fatalf("expected zero rate for empty city")
	}
}

func TestSurchargeRateNormalizesCity(t *testing.T) {
	for _, city := range []string{"Mumbai", "  mumbai ", "MUMBAI"} {
		if SurchargeRate(city) != 0.10 {
			t.Errorf("%q: expected 0.10, got %v", city, SurchargeRate(city))
		}
	}
	if SurchargeRate("New Delhi") != 0.08 {
		t.Errorf("expected multi-word city to resolve")
	}
}

func TestPricingIsIdempotent(t *testing.T) {
	addons := []Addon{{ID: "a", Price: 500}, {ID: "b", Price: 750}}

	first := CalculateDetailedPrice("wedding", "25k-50k", 80, "Bengaluru", addons)
	second := CalculateDetailedPrice("wedding", "25k-50k", 80, "Bengaluru", addons)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output:\n%+v\n%+v", first, second)
	}
}

func TestCalculateDetailedPriceDefaults(t *testing.T) {
	b := CalculateDetailedPrice("garden-party", "no-such-range", 25, "Shimla", nil)

	if !approx(b.BasePrice, budgetBrackets[DefaultBudgetRange]) {
		t.Fatalf("expected default bracket with neutral multiplier, got %v", b.BasePrice)
	}

	wedding := CalculateDetailedPrice("Wedding", "under-10k", 50, "Shimla", nil)
	if !approx(wedding.BasePrice, 8000*1.5*2) {
		t.Fatalf("expected wedding multiplier and guest scaling, got %v", wedding.BasePrice)
	}
}

func TestAddonPricesAreSummed(t *testing.T) {
	b := CalculateThemePrice(5000, 25, "Shimla", []Addon{{ID: "x", Price: 300}, {ID: "y", Price: 200}})

	if b.AddonPrices["x"] != 300 || b.AddonPrices["y"] != 200 {
		t.Fatalf("unexpected addon map %v", b.AddonPrices)
	}
	if !approx(b.TotalPrice, 5500) {
		t.Fatalf("expected subtotal 5500, got %v", b.TotalPrice)
	}
	if b.FinalAmount != 6490 {
		t.Fatalf("expected 6490, got %v", b.FinalAmount)
	}
}

func TestDepositAmount(t *testing.T) {
	cases := []struct {
		final float64
		want  float64
	}{
		{final: 20768, want: 2000},
		{final: 6490, want: 1298},
		{final: 1500, want: 500},
		{final: 300, want: 300},
		{final: 0, want: 0},
	}

	for _, c := range cases {
		if got := DepositAmount(c.final); got != c.want {
			t.Errorf("final=%v: got %v want %v", c.final, got, c.want)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	if ToMinorUnits(20768) != 2076800 {
		t.Fatalf("unexpected paise for 20768")
	}
	if ToMinorUnits(0.29) != 29 {
		t.Fatalf("expected rounding to nearest paisa")
	}
}

func TestNormalizeOccasion(t *testing.T) {
	if got := NormalizeOccasion(" Baby Shower "); got != "baby-shower" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeOccasion("baby_shower"); got != "baby-shower" {
		t.Fatalf("got %q", got)
	}
}
