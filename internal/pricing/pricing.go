// Package pricing computes decoration quotes. Everything here is pure: the
// same inputs always give the same breakdown.
package pricing

import (
	"math"
	"strings"
)

const (
	// ReferenceGuestCount is the headcount catalog prices are quoted for.
	ReferenceGuestCount = 25
	GSTRate             = 0.18

	DepositRate = 0.20
	MinDeposit  = 500.0
	MaxDeposit  = 2000.0
)

// Addon is a selected extra with its fixed catalog price.
type Addon struct {
	ID    string
	Price float64
}

// PriceBreakdown is the transient quote shown to customers and stored
// (flattened) on bookings. TotalPrice is the pre-tax subtotal.
type PriceBreakdown struct {
	BasePrice         float64            `json:"basePrice"`
	AddonPrices       map[string]float64 `json:"addonPrices"`
	LocationSurcharge float64            `json:"locationSurcharge"`
	TotalPrice        float64            `json:"totalPrice"`
	Taxes             float64            `json:"taxes"`
	FinalAmount       float64            `json:"finalAmount"`
}

func (b PriceBreakdown) AddonTotal() float64 {
	var sum float64
	for _, p := range b.AddonPrices {
		sum += p
	}
	return sum
}

// CalculateDetailedPrice is the estimate used before a theme is chosen: the
// base comes from the budget bracket and occasion instead of a theme price.
// Unknown occasions, budget ranges and cities fall back silently.
func CalculateDetailedPrice(occasion, budgetRange string, guestCount int, city string, addons []Addon) PriceBreakdown {
	base := BudgetBase(budgetRange) * OccasionMultiplier(occasion)
	return compose(ScaleForGuests(base, guestCount), city, addons)
}

// CalculateThemePrice is the authoritative quote for a chosen theme.
func CalculateThemePrice(themeBasePrice float64, guestCount int, city string, addons []Addon) PriceBreakdown {
	return compose(ScaleForGuests(themeBasePrice, guestCount), city, addons)
}

// ScaleForGuests scales a 25-guest price linearly. Non-positive counts are
// treated as the reference headcount.
func ScaleForGuests(base float64, guestCount int) float64 {
	if guestCount <= 0 {
		guestCount = ReferenceGuestCount
	}
	return base * float64(guestCount) / ReferenceGuestCount
}

func compose(basePrice float64, city string, addons []Addon) PriceBreakdown {
	addonPrices := make(map[string]float64, len(addons))
	var addonTotal float64
	for _, a := range addons {
		addonPrices[a.ID] += a.Price
		addonTotal += a.Price
	}

	surcharge := basePrice * SurchargeRate(city)
	subtotal := basePrice + addonTotal + surcharge
	taxes := GSTRate * subtotal

	return PriceBreakdown{
		BasePrice:         basePrice,
		AddonPrices:       addonPrices,
		LocationSurcharge: surcharge,
		TotalPrice:        subtotal,
		Taxes:             taxes,
		FinalAmount:       math.Round(subtotal + taxes),
	}
}

// DepositAmount is the token payment that holds a booking: 20% of the final
// amount clamped to [500, 2000], and never more than the amount itself.
func DepositAmount(finalAmount float64) float64 {
	if finalAmount <= 0 {
		return 0
	}
	deposit := math.Round(finalAmount * DepositRate)
	deposit = math.Max(MinDeposit, math.Min(MaxDeposit, deposit))
	return math.Min(deposit, finalAmount)
}

// ToMinorUnits converts rupees to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func normalize(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "-")
	return strings.Join(strings.Fields(key), "-")
}
