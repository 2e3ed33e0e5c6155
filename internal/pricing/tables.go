package pricing

// Keys are normalized: lower case, words joined by "-".
var surchargeRates = map[string]float64{
	"mumbai":    0.10,
	"delhi":     0.08,
	"new-delhi": 0.08,
	"gurgaon":   0.08,
	"gurugram":  0.08,
	"bangalore": 0.08,
	"bengaluru": 0.08,
	"noida":     0.05,
	"pune":      0.05,
	"hyderabad": 0.05,
	"chennai":   0.05,
	"kolkata":   0.05,
}

const DefaultBudgetRange = "10k-25k"

// Bracket bases in rupees at the reference headcount.
var budgetBrackets = map[string]float64{
	"under-10k":        8000,
	DefaultBudgetRange: 17500,
	"25k-50k":          37500,
	"50k-plus":         60000,
}

var occasionMultipliers = map[string]float64{
	"birthday":    1.0,
	"baby-shower": 1.0,
	"anniversary": 1.1,
	"engagement":  1.25,
	"corporate":   1.2,
	"wedding":     1.5,
}

// SurchargeRate returns the location markup for city, 0 when unlisted.
func SurchargeRate(city string) float64 {
	return surchargeRates[normalize(city)]
}

func BudgetBase(budgetRange string) float64 {
	if base, ok := budgetBrackets[normalize(budgetRange)]; ok {
		return base
	}
	return budgetBrackets[DefaultBudgetRange]
}

func OccasionMultiplier(occasion string) float64 {
	if m, ok := occasionMultipliers[normalize(occasion)]; ok {
		return m
	}
	return 1.0
}

// NormalizeOccasion gives the stored form of an occasion name.
func NormalizeOccasion(occasion string) string {
	return normalize(occasion)
}
