package finance

import (
	"strings"

	"github.com/iwvelando/finance-planner/pkg/model"
)

// monthlyMultipliers converts an amount paid at the keyed frequency into its
// monthly equivalent.
var monthlyMultipliers = map[string]float64{
	"monthly":       1.0,
	"bi-weekly":     26.0 / 12.0,
	"weekly":        52.0 / 12.0,
	"annually":      1.0 / 12.0,
	"yearly":        1.0 / 12.0,
	"quarterly":     1.0 / 3.0,
	"semi-annually": 1.0 / 6.0,
}

// MonthlyMultiplier returns the multiplier for frequency and whether the
// frequency was recognized. Unknown and empty frequencies are monthly.
func MonthlyMultiplier(frequency string) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(frequency))
	if key == "" {
		return 1.0, true
	}
	if m, ok := monthlyMultipliers[key]; ok {
		return m, true
	}
	return 1.0, false
}

// NormalizeToMonthly converts amount at the given frequency into a monthly
// figure.
func NormalizeToMonthly(amount float64, frequency string) float64 {
	m, _ := MonthlyMultiplier(frequency)
	return amount * m
}

// TotalMonthlyIncome sums all income sources normalized to monthly.
func TotalMonthlyIncome(income []model.IncomeSource) float64 {
	total := 0.0
	for _, src := range income {
		total += NormalizeToMonthly(src.Amount, src.Frequency)
	}
	return total
}

// TotalMonthlySpending sums spending categories, which are already monthly.
func TotalMonthlySpending(spending []model.SpendingCategory) float64 {
	total := 0.0
	for _, s := range spending {
		total += s.Amount
	}
	return total
}
