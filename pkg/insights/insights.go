package insights

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/model"
)

// Severity tags an insight.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Insight is a single piece of advice.
type Insight struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity" yaml:"severity"`
	ActionItem  string   `json:"actionItem,omitempty" yaml:"actionItem,omitempty"`
}

// GenerateInsights runs the cash flow, emergency fund and high-interest debt
// rules. The result is unordered advice; an empty rule emits nothing.
func GenerateInsights(assets []model.Asset, liabilities []model.Liability, income []model.IncomeSource, spending []model.SpendingCategory) []Insight {
	metrics := CalculateMetrics(income, spending, liabilities)

	out := []Insight{cashFlowInsight(metrics)}
	if in, ok := emergencyFundInsight(assets, metrics.MonthlyBurn()); ok {
		out = append(out, in)
	}
	if in, ok := highInterestInsight(liabilities); ok {
		out = append(out, in)
	}
	return out
}

func cashFlowInsight(m Metrics) Insight {
	switch {
	case m.FreeCashFlow < 0:
		return Insight{
			Title:       "Cash Flow Alert",
			Description: fmt.Sprintf("You're spending %s more than you make each month.", format.Dollars(math.Abs(m.FreeCashFlow))),
			Severity:    SeverityCritical,
			ActionItem:  "Review 'Wants' in your spending plan immediately.",
		}
	case m.FreeCashFlow < m.MonthlyGrossIncome*constants.MinFreeCashFlowShare:
		return Insight{
			Title:       "Savings Check-in",
			Description: "You're saving less than 10% of your income right now.",
			Severity:    SeverityWarning,
			ActionItem:  "Small tweaks add up. Try trimming one variable expense.",
		}
	default:
		return Insight{
			Title:       "You're crushing it!",
			Description: fmt.Sprintf("You have a %s monthly surplus to fuel your goals.", format.Dollars(m.FreeCashFlow)),
			Severity:    SeveritySuccess,
		}
	}
}

// CashReserves sums assets of the cash type.
func CashReserves(assets []model.Asset) float64 {
	total := 0.0
	for _, a := range assets {
		if a.Type == model.AssetCash {
			total += a.Value
		}
	}
	return total
}

func emergencyFundInsight(assets []model.Asset, burn float64) (Insight, bool) {
	if burn <= 0 {
		return Insight{}, false
	}
	cash := CashReserves(assets)
	months := cash / burn

	switch {
	case months < constants.EmergencyFundCriticalMonths:
		return Insight{
			Title:       "Emergency Alert",
			Description: fmt.Sprintf("You have less than 1 month of expenses (%s) covered. Let's fix this.", format.Dollars(cash)),
			Severity:    SeverityCritical,
			ActionItem:  "Pause extra debt payments. Build $1,000 emergency fund immediately.",
		}, true
	case months < constants.EmergencyFundWarningMonths:
		return Insight{
			Title:       "Safety Net Check",
			Description: fmt.Sprintf("You have %.1f months of expenses saved. Goal is 3-6 months.", months),
			Severity:    SeverityWarning,
			ActionItem:  "Prioritize cash savings over low-interest debt.",
		}, true
	}
	return Insight{}, false
}

func highInterestInsight(liabilities []model.Liability) (Insight, bool) {
	count := 0
	rateSum := 0.0
	for _, l := range liabilities {
		if l.InterestRate > constants.HighInterestThreshold {
			count++
			rateSum += l.InterestRate
		}
	}
	if count == 0 {
		return Insight{}, false
	}
	return Insight{
		Title: "Debt Alert",
		Description: fmt.Sprintf("You have %d high-interest loans slowing you down (Avg: %s).",
			count, format.Percent(rateSum/float64(count))),
		Severity:   SeverityWarning,
		ActionItem: "Use the Avalanche method to attack these aggressively.",
	}, true
}
