// Package insights derives cash-flow metrics and advisory insights from a
// household's records.
package insights

import (
	"github.com/iwvelando/finance-planner/pkg/finance"
	"github.com/iwvelando/finance-planner/pkg/mathutil"
	"github.com/iwvelando/finance-planner/pkg/model"
)

// Metrics summarizes the monthly cash flow.
type Metrics struct {
	MonthlyGrossIncome  float64 `json:"monthlyGrossIncome" yaml:"monthlyGrossIncome"`
	MonthlyExpenses     float64 `json:"monthlyExpenses" yaml:"monthlyExpenses"`
	MonthlyDebtPayments float64 `json:"monthlyDebtPayments" yaml:"monthlyDebtPayments"`
	FreeCashFlow        float64 `json:"freeCashFlow" yaml:"freeCashFlow"`
	SavingsRate         float64 `json:"savingsRate" yaml:"savingsRate"`
	DebtToIncomeRatio   float64 `json:"debtToIncomeRatio" yaml:"debtToIncomeRatio"`
}

// MonthlyBurn is spending plus minimum debt payments.
func (m Metrics) MonthlyBurn() float64 {
	return m.MonthlyExpenses + m.MonthlyDebtPayments
}

// CalculateMetrics computes the monthly cash-flow metrics. Ratios are 0 when
// there is no income.
func CalculateMetrics(income []model.IncomeSource, spending []model.SpendingCategory, liabilities []model.Liability) Metrics {
	m := Metrics{
		MonthlyGrossIncome:  finance.TotalMonthlyIncome(income),
		MonthlyExpenses:     finance.TotalMonthlySpending(spending),
		MonthlyDebtPayments: MinimumPayments(liabilities),
	}
	m.FreeCashFlow = m.MonthlyGrossIncome - m.MonthlyBurn()
	m.SavingsRate = mathutil.SafeDivide(m.FreeCashFlow, m.MonthlyGrossIncome)
	m.DebtToIncomeRatio = mathutil.SafeDivide(m.MonthlyDebtPayments, m.MonthlyGrossIncome)
	return m
}

// MinimumPayments sums the configured minimum payments.
func MinimumPayments(liabilities []model.Liability) float64 {
	total := 0.0
	for _, l := range liabilities {
		total += l.MinPayment
	}
	return total
}
