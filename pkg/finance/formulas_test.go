package finance

import (
	"testing"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeToMonthly(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		frequency string
		want      float64
	}{
		{"monthly", 1000, "monthly", 1000},
		{"empty is monthly", 1000, "", 1000},
		{"bi-weekly", 1200, "bi-weekly", 2600},
		{"weekly", 120, "Weekly", 520},
		{"annually", 120000, "annually", 10000},
		{"yearly", 120000, "YEARLY", 10000},
		{"quarterly", 3000, "quarterly", 1000},
		{"semi-annually", 6000, "semi-annually", 1000},
		{"unknown falls back to monthly", 750, "fortnightly-ish", 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeToMonthly(tt.amount, tt.frequency), constants.FloatTolerance)
		})
	}
}

func TestMonthlyMultiplierRecognition(t *testing.T) {
	_, ok := MonthlyMultiplier("bi-weekly")
	assert.True(t, ok)
	_, ok = MonthlyMultiplier("")
	assert.True(t, ok)
	m, ok := MonthlyMultiplier("daily")
	assert.False(t, ok)
	assert.Equal(t, 1.0, m)
}

func TestAnnualRoundTrip(t *testing.T) {
	annual := 98765.43
	monthly := NormalizeToMonthly(annual, "annually")
	assert.InDelta(t, annual, monthly*12, constants.FloatTolerance)
}

func TestTotals(t *testing.T) {
	income := []model.IncomeSource{
		{Source: "Salary", Amount: 2000, Frequency: "bi-weekly"},
		{Source: "Bonus", Amount: 12000, Frequency: "annually"},
	}
	assert.InDelta(t, 2000*26.0/12.0+1000, TotalMonthlyIncome(income), constants.FloatTolerance)

	spending := []model.SpendingCategory{{Category: "Rent", Amount: 1500}, {Category: "Food", Amount: 600}}
	assert.Equal(t, 2100.0, TotalMonthlySpending(spending))
	assert.Equal(t, 0.0, TotalMonthlyIncome(nil))
}

func TestInterestPrimitives(t *testing.T) {
	assert.InDelta(t, 10.0, MonthlyInterest(1000, 0.12, 12), constants.FloatTolerance)
	assert.InDelta(t, 10.0, MonthlyInterest(1000, 0.12, 0), constants.FloatTolerance)
	assert.InDelta(t, 1110.0, CompoundStep(1000, 0.12, 100, 12), constants.FloatTolerance)
}

func TestRunwayDays(t *testing.T) {
	assert.Equal(t, 150, RunwayDays(10000, 2000, 30))
	assert.Equal(t, constants.InfiniteRunwayDays, RunwayDays(10000, 0, 30))
	assert.Equal(t, constants.InfiniteRunwayDays, RunwayDays(10000, -5, 30))
	assert.Equal(t, -15, RunwayDays(-1000, 2000, 30))
}

func TestAmortizationPayment(t *testing.T) {
	assert.InDelta(t, 536.82, AmortizationPayment(100000, 0.05, 30, 12), 0.1)
	assert.InDelta(t, 1000.0, AmortizationPayment(12000, 0, 1, 12), constants.FloatTolerance)
	assert.Equal(t, 5000.0, AmortizationPayment(5000, 0.05, 0, 12))
}

func TestFutureAndPresentValue(t *testing.T) {
	fv := FutureValue(1000, 0.10, 2, 12)
	assert.InDelta(t, 1220.39, fv, 0.1)
	assert.InDelta(t, 1000.0, PresentValue(1220.39, 0.10, 2, 12), 0.1)
	assert.InDelta(t, 1000.0, PresentValue(fv, 0.10, 2, 12), constants.FloatTolerance)
}

func TestRealReturnRate(t *testing.T) {
	assert.InDelta(t, 0.0, RealReturnRate(0.03, 0.03), constants.FloatTolerance)
	assert.InDelta(t, 1.07/1.03-1, RealReturnRate(0.07, 0.03), constants.FloatTolerance)
	assert.Less(t, RealReturnRate(0.02, 0.05), 0.0)
}
