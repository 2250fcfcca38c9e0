package loans

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finance-planner/pkg/model"
	"go.uber.org/zap"
)

var payoffStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func exampleDebts() []model.Liability {
	return []model.Liability{
		{Name: "High Rate", Balance: 5000, InterestRate: 0.24, MinPayment: 100},
		{Name: "Low Rate", Balance: 2000, InterestRate: 0.12, MinPayment: 50},
		{Name: "Student Loan", Balance: 10000, InterestRate: 0.06, MinPayment: 150},
	}
}

func payoffOrder(ctx PayoffContext) map[string]int {
	order := make(map[string]int)
	for i, entry := range ctx.Log {
		if entry.Event == EventPaidOff {
			order[entry.DebtName] = i
		}
	}
	return order
}

func TestAvalancheVersusSnowball(t *testing.T) {
	avalanche := SimulateDebtPayoff(exampleDebts(), StrategyAvalanche, 200, WithStart(payoffStart))
	snowball := SimulateDebtPayoff(exampleDebts(), StrategySnowball, 200, WithStart(payoffStart))

	for _, ctx := range []PayoffContext{avalanche, snowball} {
		if len(ctx.Log) != 3 {
			t.Fatalf("%s: expected 3 payoff events, got %d", ctx.Strategy, len(ctx.Log))
		}
		if ctx.Truncated {
			t.Errorf("%s: simulation should not be truncated", ctx.Strategy)
		}
	}

	a := payoffOrder(avalanche)
	if a["High Rate"] >= a["Low Rate"] {
		t.Errorf("avalanche should pay off High Rate before Low Rate, log = %+v", avalanche.Log)
	}

	s := payoffOrder(snowball)
	if s["Low Rate"] >= s["High Rate"] {
		t.Errorf("snowball should pay off Low Rate before High Rate, log = %+v", snowball.Log)
	}

	if avalanche.InterestPaid > snowball.InterestPaid {
		t.Errorf("avalanche interest %.2f should not exceed snowball interest %.2f",
			avalanche.InterestPaid, snowball.InterestPaid)
	}
}

func TestPayoffReasoning(t *testing.T) {
	tests := []struct {
		name      string
		strategy  string
		rationale string
	}{
		{"Avalanche", "avalanche", "Targeting highest interest rate debts first to minimize interest paid."},
		{"Snowball mixed case", "SnowBall", "Targeting lowest balance debts first to build momentum."},
		{"Unknown strategy", "custom", "No specific sorting strategy applied."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := SimulateDebtPayoff(exampleDebts(), tt.strategy, 200, WithStart(payoffStart))
			if len(ctx.Reasoning) != 3 {
				t.Fatalf("expected 3 reasoning lines, got %v", ctx.Reasoning)
			}
			if !strings.HasPrefix(ctx.Reasoning[0], "Strategy: ") {
				t.Errorf("reasoning[0] = %q", ctx.Reasoning[0])
			}
			if ctx.Reasoning[1] != "Extra Payment: $200.00/mo" {
				t.Errorf("reasoning[1] = %q", ctx.Reasoning[1])
			}
			if ctx.Reasoning[2] != tt.rationale {
				t.Errorf("reasoning[2] = %q, expected %q", ctx.Reasoning[2], tt.rationale)
			}
			if ctx.Strategy != tt.strategy {
				t.Errorf("Strategy = %q, expected %q", ctx.Strategy, tt.strategy)
			}
		})
	}

	ctx := SimulateDebtPayoff(exampleDebts(), "avalanche", 0, WithStart(payoffStart))
	if ctx.Reasoning[0] != "Strategy: Avalanche" {
		t.Errorf("reasoning[0] = %q, expected title-cased strategy", ctx.Reasoning[0])
	}
}

func TestUnknownStrategyKeepsInputOrder(t *testing.T) {
	debts := []model.Liability{
		{Name: "First", Balance: 1000, MinPayment: 10},
		{Name: "Second", Balance: 100, MinPayment: 10},
	}
	ctx := SimulateDebtPayoff(debts, "custom", 500, WithStart(payoffStart))

	if len(ctx.Log) != 2 || ctx.Log[0].DebtName != "First" {
		t.Errorf("input order should be kept, log = %+v", ctx.Log)
	}
}

// Every example minimum covers its debt's interest, so balances never grow.
func TestPayoffSeriesIsMonotonic(t *testing.T) {
	for _, strategy := range []string{StrategyAvalanche, StrategySnowball, "none"} {
		ctx := SimulateDebtPayoff(exampleDebts(), strategy, 200, WithStart(payoffStart))

		if ctx.Series[0].Value != 17000 {
			t.Errorf("%s: first series value = %.2f, expected 17000", strategy, ctx.Series[0].Value)
		}
		if !ctx.Series[0].Date.Equal(payoffStart) {
			t.Errorf("%s: first series date = %s, expected start date", strategy, ctx.Series[0].Date)
		}
		for i := 1; i < len(ctx.Series); i++ {
			if ctx.Series[i].Value > ctx.Series[i-1].Value+1e-9 {
				t.Errorf("%s: series increased at %d: %.2f -> %.2f",
					strategy, i, ctx.Series[i-1].Value, ctx.Series[i].Value)
				break
			}
		}
		if last := ctx.Series[len(ctx.Series)-1]; last.Value != 0 || !last.Date.Equal(ctx.DateFree) {
			t.Errorf("%s: last series point = %+v, expected zero on %s", strategy, last, ctx.DateFree)
		}
		if len(ctx.Series) != ctx.MonthsElapsed+1 {
			t.Errorf("%s: series has %d points for %d months", strategy, len(ctx.Series), ctx.MonthsElapsed)
		}
	}
}

func TestExtraPaymentAcceleratesPayoff(t *testing.T) {
	extras := []float64{0, 100, 250, 500, 1000}
	var previous PayoffContext
	for i, extra := range extras {
		ctx := SimulateDebtPayoff(exampleDebts(), StrategyAvalanche, extra, WithStart(payoffStart))
		if i > 0 {
			if ctx.DateFree.After(previous.DateFree) {
				t.Errorf("extra %.0f finished %s, later than extra %.0f at %s",
					extra, ctx.DateFree.Format("2006-01-02"), extras[i-1], previous.DateFree.Format("2006-01-02"))
			}
			if ctx.InterestPaid > previous.InterestPaid {
				t.Errorf("extra %.0f paid %.2f interest, more than extra %.0f at %.2f",
					extra, ctx.InterestPaid, extras[i-1], previous.InterestPaid)
			}
		}
		previous = ctx
	}
}

func TestZeroDebtShortCircuit(t *testing.T) {
	debts := []model.Liability{
		{Name: "Closed", Balance: 0, InterestRate: 0.2, MinPayment: 100},
	}
	ctx := SimulateDebtPayoff(debts, StrategyAvalanche, 500, WithStart(payoffStart))

	if !ctx.DateFree.Equal(payoffStart) {
		t.Errorf("DateFree = %s, expected start date", ctx.DateFree)
	}
	if len(ctx.Log) != 0 {
		t.Errorf("expected empty log, got %+v", ctx.Log)
	}
	if ctx.InterestPaid != 0 || ctx.MonthsElapsed != 0 {
		t.Errorf("expected no interest and no months, got %.2f and %d", ctx.InterestPaid, ctx.MonthsElapsed)
	}
	if len(ctx.Series) != 1 {
		t.Errorf("expected a single series point, got %d", len(ctx.Series))
	}

	empty := SimulateDebtPayoff(nil, StrategySnowball, 0, WithStart(payoffStart))
	if !empty.DateFree.Equal(payoffStart) || len(empty.Log) != 0 {
		t.Errorf("empty liability set should finish immediately, got %+v", empty)
	}
}

func TestHugeExtraPaysOffInFirstMonth(t *testing.T) {
	debts := []model.Liability{{Name: "Card", Balance: 1000, InterestRate: 0.12, MinPayment: 50}}
	ctx := SimulateDebtPayoff(debts, StrategyAvalanche, 1e6, WithStart(payoffStart))

	if ctx.MonthsElapsed != 1 {
		t.Fatalf("expected payoff in one month, took %d", ctx.MonthsElapsed)
	}
	if want := payoffStart.AddDate(0, 0, 30); !ctx.DateFree.Equal(want) {
		t.Errorf("DateFree = %s, expected %s", ctx.DateFree, want)
	}
	if len(ctx.Log) != 1 || math.Abs(ctx.Log[0].Payment-960) > 1e-9 {
		t.Errorf("expected one payoff with a 960.00 extra payment, got %+v", ctx.Log)
	}
	if math.Abs(ctx.InterestPaid-10) > 1e-9 {
		t.Errorf("InterestPaid = %.2f, expected 10.00", ctx.InterestPaid)
	}
}

func TestDaysPerMonthOption(t *testing.T) {
	debts := []model.Liability{{Name: "Card", Balance: 1000, MinPayment: 500}}
	ctx := SimulateDebtPayoff(debts, StrategyAvalanche, 0, WithStart(payoffStart), WithDaysPerMonth(31))

	if want := payoffStart.AddDate(0, 0, 62); !ctx.DateFree.Equal(want) {
		t.Errorf("DateFree = %s, expected %s", ctx.DateFree, want)
	}
}

func TestZeroMinimumUsesFloor(t *testing.T) {
	debts := []model.Liability{{Name: "No Minimum", Balance: 1000, InterestRate: 0, MinPayment: 0}}
	ctx := SimulateDebtPayoff(debts, StrategyAvalanche, 0, WithStart(payoffStart))

	// max(25, 0 + 1% of balance) is 25 for the whole life of the debt.
	if ctx.MonthsElapsed != 40 {
		t.Errorf("MonthsElapsed = %d, expected 40", ctx.MonthsElapsed)
	}
	if ctx.Truncated {
		t.Error("floor minimum should retire the debt")
	}
}

func TestClearedMinimumsRollForward(t *testing.T) {
	t.Run("cleared by minimum", func(t *testing.T) {
		debts := []model.Liability{
			{Name: "Small", Balance: 100, MinPayment: 100},
			{Name: "Large", Balance: 1000, MinPayment: 100},
		}
		ctx := SimulateDebtPayoff(debts, "none", 0, WithStart(payoffStart))

		// Small's payment joins the pool in month one only; Large then pays
		// its own minimum of 100 a month.
		if ctx.Series[1].Value != 800 {
			t.Errorf("balance after month one = %.2f, expected 800", ctx.Series[1].Value)
		}
		if ctx.Series[2].Value != 700 {
			t.Errorf("balance after month two = %.2f, expected 700", ctx.Series[2].Value)
		}
		if ctx.MonthsElapsed != 9 {
			t.Errorf("MonthsElapsed = %d, expected 9", ctx.MonthsElapsed)
		}
	})

	t.Run("reduced final payment folds the same month", func(t *testing.T) {
		debts := []model.Liability{
			{Name: "Small", Balance: 50, MinPayment: 100},
			{Name: "Large", Balance: 1000, MinPayment: 100},
		}
		ctx := SimulateDebtPayoff(debts, "none", 0, WithStart(payoffStart))

		if ctx.Series[1].Value != 850 {
			t.Errorf("balance after month one = %.2f, expected 850", ctx.Series[1].Value)
		}
		if ctx.Series[2].Value != 750 {
			t.Errorf("balance after month two = %.2f, expected 750", ctx.Series[2].Value)
		}
		if ctx.MonthsElapsed != 10 {
			t.Errorf("MonthsElapsed = %d, expected 10", ctx.MonthsElapsed)
		}
	})

	t.Run("extra keeps its configured size after a payoff", func(t *testing.T) {
		debts := []model.Liability{
			{Name: "Small", Balance: 100, MinPayment: 100},
			{Name: "Large", Balance: 1000, MinPayment: 100},
		}
		ctx := SimulateDebtPayoff(debts, "none", 50, WithStart(payoffStart))

		// Month one: 100 + 100 freed + 50 extra on Large. Later months: 100 + 50.
		if ctx.Series[1].Value != 750 {
			t.Errorf("balance after month one = %.2f, expected 750", ctx.Series[1].Value)
		}
		if ctx.Series[2].Value != 600 {
			t.Errorf("balance after month two = %.2f, expected 600", ctx.Series[2].Value)
		}
	})

	t.Run("zero balance debts never contribute", func(t *testing.T) {
		debts := []model.Liability{
			{Name: "Closed", Balance: 0, MinPayment: 500},
			{Name: "Open", Balance: 300, MinPayment: 100},
		}
		ctx := SimulateDebtPayoff(debts, "none", 0, WithStart(payoffStart))

		if ctx.MonthsElapsed != 3 {
			t.Errorf("MonthsElapsed = %d, expected 3", ctx.MonthsElapsed)
		}
		if len(ctx.Log) != 1 || ctx.Log[0].DebtName != "Open" {
			t.Errorf("only the open debt should be logged, got %+v", ctx.Log)
		}
	})
}

func TestPayoffSeriesRisesWhenMinimumBelowInterest(t *testing.T) {
	debts := []model.Liability{{Name: "Spiral", Balance: 10000, InterestRate: 0.24, MinPayment: 10}}
	ctx := SimulateDebtPayoff(debts, StrategyAvalanche, 0, WithStart(payoffStart), WithMaxMonths(3))

	// 200 of interest against a 10 minimum grows the balance every month.
	if math.Abs(ctx.Series[1].Value-10190) > 1e-6 {
		t.Errorf("balance after month one = %.2f, expected 10190.00", ctx.Series[1].Value)
	}
	for i := 1; i < len(ctx.Series); i++ {
		if ctx.Series[i].Value <= ctx.Series[i-1].Value {
			t.Errorf("series should rise at %d: %.2f -> %.2f", i, ctx.Series[i-1].Value, ctx.Series[i].Value)
		}
	}
	if !ctx.Truncated {
		t.Error("a growing balance should hit the month cap")
	}
}

func TestSettledAbsorbsSubCentDust(t *testing.T) {
	tests := []struct {
		balance  float64
		expected bool
	}{
		{0, true},
		{-0.5, true},
		{0.004, true},
		{0.02, false},
		{100, false},
	}
	for _, tt := range tests {
		if got := settled(tt.balance); got != tt.expected {
			t.Errorf("settled(%v) = %v, expected %v", tt.balance, got, tt.expected)
		}
	}
}

func TestSafetyCapTruncates(t *testing.T) {
	debts := []model.Liability{{Name: "Spiral", Balance: 10000, InterestRate: 0.24, MinPayment: 10}}
	sim := NewPayoffSimulator(zap.NewNop())
	ctx := sim.Simulate(debts, StrategyAvalanche, 0, WithStart(payoffStart), WithMaxMonths(12))

	if !ctx.Truncated {
		t.Fatal("expected truncation")
	}
	if len(ctx.Series) > 14 {
		t.Errorf("series should stop at the cap, got %d points", len(ctx.Series))
	}
	last := ctx.Reasoning[len(ctx.Reasoning)-1]
	if last != "Simulation stopped after 1 years. Debts may be unsustainable." {
		t.Errorf("truncation note = %q", last)
	}
	if len(ctx.Log) != 0 {
		t.Errorf("no debt should be paid off, got %+v", ctx.Log)
	}
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	debts := exampleDebts()
	snapshot := exampleDebts()

	SimulateDebtPayoff(debts, StrategySnowball, 200, WithStart(payoffStart))

	if !reflect.DeepEqual(debts, snapshot) {
		t.Errorf("input liabilities were modified: %+v", debts)
	}
}

func TestPayoffDatesAndInterestSaved(t *testing.T) {
	baseline := SimulateDebtPayoff(exampleDebts(), StrategyAvalanche, 0, WithStart(payoffStart))
	scenario := SimulateDebtPayoff(exampleDebts(), StrategyAvalanche, 300, WithStart(payoffStart))

	dates := PayoffDates(scenario)
	if len(dates) != 3 {
		t.Fatalf("expected 3 payoff dates, got %v", dates)
	}
	if !dates["Student Loan"].Equal(scenario.DateFree) {
		t.Errorf("last debt date = %s, expected %s", dates["Student Loan"], scenario.DateFree)
	}

	saved := InterestSaved(baseline, scenario)
	if saved.InterestSaved <= 0 {
		t.Errorf("extra payments should save interest, got %.2f", saved.InterestSaved)
	}
	if saved.MonthsSaved <= 0 {
		t.Errorf("extra payments should save months, got %d", saved.MonthsSaved)
	}
}
