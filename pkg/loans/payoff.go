package loans

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/datetime"
	"github.com/iwvelando/finance-planner/pkg/finance"
	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/mathutil"
	"github.com/iwvelando/finance-planner/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Payoff strategies.
const (
	StrategyAvalanche = "avalanche"
	StrategySnowball  = "snowball"
)

// EventPaidOff marks the month a debt reached zero.
const EventPaidOff = "PAID OFF"

// PayoffLogEntry records a notable event for one debt.
type PayoffLogEntry struct {
	Date     time.Time `json:"date" yaml:"date"`
	Balance  float64   `json:"balance" yaml:"balance"`
	Payment  float64   `json:"payment" yaml:"payment"`
	DebtName string    `json:"debtName" yaml:"debtName"`
	Event    string    `json:"event" yaml:"event"`
}

// PayoffContext is the result of a debt payoff simulation.
type PayoffContext struct {
	DateFree      time.Time               `json:"dateFree" yaml:"dateFree"`
	InterestPaid  float64                 `json:"interestPaid" yaml:"interestPaid"`
	Strategy      string                  `json:"strategy" yaml:"strategy"`
	Log           []PayoffLogEntry        `json:"log" yaml:"log"`
	Series        []model.TimeSeriesPoint `json:"series" yaml:"series"`
	Reasoning     []string                `json:"reasoning" yaml:"reasoning"`
	MonthsElapsed int                     `json:"monthsElapsed" yaml:"monthsElapsed"`
	Truncated     bool                    `json:"truncated" yaml:"truncated"`
}

// PayoffOptions holds the optional inputs of a simulation.
type PayoffOptions struct {
	StartDate    time.Time
	MaxMonths    int
	DaysPerMonth int
}

// PayoffOption customizes a simulation.
type PayoffOption func(*PayoffOptions)

// WithStart sets the simulation start date.
func WithStart(start time.Time) PayoffOption {
	return func(o *PayoffOptions) { o.StartDate = start }
}

// WithMaxMonths bounds the simulation horizon.
func WithMaxMonths(months int) PayoffOption {
	return func(o *PayoffOptions) {
		if months > 0 {
			o.MaxMonths = months
		}
	}
}

// WithDaysPerMonth sets the clock step of one simulated month.
func WithDaysPerMonth(days int) PayoffOption {
	return func(o *PayoffOptions) {
		if days > 0 {
			o.DaysPerMonth = days
		}
	}
}

// debtState is the simulator's private working copy of a liability.
type debtState struct {
	name       string
	balance    float64
	rate       float64
	minPayment float64
	// effectiveMin is the minimum applied in the current month.
	effectiveMin float64
}

// PayoffSimulator runs month-by-month debt payoff simulations.
type PayoffSimulator struct {
	logger *zap.Logger
}

// NewPayoffSimulator creates a simulator. A nil logger is replaced by a no-op
// logger.
func NewPayoffSimulator(logger *zap.Logger) *PayoffSimulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoffSimulator{logger: logger}
}

// SimulateDebtPayoff runs a simulation with a no-op logger.
func SimulateDebtPayoff(liabilities []model.Liability, strategy string, extraMonthlyPayment float64, opts ...PayoffOption) PayoffContext {
	return NewPayoffSimulator(nil).Simulate(liabilities, strategy, extraMonthlyPayment, opts...)
}

// Simulate pays down liabilities month by month. Each month every open debt
// accrues interest and pays its minimum, then the extra pool is applied in
// strategy order. A debt cleared by its minimum adds that payment back into
// the same month's extra pool. The caller's liabilities are never modified.
func (s *PayoffSimulator) Simulate(liabilities []model.Liability, strategy string, extraMonthlyPayment float64, opts ...PayoffOption) PayoffContext {
	o := PayoffOptions{
		MaxMonths:    constants.DefaultMaxPayoffMonths,
		DaysPerMonth: constants.DaysPerMonth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	currentDate := datetime.OrToday(o.StartDate)

	debts := make([]debtState, 0, len(liabilities))
	for _, l := range liabilities {
		debts = append(debts, debtState{
			name:       l.Name,
			balance:    l.Balance,
			rate:       l.InterestRate,
			minPayment: l.MinPayment,
		})
	}

	reasoning := []string{
		"Strategy: " + cases.Title(language.English).String(strategy),
		fmt.Sprintf("Extra Payment: %s/mo", format.Currency(extraMonthlyPayment)),
		prioritize(debts, strategy),
	}

	ctx := PayoffContext{
		Strategy: strategy,
		Log:      []PayoffLogEntry{},
		Series:   []model.TimeSeriesPoint{{Date: currentDate, Value: totalBalance(debts)}},
	}

	totalInterest := 0.0
	months := 0

	for outstanding(debts) {
		months++
		currentDate = datetime.AddDays(currentDate, o.DaysPerMonth)
		available := extraMonthlyPayment

		for i := range debts {
			d := &debts[i]
			if settled(d.balance) {
				continue
			}

			interest := finance.MonthlyInterest(d.balance, d.rate, constants.MonthsPerYear)
			d.balance += interest
			totalInterest += interest

			d.effectiveMin = d.minPayment
			if d.effectiveMin <= 0 {
				d.effectiveMin = math.Max(constants.MinPaymentFloor, interest+d.balance*constants.MinPaymentPrincipalShare)
			}

			payment := math.Min(d.balance, d.effectiveMin)
			d.balance -= payment
			if settled(d.balance) {
				d.balance = 0
				ctx.Log = append(ctx.Log, s.paidOff(currentDate, d.name, payment))
				available += payment
			}
		}

		for i := range debts {
			if available <= 0 {
				break
			}
			d := &debts[i]
			if settled(d.balance) {
				continue
			}
			payment := math.Min(d.balance, available)
			d.balance -= payment
			available -= payment
			if settled(d.balance) {
				d.balance = 0
				ctx.Log = append(ctx.Log, s.paidOff(currentDate, d.name, payment))
			}
		}

		ctx.Series = append(ctx.Series, model.TimeSeriesPoint{Date: currentDate, Value: totalBalance(debts)})

		if months > o.MaxMonths {
			ctx.Truncated = true
			reasoning = append(reasoning, fmt.Sprintf("Simulation stopped after %.0f years. Debts may be unsustainable.",
				float64(o.MaxMonths)/constants.MonthsPerYear))
			s.logger.Warn("payoff simulation truncated",
				zap.String("op", "loans.Simulate"),
				zap.String("strategy", strategy),
				zap.Int("maxMonths", o.MaxMonths),
				zap.Float64("remaining", totalBalance(debts)),
			)
			break
		}
	}

	ctx.DateFree = currentDate
	ctx.InterestPaid = totalInterest
	ctx.MonthsElapsed = months
	ctx.Reasoning = reasoning

	s.logger.Debug("payoff simulation complete",
		zap.String("op", "loans.Simulate"),
		zap.String("strategy", strategy),
		zap.Int("months", months),
		zap.Float64("interestPaid", totalInterest),
	)
	return ctx
}

func (s *PayoffSimulator) paidOff(date time.Time, name string, payment float64) PayoffLogEntry {
	s.logger.Debug(fmt.Sprintf("%s: %s paid off with %.2f", date.Format(constants.DateLayout), name, payment),
		zap.String("op", "loans.Simulate"),
	)
	return PayoffLogEntry{Date: date, Balance: 0, Payment: payment, DebtName: name, Event: EventPaidOff}
}

// prioritize orders debts in place for strategy and returns the rationale.
func prioritize(debts []debtState, strategy string) string {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case StrategyAvalanche:
		sort.SliceStable(debts, func(i, j int) bool { return debts[i].rate > debts[j].rate })
		return "Targeting highest interest rate debts first to minimize interest paid."
	case StrategySnowball:
		sort.SliceStable(debts, func(i, j int) bool { return debts[i].balance < debts[j].balance })
		return "Targeting lowest balance debts first to build momentum."
	default:
		return "No specific sorting strategy applied."
	}
}

// settled reports whether a balance is paid down to within a cent.
func settled(balance float64) bool {
	return balance < 0 || mathutil.IsZero(balance)
}

func outstanding(debts []debtState) bool {
	for _, d := range debts {
		if mathutil.IsPositive(d.balance) {
			return true
		}
	}
	return false
}

func totalBalance(debts []debtState) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.balance
	}
	return total
}
