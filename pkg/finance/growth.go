package finance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/datetime"
	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/model"
	"go.uber.org/zap"
)

// ProjectionContext is the result of a compound growth projection.
type ProjectionContext struct {
	Series                      []model.TimeSeriesPoint `json:"series" yaml:"series"`
	RealSeries                  []model.TimeSeriesPoint `json:"realSeries,omitempty" yaml:"realSeries,omitempty"`
	FinalValue                  float64                 `json:"finalValue" yaml:"finalValue"`
	TotalContributions          float64                 `json:"totalContributions" yaml:"totalContributions"`
	TotalInterest               float64                 `json:"totalInterest" yaml:"totalInterest"`
	InflationAdjustedFinalValue *float64                `json:"inflationAdjustedFinalValue,omitempty" yaml:"inflationAdjustedFinalValue,omitempty"`
	Context                     string                  `json:"context" yaml:"context"`
	CrossoverDate               *time.Time              `json:"crossoverDate,omitempty" yaml:"crossoverDate,omitempty"`
	CrossoverTarget             float64                 `json:"crossoverTarget,omitempty" yaml:"crossoverTarget,omitempty"`
}

// ProjectionOptions holds the optional inputs of a projection.
type ProjectionOptions struct {
	StartDate              time.Time
	InflationRate          float64
	PeriodsPerYear         int
	MonthlyExpensesTarget  *float64
	SafeWithdrawalRate     float64
	MaxCrossoverSearchTerm int // months
}

// ProjectionOption customizes a projection.
type ProjectionOption func(*ProjectionOptions)

// WithStartDate sets the date of the first series point.
func WithStartDate(start time.Time) ProjectionOption {
	return func(o *ProjectionOptions) { o.StartDate = start }
}

// WithInflation enables the real (deflated) series.
func WithInflation(rate float64) ProjectionOption {
	return func(o *ProjectionOptions) { o.InflationRate = rate }
}

// WithPeriodsPerYear sets the compounding frequency.
func WithPeriodsPerYear(n int) ProjectionOption {
	return func(o *ProjectionOptions) {
		if n > 0 {
			o.PeriodsPerYear = n
		}
	}
}

// WithExpensesTarget enables crossover detection against monthly expenses.
func WithExpensesTarget(monthlyExpenses float64) ProjectionOption {
	return func(o *ProjectionOptions) { o.MonthlyExpensesTarget = &monthlyExpenses }
}

// WithSafeWithdrawalRate overrides the withdrawal rate used for the
// crossover target.
func WithSafeWithdrawalRate(rate float64) ProjectionOption {
	return func(o *ProjectionOptions) {
		if rate > 0 {
			o.SafeWithdrawalRate = rate
		}
	}
}

// GrowthProjector runs compound growth projections.
type GrowthProjector struct {
	logger *zap.Logger
}

// NewGrowthProjector creates a projector. A nil logger is replaced by a
// no-op logger.
func NewGrowthProjector(logger *zap.Logger) *GrowthProjector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrowthProjector{logger: logger}
}

// ProjectCompoundGrowth projects with a no-op logger.
func ProjectCompoundGrowth(principal, rate float64, years int, monthlyContribution float64, opts ...ProjectionOption) ProjectionContext {
	return NewGrowthProjector(nil).Project(principal, rate, years, monthlyContribution, opts...)
}

// Project steps principal forward years*periodsPerYear times, adding
// monthlyContribution every period. Inflation only affects the reported real
// values, never the compounding balance.
func (g *GrowthProjector) Project(principal, rate float64, years int, monthlyContribution float64, opts ...ProjectionOption) ProjectionContext {
	o := ProjectionOptions{
		PeriodsPerYear:         constants.MonthsPerYear,
		SafeWithdrawalRate:     constants.DefaultSafeWithdrawalRate,
		MaxCrossoverSearchTerm: constants.MaxCrossoverMonths,
	}
	for _, opt := range opts {
		opt(&o)
	}
	start := datetime.OrToday(o.StartDate)
	ppy := o.PeriodsPerYear
	totalPeriods := years * ppy
	if totalPeriods < 0 {
		totalPeriods = 0
	}
	deflate := o.InflationRate > 0

	ctx := ProjectionContext{
		Series: make([]model.TimeSeriesPoint, 0, totalPeriods+1),
	}
	if deflate {
		ctx.RealSeries = make([]model.TimeSeriesPoint, 0, totalPeriods+1)
	}

	value := principal
	contributions := principal
	for period := 0; period <= totalPeriods; period++ {
		if period > 0 {
			value = CompoundStep(value, rate, monthlyContribution, ppy)
			contributions += monthlyContribution
		}
		date := datetime.PeriodOffset(start, period, ppy)
		ctx.Series = append(ctx.Series, model.TimeSeriesPoint{Date: date, Value: value})
		if deflate {
			yearsElapsed := float64(period) / float64(ppy)
			realValue := value / math.Pow(1+o.InflationRate, yearsElapsed)
			ctx.RealSeries = append(ctx.RealSeries, model.TimeSeriesPoint{Date: date, Value: realValue})
		}
	}

	ctx.FinalValue = value
	ctx.TotalContributions = contributions
	ctx.TotalInterest = value - contributions

	lines := []string{fmt.Sprintf("Starting with %s, contributing %s/period at %s APY.",
		format.Currency(principal), format.Currency(monthlyContribution), format.Percent(rate))}

	if deflate {
		realValue := ctx.RealSeries[len(ctx.RealSeries)-1].Value
		ctx.InflationAdjustedFinalValue = &realValue
		lines = append(lines, fmt.Sprintf("Adjusted for %s inflation, the final value is worth %s today.",
			format.Percent(o.InflationRate), format.Currency(realValue)))
	}

	if o.MonthlyExpensesTarget != nil {
		target := *o.MonthlyExpensesTarget * constants.MonthsPerYear / o.SafeWithdrawalRate
		ctx.CrossoverTarget = target
		realRate := RealReturnRate(rate, o.InflationRate)
		if date, ok := crossoverDate(principal, realRate, monthlyContribution, target, start, o.MaxCrossoverSearchTerm); ok {
			ctx.CrossoverDate = &date
			lines = append(lines, fmt.Sprintf("Portfolio reaches the %s independence target on %s.",
				format.Currency(target), date.Format(constants.DateLayout)))
		} else {
			lines = append(lines, fmt.Sprintf("Portfolio does not reach the %s independence target within %d years.",
				format.Currency(target), o.MaxCrossoverSearchTerm/constants.MonthsPerYear))
			g.logger.Debug("crossover not reached",
				zap.String("op", "finance.Project"),
				zap.Float64("target", target),
				zap.Int("searchMonths", o.MaxCrossoverSearchTerm),
			)
		}
	}

	ctx.Context = strings.Join(lines, " ")

	g.logger.Debug("projection complete",
		zap.String("op", "finance.Project"),
		zap.Int("periods", totalPeriods),
		zap.Float64("finalValue", ctx.FinalValue),
	)
	return ctx
}

// crossoverDate searches month by month, at the real rate, for the first
// date the portfolio meets target.
func crossoverDate(principal, realRate, monthlyContribution, target float64, start time.Time, maxMonths int) (time.Time, bool) {
	if principal >= target {
		return start, true
	}
	value := principal
	for month := 1; month <= maxMonths; month++ {
		value = CompoundStep(value, realRate, monthlyContribution, constants.MonthsPerYear)
		if value >= target {
			return datetime.AddMonths(start, month), true
		}
	}
	return time.Time{}, false
}
