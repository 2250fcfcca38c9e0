// Package optimizer searches for the smallest extra monthly payment that
// clears every debt within a target number of months.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-planner/internal/config"
	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/loans"
	"github.com/iwvelando/finance-planner/pkg/model"
	"github.com/iwvelando/finance-planner/pkg/optimization"
	"go.uber.org/zap"
)

// Runner evaluates payoff simulations while bisecting the extra payment.
type Runner struct {
	logger    *zap.Logger
	simulator *loans.PayoffSimulator
}

type evaluation struct {
	value     float64
	months    int
	interest  float64
	truncated bool
	target    int
	ctx       loans.PayoffContext
}

func (e evaluation) feasible() bool {
	return !e.truncated && e.months <= e.target
}

// NewRunner constructs a Runner. Simulation detail is logged by the runner's
// own no-op simulator so bisection steps do not flood the log.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, simulator: loans.NewPayoffSimulator(nil)}
}

// MinimumExtraPayment runs the directive with a no-op logger.
func MinimumExtraPayment(liabilities []model.Liability, original float64, cfg config.OptimizerConfig, opts ...loans.PayoffOption) (optimization.Summary, error) {
	return NewRunner(nil).MinimumExtraPayment(liabilities, original, cfg, opts...)
}

// MinimumExtraPayment bisects the extra monthly payment between cfg.Min and
// cfg.Max until the simulated payoff meets cfg.TargetMonths within
// cfg.Tolerance. original is the currently configured extra payment and is
// only reported for comparison.
func (r *Runner) MinimumExtraPayment(liabilities []model.Liability, original float64, cfg config.OptimizerConfig, opts ...loans.PayoffOption) (optimization.Summary, error) {
	if err := cfg.Validate(loans.StrategyAvalanche); err != nil {
		return optimization.Summary{}, err
	}
	minVal, maxVal := *cfg.Min, *cfg.Max

	summary := optimization.Summary{
		Scope:           "payoff",
		TargetName:      cfg.Strategy,
		Field:           cfg.Field,
		Original:        original,
		OriginalDisplay: format.Currency(original),
		TargetMonths:    cfg.TargetMonths,
	}

	lowerEval := r.evaluate(liabilities, cfg, minVal, opts)
	if lowerEval.feasible() {
		summary.Notes = append(summary.Notes, fmt.Sprintf("target of %d months is already met at %s/mo",
			cfg.TargetMonths, format.Currency(minVal)))
		r.finish(&summary, lowerEval, 0, true)
		return summary, nil
	}

	upperEval := r.evaluate(liabilities, cfg, maxVal, opts)
	if !upperEval.feasible() {
		summary.Notes = append(summary.Notes, fmt.Sprintf("unable to clear debts within %d months for extra payments up to %s/mo",
			cfg.TargetMonths, format.Currency(maxVal)))
		r.finish(&summary, upperEval, 0, false)
		return summary, nil
	}

	iterations := 0
	lower, upper := minVal, maxVal
	for iterations < cfg.MaxIterations && math.Abs(upper-lower) > cfg.Tolerance {
		mid := lower + (upper-lower)/2
		evalMid := r.evaluate(liabilities, cfg, mid, opts)
		iterations++
		if evalMid.feasible() {
			upper = mid
		} else {
			lower = mid
		}
	}

	// Round up to whole cents so the reported payment still meets the target.
	value := math.Min(math.Ceil(upper*constants.DecimalPrecision)/constants.DecimalPrecision, maxVal)
	finalEval := r.evaluate(liabilities, cfg, value, opts)
	if !finalEval.feasible() {
		finalEval = r.evaluate(liabilities, cfg, upper, opts)
	}

	converged := math.Abs(upper-lower) <= cfg.Tolerance
	if !converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf("stopped after %d iterations with a %s search window",
			iterations, format.Currency(upper-lower)))
	}
	r.finish(&summary, finalEval, iterations, converged)
	return summary, nil
}

func (r *Runner) evaluate(liabilities []model.Liability, cfg config.OptimizerConfig, extra float64, opts []loans.PayoffOption) evaluation {
	ctx := r.simulator.Simulate(liabilities, cfg.Strategy, extra, opts...)
	return evaluation{
		value:     extra,
		months:    ctx.MonthsElapsed,
		interest:  ctx.InterestPaid,
		truncated: ctx.Truncated,
		target:    cfg.TargetMonths,
		ctx:       ctx,
	}
}

func (r *Runner) finish(summary *optimization.Summary, eval evaluation, iterations int, converged bool) {
	summary.Value = eval.value
	summary.ValueDisplay = format.Currency(eval.value)
	summary.Months = eval.months
	summary.InterestPaid = eval.interest
	summary.DateFree = eval.ctx.DateFree
	summary.Iterations = iterations
	summary.Converged = converged && eval.feasible()

	r.logger.Info("optimizer adjusted extra payment",
		zap.String("op", "optimizer.MinimumExtraPayment"),
		zap.String("strategy", summary.TargetName),
		zap.Float64("original", summary.Original),
		zap.Float64("optimized", summary.Value),
		zap.Int("targetMonths", summary.TargetMonths),
		zap.Int("months", summary.Months),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
}
