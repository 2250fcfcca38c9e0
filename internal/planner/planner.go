// Package planner defines the data structures related to a financial plan and
// includes functions for computing the plan from a configuration.
package planner

import (
	"fmt"
	"sync"
	"time"

	"github.com/iwvelando/finance-planner/internal/config"
	"github.com/iwvelando/finance-planner/internal/optimizer"
	"github.com/iwvelando/finance-planner/pkg/adapters"
	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/datetime"
	"github.com/iwvelando/finance-planner/pkg/finance"
	"github.com/iwvelando/finance-planner/pkg/insights"
	"github.com/iwvelando/finance-planner/pkg/loans"
	"github.com/iwvelando/finance-planner/pkg/model"
	"github.com/iwvelando/finance-planner/pkg/optimization"
	"go.uber.org/zap"
)

// Plan holds every engine output for one configuration.
type Plan struct {
	StartDate             time.Time                     `json:"startDate" yaml:"startDate"`
	Warnings              []string                      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	NetWorth              finance.NetWorthContext       `json:"netWorth" yaml:"netWorth"`
	Metrics               insights.Metrics              `json:"metrics" yaml:"metrics"`
	Level                 insights.Level                `json:"level" yaml:"level"`
	LevelName             string                        `json:"levelName" yaml:"levelName"`
	Insights              []insights.Insight            `json:"insights" yaml:"insights"`
	Baseline              loans.PayoffContext           `json:"baseline" yaml:"baseline"`
	Payoff                loans.PayoffContext           `json:"payoff" yaml:"payoff"`
	PayoffSavings         loans.PayoffComparison        `json:"payoffSavings" yaml:"payoffSavings"`
	Strategies            StrategyComparison            `json:"strategies" yaml:"strategies"`
	Scenarios             []ScenarioResult              `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	TagGroups             []loans.TagGroup              `json:"tagGroups,omitempty" yaml:"tagGroups,omitempty"`
	Loans                 []LoanSchedule                `json:"loans,omitempty" yaml:"loans,omitempty"`
	Projection            finance.ProjectionContext     `json:"projection" yaml:"projection"`
	PeriodsPerYear        int                           `json:"periodsPerYear" yaml:"periodsPerYear"`
	MonteCarlo            *finance.MonteCarloResult     `json:"monteCarlo,omitempty" yaml:"monteCarlo,omitempty"`
	Affordability         *finance.AffordabilityContext `json:"affordability,omitempty" yaml:"affordability,omitempty"`
	Optimization          *optimization.Summary         `json:"optimization,omitempty" yaml:"optimization,omitempty"`
	SafeMonthlyWithdrawal float64                       `json:"safeMonthlyWithdrawal" yaml:"safeMonthlyWithdrawal"`
}

// StrategyComparison contrasts snowball and avalanche with the same extra
// payment.
type StrategyComparison struct {
	Snowball    loans.PayoffContext `json:"snowball" yaml:"snowball"`
	Avalanche   loans.PayoffContext `json:"avalanche" yaml:"avalanche"`
	Recommended string              `json:"recommended" yaml:"recommended"`
}

// ScenarioResult is the payoff of one configured scenario compared against
// paying only minimums on the same debts.
type ScenarioResult struct {
	Name                string                 `json:"name" yaml:"name"`
	Strategy            string                 `json:"strategy" yaml:"strategy"`
	ExtraMonthlyPayment float64                `json:"extraMonthlyPayment" yaml:"extraMonthlyPayment"`
	Tags                []model.LiabilityTag   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Payoff              loans.PayoffContext    `json:"payoff" yaml:"payoff"`
	Comparison          loans.PayoffComparison `json:"comparison" yaml:"comparison"`
}

// LoanSchedule is the amortization of one fixed-payment loan.
type LoanSchedule struct {
	Name          string          `json:"name" yaml:"name"`
	Payments      []loans.Payment `json:"payments" yaml:"payments"`
	TotalInterest float64         `json:"totalInterest" yaml:"totalInterest"`
}

type payoffJob struct {
	strategy    string
	extra       float64
	liabilities []model.Liability
}

// GetPlan runs every engine over conf.
func GetPlan(logger *zap.Logger, conf config.Configuration) (*Plan, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	configWarnings, err := conf.ValidateConfiguration()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	start, err := conf.Start()
	if err != nil {
		return nil, err
	}
	start = datetime.OrToday(start)

	records := adapters.RecordsFromConfig(&conf)
	validator := records.Validator()
	if err := validator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid records: %w", err)
	}

	plan := &Plan{StartDate: start}
	plan.Warnings = append(configWarnings, validator.ValidateAll()...)
	for _, warning := range plan.Warnings {
		logger.Warn(warning, zap.String("op", "planner.GetPlan"))
	}

	plan.NetWorth = finance.NetWorth(records.Assets, records.Liabilities)
	plan.Metrics = insights.CalculateMetrics(records.Income, records.Spending, records.Liabilities)
	plan.Insights = insights.GenerateInsights(records.Assets, records.Liabilities, records.Income, records.Spending)
	plan.Level = insights.FinancialLevel(plan.Metrics.MonthlyGrossIncome, plan.Metrics.MonthlyBurn(),
		plan.NetWorth.LiabilitiesTotal, plan.NetWorth.Liquid)
	plan.LevelName = plan.Level.String()
	plan.TagGroups = loans.GroupByTag(records.Liabilities)

	payoffOpts := []loans.PayoffOption{
		loans.WithStart(start),
		loans.WithMaxMonths(conf.Payoff.MaxMonths),
		loans.WithDaysPerMonth(conf.Payoff.DaysPerMonth),
	}
	runPayoffs(logger, conf, records.Liabilities, payoffOpts, plan)

	schedules, err := loanSchedules(logger, conf)
	if err != nil {
		return nil, err
	}
	plan.Loans = schedules

	plan.Projection = project(logger, conf, plan, start)
	plan.PeriodsPerYear = conf.Projection.PeriodsPerYear
	if conf.MonteCarlo.Enabled {
		result := simulateMonteCarlo(logger, conf, plan)
		plan.MonteCarlo = &result
	}

	if conf.Affordability.Cost > 0 {
		burn := conf.Affordability.MonthlyBurn
		if burn <= 0 {
			burn = plan.Metrics.MonthlyBurn()
		}
		assessment := finance.AssessAffordability(conf.Affordability.Cost, plan.NetWorth.Liquid, burn,
			finance.WithRunwayThresholds(conf.Affordability.CriticalRunwayDays, conf.Affordability.CautionRunwayDays))
		plan.Affordability = &assessment
	}

	if conf.Optimizer != nil {
		summary, err := optimizer.NewRunner(logger).MinimumExtraPayment(records.Liabilities, conf.Payoff.ExtraMonthlyPayment, *conf.Optimizer, payoffOpts...)
		if err != nil {
			return nil, fmt.Errorf("optimizer failed: %w", err)
		}
		plan.Optimization = &summary
	}

	plan.SafeMonthlyWithdrawal = plan.NetWorth.Liquid * safeWithdrawalRate(conf) / constants.MonthsPerYear

	logger.Info("plan complete",
		zap.String("op", "planner.GetPlan"),
		zap.Float64("netWorth", plan.NetWorth.Total),
		zap.String("level", plan.LevelName),
		zap.Time("debtFree", plan.Payoff.DateFree),
		zap.Int("scenarios", len(plan.Scenarios)),
	)
	return plan, nil
}

// runPayoffs simulates the baseline, the configured strategy, both named
// strategies and every active scenario concurrently.
func runPayoffs(logger *zap.Logger, conf config.Configuration, liabilities []model.Liability, opts []loans.PayoffOption, plan *Plan) {
	strategy := conf.Payoff.Strategy
	extra := conf.Payoff.ExtraMonthlyPayment

	jobs := []payoffJob{
		{strategy: strategy, extra: 0, liabilities: liabilities},
		{strategy: strategy, extra: extra, liabilities: liabilities},
		{strategy: loans.StrategySnowball, extra: extra, liabilities: liabilities},
		{strategy: loans.StrategyAvalanche, extra: extra, liabilities: liabilities},
	}

	var scenarios []ScenarioResult
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "planner.GetPlan"),
			)
			continue
		}
		result := ScenarioResult{
			Name:                scenario.Name,
			Strategy:            scenario.Strategy,
			ExtraMonthlyPayment: scenario.ExtraMonthlyPayment,
			Tags:                adapters.ConfigTagsToModel(scenario.Tags),
		}
		if result.Strategy == "" {
			result.Strategy = strategy
		}
		scoped := loans.FilterByTag(liabilities, result.Tags...)
		jobs = append(jobs,
			payoffJob{strategy: result.Strategy, extra: 0, liabilities: scoped},
			payoffJob{strategy: result.Strategy, extra: result.ExtraMonthlyPayment, liabilities: scoped},
		)
		scenarios = append(scenarios, result)
	}

	simulator := loans.NewPayoffSimulator(logger)
	results := make([]loans.PayoffContext, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job payoffJob) {
			defer wg.Done()
			results[i] = simulator.Simulate(job.liabilities, job.strategy, job.extra, opts...)
		}(i, job)
	}
	wg.Wait()

	plan.Baseline = results[0]
	plan.Payoff = results[1]
	plan.PayoffSavings = loans.InterestSaved(plan.Baseline, plan.Payoff)
	plan.Strategies = StrategyComparison{
		Snowball:    results[2],
		Avalanche:   results[3],
		Recommended: loans.StrategyAvalanche,
	}
	if results[2].InterestPaid < results[3].InterestPaid {
		plan.Strategies.Recommended = loans.StrategySnowball
	}

	for i := range scenarios {
		baseline := results[4+2*i]
		scenarios[i].Payoff = results[5+2*i]
		scenarios[i].Comparison = loans.InterestSaved(baseline, scenarios[i].Payoff)
	}
	plan.Scenarios = scenarios
}

func loanSchedules(logger *zap.Logger, conf config.Configuration) ([]LoanSchedule, error) {
	if len(conf.Loans) == 0 {
		return nil, nil
	}
	byName, err := conf.ProcessLoans(logger)
	if err != nil {
		return nil, fmt.Errorf("loan processing failed: %w", err)
	}

	schedules := make([]LoanSchedule, 0, len(conf.Loans))
	for _, loan := range conf.Loans {
		payments := byName[loan.Name]
		schedules = append(schedules, LoanSchedule{
			Name:          loan.Name,
			Payments:      payments,
			TotalInterest: loans.TotalInterest(payments),
		})
	}
	return schedules, nil
}

// monthlyContribution is the configured contribution, or the positive part of
// free cash flow when useFreeCashFlow is set.
func monthlyContribution(conf config.Configuration, plan *Plan) float64 {
	if conf.Projection.UseFreeCashFlow {
		if plan.Metrics.FreeCashFlow > 0 {
			return plan.Metrics.FreeCashFlow
		}
		return 0
	}
	return conf.Projection.MonthlyContribution
}

func safeWithdrawalRate(conf config.Configuration) float64 {
	if conf.Projection.SafeWithdrawalRate > 0 {
		return conf.Projection.SafeWithdrawalRate
	}
	return constants.DefaultSafeWithdrawalRate
}

func project(logger *zap.Logger, conf config.Configuration, plan *Plan, start time.Time) finance.ProjectionContext {
	opts := []finance.ProjectionOption{
		finance.WithStartDate(start),
		finance.WithInflation(conf.Projection.InflationRate),
		finance.WithPeriodsPerYear(conf.Projection.PeriodsPerYear),
		finance.WithSafeWithdrawalRate(safeWithdrawalRate(conf)),
	}
	if plan.Metrics.MonthlyExpenses > 0 {
		opts = append(opts, finance.WithExpensesTarget(plan.Metrics.MonthlyExpenses))
	}
	return finance.NewGrowthProjector(logger).Project(plan.NetWorth.Liquid, conf.Projection.Rate,
		conf.Projection.Years, monthlyContribution(conf, plan), opts...)
}

func simulateMonteCarlo(logger *zap.Logger, conf config.Configuration, plan *Plan) finance.MonteCarloResult {
	opts := []finance.MonteCarloOption{finance.WithIterations(conf.MonteCarlo.Iterations)}
	if conf.MonteCarlo.Seed != 0 {
		opts = append(opts, finance.WithSeed(conf.MonteCarlo.Seed))
	}
	return finance.NewMonteCarloSimulator(logger).Simulate(plan.NetWorth.Liquid, conf.Projection.Rate,
		conf.MonteCarlo.StdDev, conf.Projection.Years, monthlyContribution(conf, plan), opts...)
}
