// Package output provides utilities for formatting and displaying plan results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-planner/internal/planner"
	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/loans"
	"github.com/iwvelando/finance-planner/pkg/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders plan to w in the named format.
func Write(w io.Writer, outputFormat string, plan *planner.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	switch strings.ToLower(strings.TrimSpace(outputFormat)) {
	case "", constants.OutputFormatPretty:
		PrettyFormat(w, plan)
		return nil
	case constants.OutputFormatCSV:
		return CsvFormat(w, plan)
	case constants.OutputFormatJSON:
		return JSONFormat(w, plan)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, plan)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// Section names one block of the pretty report.
type Section string

const (
	SectionSnapshot      Section = "snapshot"
	SectionInsights      Section = "insights"
	SectionPayoff        Section = "payoff"
	SectionLoans         Section = "loans"
	SectionProjection    Section = "projection"
	SectionAffordability Section = "affordability"
	SectionOptimization  Section = "optimization"
)

// AllSections lists every section in report order.
var AllSections = []Section{
	SectionSnapshot,
	SectionInsights,
	SectionPayoff,
	SectionLoans,
	SectionProjection,
	SectionAffordability,
	SectionOptimization,
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, plan *planner.Plan) {
	PrettySections(w, plan, AllSections...)
}

// PrettySections outputs only the named sections of the pretty report.
func PrettySections(w io.Writer, plan *planner.Plan, sections ...Section) {
	p := message.NewPrinter(language.English)
	for i, section := range sections {
		if i > 0 {
			_, _ = fmt.Fprintf(w, "\n")
		}
		switch section {
		case SectionSnapshot:
			writeSnapshot(w, p, plan)
		case SectionInsights:
			writeInsights(w, plan)
		case SectionPayoff:
			writeDebts(w, p, plan)
		case SectionLoans:
			writeLoans(w, p, plan)
		case SectionProjection:
			writeProjection(w, p, plan)
		case SectionAffordability:
			writeAffordability(w, plan)
		case SectionOptimization:
			writeOptimization(w, plan)
		}
	}
}

func writeSnapshot(w io.Writer, p *message.Printer, plan *planner.Plan) {
	_, _ = fmt.Fprintf(w, "--- Financial snapshot as of %s ---\n", plan.StartDate.Format(constants.DateLayout))
	for _, line := range plan.NetWorth.Reasoning {
		_, _ = fmt.Fprintf(w, "%s\n", line)
	}
	_, _ = fmt.Fprintf(w, "Financial level: %s\n", plan.LevelName)
	_, _ = p.Fprintf(w, "Monthly income: $%.2f | Expenses: $%.2f | Debt minimums: $%.2f\n",
		plan.Metrics.MonthlyGrossIncome, plan.Metrics.MonthlyExpenses, plan.Metrics.MonthlyDebtPayments)
	_, _ = fmt.Fprintf(w, "Free cash flow: %s | Savings rate: %s | Debt-to-income: %s\n",
		format.Currency(plan.Metrics.FreeCashFlow), format.Percent(plan.Metrics.SavingsRate), format.Percent(plan.Metrics.DebtToIncomeRatio))
	_, _ = fmt.Fprintf(w, "Safe monthly withdrawal: %s\n", format.Currency(plan.SafeMonthlyWithdrawal))

	if len(plan.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range plan.Warnings {
			_, _ = fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

func writeInsights(w io.Writer, plan *planner.Plan) {
	_, _ = fmt.Fprintf(w, "--- Insights ---\n")
	for _, in := range plan.Insights {
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", in.Severity, in.Title, in.Description)
		if in.ActionItem != "" {
			_, _ = fmt.Fprintf(w, "    Action: %s\n", in.ActionItem)
		}
	}
}

func writeDebts(w io.Writer, p *message.Printer, plan *planner.Plan) {
	writePayoff(w, p, "Debt payoff", plan.Payoff)
	_, _ = fmt.Fprintf(w, "Compared to minimum payments: %s interest saved, %d months sooner\n",
		format.Currency(plan.PayoffSavings.InterestSaved), plan.PayoffSavings.MonthsSaved)

	_, _ = fmt.Fprintf(w, "\n--- Strategy comparison ---\n")
	_, _ = fmt.Fprintf(w, "Strategy  | Debt free  | Months | Interest\n")
	_, _ = fmt.Fprintf(w, "________  | _________  | ______ | ________\n")
	for _, ctx := range []loans.PayoffContext{plan.Strategies.Snowball, plan.Strategies.Avalanche} {
		_, _ = p.Fprintf(w, "%-9s | %s | %6d | $%.2f\n", ctx.Strategy, ctx.DateFree.Format(constants.DateLayout), ctx.MonthsElapsed, ctx.InterestPaid)
	}
	_, _ = fmt.Fprintf(w, "Recommended: %s\n", plan.Strategies.Recommended)

	for _, scenario := range plan.Scenarios {
		_, _ = fmt.Fprintf(w, "\n")
		writePayoff(w, p, fmt.Sprintf("Results for scenario %s", scenario.Name), scenario.Payoff)
		_, _ = fmt.Fprintf(w, "Compared to minimum payments: %s interest saved, %d months sooner\n",
			format.Currency(scenario.Comparison.InterestSaved), scenario.Comparison.MonthsSaved)
	}

	if len(plan.TagGroups) > 0 {
		_, _ = fmt.Fprintf(w, "\n--- Debt by tag ---\n")
		for _, group := range plan.TagGroups {
			label := "Untagged"
			if group.Tag != "" {
				label = group.Tag.Label()
			}
			_, _ = p.Fprintf(w, "%s: $%.2f across %d debts\n", label, group.TotalBalance, len(group.Liabilities))
		}
	}
}

func writeLoans(w io.Writer, p *message.Printer, plan *planner.Plan) {
	_, _ = fmt.Fprintf(w, "--- Loans ---\n")
	if len(plan.Loans) == 0 {
		_, _ = fmt.Fprintf(w, "No loans configured\n")
		return
	}
	for _, loan := range plan.Loans {
		if len(loan.Payments) == 0 {
			_, _ = fmt.Fprintf(w, "%s: no payments scheduled\n", loan.Name)
			continue
		}
		first, last := loan.Payments[0], loan.Payments[len(loan.Payments)-1]
		_, _ = p.Fprintf(w, "%s: $%.2f/mo | Payments: %d | Paid off: %s | Total interest: $%.2f\n",
			loan.Name, first.Payment, len(loan.Payments), last.Date.Format(constants.DateLayout), loan.TotalInterest)
	}
}

func writeAffordability(w io.Writer, plan *planner.Plan) {
	_, _ = fmt.Fprintf(w, "--- Affordability ---\n")
	a := plan.Affordability
	if a == nil {
		_, _ = fmt.Fprintf(w, "No purchase configured\n")
		return
	}
	_, _ = fmt.Fprintf(w, "Risk: %s | Remaining liquidity: %s | Runway: %d days\n",
		a.RiskLevel, format.Currency(a.NewLiquidity), a.ImpactDays)
	_, _ = fmt.Fprintf(w, "%s\n", a.Message)
}

func writeOptimization(w io.Writer, plan *planner.Plan) {
	_, _ = fmt.Fprintf(w, "Optimization adjustments:\n")
	o := plan.Optimization
	if o == nil {
		_, _ = fmt.Fprintf(w, "  none\n")
		return
	}
	status := "converged"
	if !o.Converged {
		status = "not converged"
	}
	_, _ = fmt.Fprintf(w, "  - %s (%s): %s -> %s, debt free in %d months (target %d, %d iterations, %s)\n",
		o.TargetName, o.Field, o.OriginalDisplay, o.ValueDisplay, o.Months, o.TargetMonths, o.Iterations, status)
	for _, note := range o.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

func writePayoff(w io.Writer, p *message.Printer, title string, ctx loans.PayoffContext) {
	_, _ = fmt.Fprintf(w, "--- %s ---\n", title)
	for _, line := range ctx.Reasoning {
		_, _ = fmt.Fprintf(w, "%s\n", line)
	}
	_, _ = p.Fprintf(w, "Debt free: %s | Months: %d | Interest paid: $%.2f\n",
		ctx.DateFree.Format(constants.DateLayout), ctx.MonthsElapsed, ctx.InterestPaid)
	if len(ctx.Log) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Date       | Debt                 | Payment      | Event\n")
	_, _ = fmt.Fprintf(w, "____       | ____                 | _______      | _____\n")
	for _, entry := range ctx.Log {
		_, _ = p.Fprintf(w, "%s | %-20s | $%-11.2f | %s\n",
			entry.Date.Format(constants.DateLayout), entry.DebtName, entry.Payment, entry.Event)
	}
}

func writeProjection(w io.Writer, p *message.Printer, plan *planner.Plan) {
	proj := plan.Projection
	_, _ = fmt.Fprintf(w, "--- Growth projection ---\n")
	_, _ = fmt.Fprintf(w, "%s\n", proj.Context)
	_, _ = fmt.Fprintf(w, "Date       | Nominal         | Real\n")
	_, _ = fmt.Fprintf(w, "____       | _______         | ____\n")
	step := plan.PeriodsPerYear
	if step <= 0 {
		step = constants.MonthsPerYear
	}
	for i := 0; i < len(proj.Series); i += step {
		realValue := "-"
		if i < len(proj.RealSeries) {
			realValue = "$" + format.Grouped(proj.RealSeries[i].Value)
		}
		_, _ = fmt.Fprintf(w, "%s | $%-14s | %s\n", proj.Series[i].Date.Format(constants.DateLayout), format.Grouped(proj.Series[i].Value), realValue)
	}

	if mc := plan.MonteCarlo; mc != nil {
		_, _ = fmt.Fprintf(w, "\n--- Monte Carlo (%d trials) ---\n", mc.Iterations)
		_, _ = p.Fprintf(w, "Worst: $%.2f | P10: $%.2f | Median: $%.2f | P90: $%.2f | Best: $%.2f\n",
			mc.WorstCase, mc.P10, mc.P50, mc.P90, mc.BestCase)
	}
}

// CsvFormat outputs the remaining debt balance of every payoff run in
// comma-separated value format, one row per simulated month.
func CsvFormat(w io.Writer, plan *planner.Plan) error {
	type column struct {
		name   string
		series []model.TimeSeriesPoint
	}
	columns := []column{
		{"baseline", plan.Baseline.Series},
		{plan.Payoff.Strategy, plan.Payoff.Series},
		{"snowball", plan.Strategies.Snowball.Series},
		{"avalanche", plan.Strategies.Avalanche.Series},
	}
	for _, scenario := range plan.Scenarios {
		columns = append(columns, column{scenario.Name, scenario.Payoff.Series})
	}

	// All runs share a start date and month length, so the longest series
	// provides the timeline.
	timeline := columns[0].series
	for _, c := range columns[1:] {
		if len(c.series) > len(timeline) {
			timeline = c.series
		}
	}

	writer := csv.NewWriter(w)
	header := []string{"date"}
	for _, c := range columns {
		header = append(header, fmt.Sprintf("balance (%s)", c.name))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, point := range timeline {
		row := []string{point.Date.Format(constants.DateLayout)}
		for _, c := range columns {
			value := 0.0
			if i < len(c.series) {
				value = c.series[i].Value
			}
			row = append(row, format.Fixed(value))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the full plan as indented JSON.
func JSONFormat(w io.Writer, plan *planner.Plan) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan as JSON: %w", err)
	}
	return nil
}

// YAMLFormat outputs the full plan as YAML.
func YAMLFormat(w io.Writer, plan *planner.Plan) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan as YAML: %w", err)
	}
	return encoder.Close()
}
