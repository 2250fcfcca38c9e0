// Package loans provides the debt payoff simulator, fixed-payment amortization
// schedules and liability grouping utilities.
package loans

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/datetime"
	"github.com/iwvelando/finance-planner/pkg/finance"
	"github.com/iwvelando/finance-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given payment.
type Payment struct {
	Date               time.Time `json:"date" yaml:"date"`
	Payment            float64   `json:"payment" yaml:"payment"`
	Principal          float64   `json:"principal" yaml:"principal"`
	Interest           float64   `json:"interest" yaml:"interest"`
	RemainingPrincipal float64   `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// ExtraPrincipal is a one-off principal payment on a given month.
type ExtraPrincipal struct {
	Date   time.Time
	Amount float64
}

// LoanConfig represents loan configuration parameters.
type LoanConfig struct {
	Name         string
	StartDate    time.Time
	Principal    float64
	InterestRate float64 // annual, decimal
	TermMonths   int
	ExtraPayment []ExtraPrincipal
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return principal
	}
	if annualInterestRate <= 0 {
		return principal / float64(termMonths)
	}
	if termMonths%constants.MonthsPerYear == 0 {
		return finance.AmortizationPayment(principal, annualInterestRate, termMonths/constants.MonthsPerYear, constants.MonthsPerYear)
	}
	r := annualInterestRate / constants.MonthsPerYear
	return r * principal / (1 - math.Pow(1+r, -float64(termMonths)))
}

// CalculateExtraPrincipal calculates the total extra principal payment for
// the month containing date.
func CalculateExtraPrincipal(extra []ExtraPrincipal, date time.Time) float64 {
	amount := 0.0
	label := datetime.MonthLabel(date)
	for _, e := range extra {
		if datetime.MonthLabel(e.Date) == label {
			amount += e.Amount
		}
	}
	return amount
}

// AmortizationScheduleGenerator provides utilities for generating loan
// amortization schedules.
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance.
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// AmortizationSchedule builds the schedule of a plain fixed-payment loan
// without extra principal.
func AmortizationSchedule(principal, annualRate float64, years int, start time.Time) []Payment {
	schedule, _ := NewAmortizationScheduleGenerator(nil).GenerateSchedule(LoanConfig{
		StartDate:    start,
		Principal:    principal,
		InterestRate: annualRate,
		TermMonths:   years * constants.MonthsPerYear,
	})
	return schedule
}

// GenerateSchedule creates the month-by-month schedule for a loan. The first
// payment is due one month after the start date. Extra principal is capped at
// the remaining balance so the loan is never overpaid.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan LoanConfig) ([]Payment, error) {
	if loan.Principal < 0 {
		return nil, fmt.Errorf("loan %s has negative principal %.2f", loan.Name, loan.Principal)
	}
	if loan.TermMonths <= 0 {
		return nil, fmt.Errorf("loan %s has non-positive term %d", loan.Name, loan.TermMonths)
	}

	monthlyPayment := CalculateMonthlyPayment(loan.Principal, loan.InterestRate, loan.TermMonths)

	start := datetime.OrToday(loan.StartDate)
	remaining := loan.Principal
	schedule := make([]Payment, 0, loan.TermMonths)

	for month := 1; month <= loan.TermMonths && remaining > 0; month++ {
		date := datetime.AddMonths(start, month)
		interest := finance.MonthlyInterest(remaining, loan.InterestRate, constants.MonthsPerYear)
		principal := monthlyPayment - interest

		extra := CalculateExtraPrincipal(loan.ExtraPayment, date)
		if extra > 0 {
			if extra > remaining-principal {
				g.logger.Debug("Capping extra principal payment to prevent overpayment",
					zap.String("op", "loans.GenerateSchedule"),
					zap.String("loan", loan.Name),
					zap.Float64("requested", extra),
					zap.Float64("cappedTo", remaining-principal),
				)
				extra = math.Max(0, remaining-principal)
			}
			g.logger.Debug(fmt.Sprintf("%s: applying extra principal payment %.2f for loan %s",
				datetime.MonthLabel(date), extra, loan.Name),
				zap.String("op", "loans.GenerateSchedule"),
			)
			principal += extra
		}

		if month == loan.TermMonths || mathutil.Round(remaining-principal) <= 0 {
			// Settle the residual so the final row lands on exactly zero.
			principal = remaining
		}
		remaining -= principal

		schedule = append(schedule, Payment{
			Date:               date,
			Payment:            principal + interest,
			Principal:          principal,
			Interest:           interest,
			RemainingPrincipal: remaining,
		})
	}

	return schedule, nil
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []Payment) float64 {
	total := 0.0
	for _, p := range schedule {
		total += p.Interest
	}
	return total
}
