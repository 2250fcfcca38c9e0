package config

import (
	"fmt"

	"github.com/iwvelando/finance-planner/pkg/datetime"
	"github.com/iwvelando/finance-planner/pkg/loans"
	"go.uber.org/zap"
)

// Loan indicates a fixed-payment loan and its parameters.
type Loan struct {
	Name                   string         `yaml:"name" mapstructure:"name"`
	StartDate              string         `yaml:"startDate" mapstructure:"startDate"`
	Principal              float64        `yaml:"principal" mapstructure:"principal"`
	InterestRate           float64        `yaml:"interestRate" mapstructure:"interestRate"`
	Term                   int            `yaml:"term" mapstructure:"term"` // months
	ExtraPrincipalPayments []ExtraPayment `yaml:"extraPrincipalPayments,omitempty" mapstructure:"extraPrincipalPayments"`
}

// ExtraPayment is a one-off principal payment applied in the month of Date.
type ExtraPayment struct {
	Date   string  `yaml:"date" mapstructure:"date"`
	Amount float64 `yaml:"amount" mapstructure:"amount"`
}

// ToLoansConfig converts a config Loan to a loans.LoanConfig.
func (loan *Loan) ToLoansConfig() (loans.LoanConfig, error) {
	if loan == nil {
		return loans.LoanConfig{}, fmt.Errorf("loan cannot be nil")
	}

	start, err := datetime.ParseDate(loan.StartDate)
	if err != nil {
		return loans.LoanConfig{}, fmt.Errorf("loan %s has invalid start date %q: %w", loan.Name, loan.StartDate, err)
	}

	loanConfig := loans.LoanConfig{
		Name:         loan.Name,
		StartDate:    datetime.OrToday(start),
		Principal:    loan.Principal,
		InterestRate: loan.InterestRate,
		TermMonths:   loan.Term,
	}

	for _, extra := range loan.ExtraPrincipalPayments {
		date, err := datetime.ParseDate(extra.Date)
		if err != nil || date.IsZero() {
			return loans.LoanConfig{}, fmt.Errorf("loan %s has invalid extra principal date %q", loan.Name, extra.Date)
		}
		loanConfig.ExtraPayment = append(loanConfig.ExtraPayment, loans.ExtraPrincipal{
			Date:   date,
			Amount: extra.Amount,
		})
	}

	return loanConfig, nil
}

// GetAmortizationSchedule computes the amortization schedule for a given Loan.
func (loan *Loan) GetAmortizationSchedule(logger *zap.Logger) ([]loans.Payment, error) {
	loanConfig, err := loan.ToLoansConfig()
	if err != nil {
		return nil, err
	}

	generator := loans.NewAmortizationScheduleGenerator(logger)
	return generator.GenerateSchedule(loanConfig)
}

// ProcessLoans produces the amortization schedule of every configured loan,
// keyed by loan name.
func (conf *Configuration) ProcessLoans(logger *zap.Logger) (map[string][]loans.Payment, error) {
	schedules := make(map[string][]loans.Payment, len(conf.Loans))
	for i := range conf.Loans {
		schedule, err := conf.Loans[i].GetAmortizationSchedule(logger)
		if err != nil {
			return nil, err
		}
		schedules[conf.Loans[i].Name] = schedule
	}
	return schedules, nil
}
