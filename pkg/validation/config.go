// Package validation provides record and configuration validation utilities.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-planner/pkg/finance"
	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/loans"
	"github.com/iwvelando/finance-planner/pkg/model"
)

// Sentinel errors; returned errors wrap them so callers can use errors.Is.
var (
	ErrNegativeValue       = errors.New("negative value")
	ErrMissingName         = errors.New("missing name")
	ErrUnknownStrategy     = errors.New("unknown payoff strategy")
	ErrUnknownAssetType    = errors.New("unknown asset type")
	ErrUnknownLiquidity    = errors.New("unknown liquidity status")
	ErrUnknownTag          = errors.New("unknown liability tag")
	ErrInvalidCreditLimit  = errors.New("credit limit must be positive")
	ErrInvalidPeriodsCount = errors.New("periods per year must be positive")
)

// ValidateAsset rejects structurally invalid assets.
func ValidateAsset(a model.Asset) error {
	var errs []error
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, fmt.Errorf("asset: %w", ErrMissingName))
	}
	if a.Value < 0 {
		errs = append(errs, fmt.Errorf("asset %q value %.2f: %w", a.Name, a.Value, ErrNegativeValue))
	}
	if a.Type != "" {
		if _, ok := model.ParseAssetType(string(a.Type)); !ok {
			errs = append(errs, fmt.Errorf("asset %q type %q: %w", a.Name, a.Type, ErrUnknownAssetType))
		}
	}
	if a.Liquidity != "" && a.Liquidity != model.Liquid && a.Liquidity != model.Illiquid {
		errs = append(errs, fmt.Errorf("asset %q liquidity %q: %w", a.Name, a.Liquidity, ErrUnknownLiquidity))
	}
	return errors.Join(errs...)
}

// ValidateLiability rejects structurally invalid liabilities.
func ValidateLiability(l model.Liability) error {
	var errs []error
	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, fmt.Errorf("liability: %w", ErrMissingName))
	}
	if l.Balance < 0 {
		errs = append(errs, fmt.Errorf("liability %q balance %.2f: %w", l.Name, l.Balance, ErrNegativeValue))
	}
	if l.InterestRate < 0 {
		errs = append(errs, fmt.Errorf("liability %q interest rate %.4f: %w", l.Name, l.InterestRate, ErrNegativeValue))
	}
	if l.MinPayment < 0 {
		errs = append(errs, fmt.Errorf("liability %q minimum payment %.2f: %w", l.Name, l.MinPayment, ErrNegativeValue))
	}
	if l.CreditLimit != nil && *l.CreditLimit <= 0 {
		errs = append(errs, fmt.Errorf("liability %q: %w", l.Name, ErrInvalidCreditLimit))
	}
	for _, tag := range l.Tags {
		if _, ok := model.ParseTag(string(tag)); !ok {
			errs = append(errs, fmt.Errorf("liability %q tag %q: %w", l.Name, tag, ErrUnknownTag))
		}
	}
	return errors.Join(errs...)
}

// ValidateIncome rejects negative income amounts. Unknown frequencies are
// only warned about by RecordValidator.
func ValidateIncome(i model.IncomeSource) error {
	var errs []error
	if strings.TrimSpace(i.Source) == "" {
		errs = append(errs, fmt.Errorf("income: %w", ErrMissingName))
	}
	if i.Amount < 0 {
		errs = append(errs, fmt.Errorf("income %q amount %.2f: %w", i.Source, i.Amount, ErrNegativeValue))
	}
	return errors.Join(errs...)
}

// ValidateSpending rejects negative spending amounts.
func ValidateSpending(s model.SpendingCategory) error {
	var errs []error
	if strings.TrimSpace(s.Category) == "" {
		errs = append(errs, fmt.Errorf("spending: %w", ErrMissingName))
	}
	if s.Amount < 0 {
		errs = append(errs, fmt.Errorf("spending %q amount %.2f: %w", s.Category, s.Amount, ErrNegativeValue))
	}
	return errors.Join(errs...)
}

// ValidateStrategy accepts the known payoff strategies case-insensitively.
func ValidateStrategy(strategy string) error {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case loans.StrategyAvalanche, loans.StrategySnowball:
		return nil
	}
	return fmt.Errorf("strategy %q, expected %s or %s: %w",
		strategy, loans.StrategyAvalanche, loans.StrategySnowball, ErrUnknownStrategy)
}

// RecordValidator validates a full set of household records.
type RecordValidator struct {
	Assets      []model.Asset
	Liabilities []model.Liability
	Income      []model.IncomeSource
	Spending    []model.SpendingCategory
}

// Validate returns every structural error joined together, or nil.
func (rv *RecordValidator) Validate() error {
	var errs []error
	for _, a := range rv.Assets {
		errs = append(errs, ValidateAsset(a))
	}
	for _, l := range rv.Liabilities {
		errs = append(errs, ValidateLiability(l))
	}
	for _, i := range rv.Income {
		errs = append(errs, ValidateIncome(i))
	}
	for _, s := range rv.Spending {
		errs = append(errs, ValidateSpending(s))
	}
	return errors.Join(errs...)
}

// ValidateAll returns warnings for plausible but suspicious records. None of
// them stop a simulation.
func (rv *RecordValidator) ValidateAll() []string {
	var warnings []string

	for _, i := range rv.Income {
		if _, ok := finance.MonthlyMultiplier(i.Frequency); !ok {
			warnings = append(warnings, fmt.Sprintf("Income '%s' has unknown frequency '%s' - treated as monthly",
				i.Source, i.Frequency))
		}
	}

	for _, l := range rv.Liabilities {
		if l.Balance > 0 && l.MinPayment <= 0 {
			warnings = append(warnings, fmt.Sprintf("Liability '%s' has no minimum payment - assuming the greater of $25 or interest plus 1%% of balance",
				l.Name))
		}
		if util, ok := l.Utilization(); ok && util > 1 {
			warnings = append(warnings, fmt.Sprintf("Liability '%s' balance %s exceeds its credit limit %s (%s utilization)",
				l.Name, format.Currency(l.Balance), format.Currency(*l.CreditLimit), format.Percent(util)))
		}
	}

	return warnings
}
