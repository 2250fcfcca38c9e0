package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-planner/pkg/validation"
)

const (
	OptimizerFieldExtraPayment = "extraMonthlyPayment"

	OptimizerTargetDebtFree = "debtFree"

	defaultToleranceAmount = 0.01
	defaultMaxIterations   = 50
	defaultMaxExtraPayment = 10000
)

// OptimizerConfig defines a single-parameter optimization directive: search
// the extra monthly payment that clears every debt within TargetMonths.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" mapstructure:"field"`
	Target        string   `yaml:"target,omitempty" mapstructure:"target"`
	Strategy      string   `yaml:"strategy,omitempty" mapstructure:"strategy"`
	TargetMonths  int      `yaml:"targetMonths" mapstructure:"targetMonths"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerFieldExtraPayment
	}
	switch strings.ToLower(trimmed) {
	case "extramonthlypayment", "extra_monthly_payment", "extra-monthly-payment", "extra":
		return OptimizerFieldExtraPayment
	default:
		return strings.ToLower(trimmed)
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
// fallbackStrategy is used when the directive does not name one.
func (o *OptimizerConfig) Normalize(fallbackStrategy string) {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)

	o.Target = strings.TrimSpace(o.Target)
	if o.Target == "" {
		o.Target = OptimizerTargetDebtFree
	}

	o.Strategy = strings.ToLower(strings.TrimSpace(o.Strategy))
	if o.Strategy == "" {
		o.Strategy = strings.ToLower(strings.TrimSpace(fallbackStrategy))
	}

	if o.Min == nil {
		minimum := 0.0
		o.Min = &minimum
	}
	if o.Max == nil {
		maximum := float64(defaultMaxExtraPayment)
		o.Max = &maximum
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultToleranceAmount
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate(fallbackStrategy string) error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize(fallbackStrategy)

	if o.Field != OptimizerFieldExtraPayment {
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}
	if o.Target != OptimizerTargetDebtFree {
		return fmt.Errorf("optimizer target %q is not supported", o.Target)
	}
	if err := validation.ValidateStrategy(o.Strategy); err != nil {
		return fmt.Errorf("optimizer: %w", err)
	}
	if o.TargetMonths <= 0 {
		return fmt.Errorf("optimizer target months %d must be positive", o.TargetMonths)
	}
	if *o.Min < 0 {
		return fmt.Errorf("optimizer minimum %.2f: %w", *o.Min, validation.ErrNegativeValue)
	}
	if *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %.2f must be less than maximum %.2f", *o.Min, *o.Max)
	}

	return nil
}
