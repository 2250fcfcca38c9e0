// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/datetime"
	"github.com/iwvelando/finance-planner/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected for dates in config files.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for finance-planner.
type Configuration struct {
	StartDate     string              `yaml:"startDate,omitempty" mapstructure:"startDate"`
	Assets        []Asset             `yaml:"assets,omitempty" mapstructure:"assets"`
	Liabilities   []Liability         `yaml:"liabilities,omitempty" mapstructure:"liabilities"`
	Income        []Income            `yaml:"income,omitempty" mapstructure:"income"`
	Spending      []Spending          `yaml:"spending,omitempty" mapstructure:"spending"`
	Loans         []Loan              `yaml:"loans,omitempty" mapstructure:"loans"`
	Payoff        PayoffConfig        `yaml:"payoff,omitempty" mapstructure:"payoff"`
	Scenarios     []Scenario          `yaml:"scenarios,omitempty" mapstructure:"scenarios"`
	Projection    ProjectionConfig    `yaml:"projection,omitempty" mapstructure:"projection"`
	Affordability AffordabilityConfig `yaml:"affordability,omitempty" mapstructure:"affordability"`
	MonteCarlo    MonteCarloConfig    `yaml:"monteCarlo,omitempty" mapstructure:"monteCarlo"`
	Optimizer     *OptimizerConfig    `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Logging       LoggingConfig       `yaml:"logging,omitempty" mapstructure:"logging"`
	Output        OutputConfig        `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json, yaml
}

// Asset is an asset record as written in the config file.
type Asset struct {
	ID        string  `yaml:"id,omitempty" mapstructure:"id"`
	Name      string  `yaml:"name" mapstructure:"name"`
	Type      string  `yaml:"type,omitempty" mapstructure:"type"`
	Value     float64 `yaml:"value" mapstructure:"value"`
	APY       float64 `yaml:"apy,omitempty" mapstructure:"apy"`
	Liquidity string  `yaml:"liquidity,omitempty" mapstructure:"liquidity"`
}

// Liability is a debt record as written in the config file.
type Liability struct {
	ID           string   `yaml:"id,omitempty" mapstructure:"id"`
	Name         string   `yaml:"name" mapstructure:"name"`
	Balance      float64  `yaml:"balance" mapstructure:"balance"`
	InterestRate float64  `yaml:"interestRate" mapstructure:"interestRate"`
	MinPayment   float64  `yaml:"minPayment,omitempty" mapstructure:"minPayment"`
	PaymentURL   string   `yaml:"paymentUrl,omitempty" mapstructure:"paymentUrl"`
	CreditLimit  *float64 `yaml:"creditLimit,omitempty" mapstructure:"creditLimit"`
	Tags         []string `yaml:"tags,omitempty" mapstructure:"tags"`
}

// Income is a recurring inflow as written in the config file.
type Income struct {
	Source    string  `yaml:"source" mapstructure:"source"`
	Amount    float64 `yaml:"amount" mapstructure:"amount"`
	Frequency string  `yaml:"frequency,omitempty" mapstructure:"frequency"`
}

// Spending is a monthly spending category as written in the config file.
type Spending struct {
	ID       string  `yaml:"id,omitempty" mapstructure:"id"`
	Category string  `yaml:"category" mapstructure:"category"`
	Amount   float64 `yaml:"amount" mapstructure:"amount"`
	Type     string  `yaml:"type,omitempty" mapstructure:"type"`
	Owner    string  `yaml:"owner,omitempty" mapstructure:"owner"`
	Notes    string  `yaml:"notes,omitempty" mapstructure:"notes"`
}

// PayoffConfig holds the debt payoff simulation settings.
type PayoffConfig struct {
	Strategy            string  `yaml:"strategy" mapstructure:"strategy"`
	ExtraMonthlyPayment float64 `yaml:"extraMonthlyPayment" mapstructure:"extraMonthlyPayment"`
	MaxMonths           int     `yaml:"maxMonths" mapstructure:"maxMonths"`
	DaysPerMonth        int     `yaml:"daysPerMonth" mapstructure:"daysPerMonth"`
}

// Scenario is an alternative payoff plan compared against the baseline.
type Scenario struct {
	Name                string   `yaml:"name" mapstructure:"name"`
	Active              bool     `yaml:"active" mapstructure:"active"`
	Strategy            string   `yaml:"strategy,omitempty" mapstructure:"strategy"`
	ExtraMonthlyPayment float64  `yaml:"extraMonthlyPayment" mapstructure:"extraMonthlyPayment"`
	Tags                []string `yaml:"tags,omitempty" mapstructure:"tags"`
}

// ProjectionConfig holds the compound growth settings.
type ProjectionConfig struct {
	Rate                float64 `yaml:"rate" mapstructure:"rate"`
	Years               int     `yaml:"years" mapstructure:"years"`
	InflationRate       float64 `yaml:"inflationRate,omitempty" mapstructure:"inflationRate"`
	PeriodsPerYear      int     `yaml:"periodsPerYear" mapstructure:"periodsPerYear"`
	MonthlyContribution float64 `yaml:"monthlyContribution,omitempty" mapstructure:"monthlyContribution"`
	UseFreeCashFlow     bool    `yaml:"useFreeCashFlow,omitempty" mapstructure:"useFreeCashFlow"`
	SafeWithdrawalRate  float64 `yaml:"safeWithdrawalRate" mapstructure:"safeWithdrawalRate"`
}

// AffordabilityConfig describes an optional purchase to assess.
type AffordabilityConfig struct {
	Cost               float64 `yaml:"cost,omitempty" mapstructure:"cost"`
	MonthlyBurn        float64 `yaml:"monthlyBurn,omitempty" mapstructure:"monthlyBurn"`
	CriticalRunwayDays int     `yaml:"criticalRunwayDays" mapstructure:"criticalRunwayDays"`
	CautionRunwayDays  int     `yaml:"cautionRunwayDays" mapstructure:"cautionRunwayDays"`
}

// MonteCarloConfig holds the randomized growth settings.
type MonteCarloConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Iterations int     `yaml:"iterations" mapstructure:"iterations"`
	StdDev     float64 `yaml:"stdDev" mapstructure:"stdDev"`
	Seed       int64   `yaml:"seed,omitempty" mapstructure:"seed"`
}

// setDefaults registers the default values on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("payoff.strategy", "avalanche")
	v.SetDefault("payoff.maxMonths", constants.DefaultMaxPayoffMonths)
	v.SetDefault("payoff.daysPerMonth", constants.DaysPerMonth)
	v.SetDefault("projection.years", 10)
	v.SetDefault("projection.periodsPerYear", constants.MonthsPerYear)
	v.SetDefault("projection.safeWithdrawalRate", constants.DefaultSafeWithdrawalRate)
	v.SetDefault("affordability.criticalRunwayDays", constants.CriticalRunwayDays)
	v.SetDefault("affordability.cautionRunwayDays", constants.CautionRunwayDays)
	v.SetDefault("monteCarlo.iterations", constants.DefaultMonteCarloIterations)
	v.SetDefault("monteCarlo.stdDev", 0.15)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode %s into struct: %w", configPath, err)
	}

	return &configuration, nil
}

// Start returns the configured start date, or the zero time when unset so
// engines fall back to today.
func (c *Configuration) Start() (time.Time, error) {
	t, err := datetime.ParseDate(c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// ValidateConfiguration checks settings that would make a run meaningless and
// returns the rest as warnings. Record level problems are reported by
// pkg/validation once records are built.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	var warnings []string

	if _, err := c.Start(); err != nil {
		return nil, err
	}
	if err := validation.ValidateStrategy(c.Payoff.Strategy); err != nil {
		return nil, err
	}
	if c.Payoff.ExtraMonthlyPayment < 0 {
		return nil, fmt.Errorf("payoff extra monthly payment %.2f: %w", c.Payoff.ExtraMonthlyPayment, validation.ErrNegativeValue)
	}
	if c.Projection.PeriodsPerYear <= 0 {
		return nil, validation.ErrInvalidPeriodsCount
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return nil, err
		}
	}

	for _, s := range c.Scenarios {
		if !s.Active {
			continue
		}
		if s.Strategy != "" {
			if err := validation.ValidateStrategy(s.Strategy); err != nil {
				return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
			}
		}
		if s.ExtraMonthlyPayment < 0 {
			return nil, fmt.Errorf("scenario %q extra monthly payment %.2f: %w", s.Name, s.ExtraMonthlyPayment, validation.ErrNegativeValue)
		}
	}

	if c.Projection.Years <= 0 {
		warnings = append(warnings, "Projection years is not positive - growth projection will only contain the starting value")
	}
	if c.Projection.UseFreeCashFlow && c.Projection.MonthlyContribution > 0 {
		warnings = append(warnings, "Projection monthlyContribution is ignored because useFreeCashFlow is enabled")
	}
	if c.Affordability.CriticalRunwayDays > c.Affordability.CautionRunwayDays {
		warnings = append(warnings, fmt.Sprintf("Affordability critical runway (%d days) exceeds caution runway (%d days)",
			c.Affordability.CriticalRunwayDays, c.Affordability.CautionRunwayDays))
	}
	if c.MonteCarlo.Enabled && c.MonteCarlo.StdDev <= 0 {
		warnings = append(warnings, "Monte Carlo stdDev is not positive - every trial will follow the same path")
	}
	if c.Optimizer != nil {
		if err := c.Optimizer.Validate(c.Payoff.Strategy); err != nil {
			return nil, err
		}
	}

	return warnings, nil
}
