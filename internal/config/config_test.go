package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/validation"
	"go.uber.org/zap"
)

const testConfigPath = "../../test/test_config.yaml"

func floatPtr(value float64) *float64 {
	return &value
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test config file",
			configPath: testConfigPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.StartDate != "2025-01-01" {
		t.Errorf("Expected StartDate = 2025-01-01, got %v", config.StartDate)
	}
	if len(config.Assets) != 4 {
		t.Errorf("Expected 4 assets, got %d", len(config.Assets))
	}
	if len(config.Liabilities) != 4 {
		t.Fatalf("Expected 4 liabilities, got %d", len(config.Liabilities))
	}

	visa := config.Liabilities[0]
	if visa.Name != "Visa" || visa.Balance != 4500 || visa.InterestRate != 0.2299 || visa.MinPayment != 135 {
		t.Errorf("Unexpected Visa liability: %+v", visa)
	}
	if visa.CreditLimit == nil || *visa.CreditLimit != 10000 {
		t.Errorf("Expected Visa credit limit 10000, got %v", visa.CreditLimit)
	}
	if config.Liabilities[1].CreditLimit != nil {
		t.Errorf("Expected Amex to have no credit limit, got %v", *config.Liabilities[1].CreditLimit)
	}
	if len(config.Liabilities[3].Tags) != 1 || config.Liabilities[3].Tags[0] != "Family Loan" {
		t.Errorf("Expected Uncle Bob tags [Family Loan], got %v", config.Liabilities[3].Tags)
	}

	if len(config.Income) != 3 || config.Income[0].Frequency != "bi-weekly" {
		t.Errorf("Unexpected income: %+v", config.Income)
	}
	if len(config.Spending) != 4 {
		t.Errorf("Expected 4 spending categories, got %d", len(config.Spending))
	}

	expectedScenarios := []struct {
		name   string
		active bool
	}{
		{"aggressive snowball", true},
		{"cards only", true},
		{"parked idea", false},
	}
	if len(config.Scenarios) != len(expectedScenarios) {
		t.Fatalf("Expected %d scenarios, got %d", len(expectedScenarios), len(config.Scenarios))
	}
	for i, expected := range expectedScenarios {
		if config.Scenarios[i].Name != expected.name {
			t.Errorf("Expected scenario name %s, got %s", expected.name, config.Scenarios[i].Name)
		}
		if config.Scenarios[i].Active != expected.active {
			t.Errorf("Expected scenario %s active = %v", expected.name, expected.active)
		}
	}

	if config.Optimizer == nil || config.Optimizer.TargetMonths != 24 {
		t.Errorf("Expected optimizer with targetMonths 24, got %+v", config.Optimizer)
	}
	if config.Logging.Format != "console" {
		t.Errorf("Expected logging format console, got %s", config.Logging.Format)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Payoff.MaxMonths != constants.DefaultMaxPayoffMonths {
		t.Errorf("Expected default maxMonths %d, got %d", constants.DefaultMaxPayoffMonths, config.Payoff.MaxMonths)
	}
	if config.Payoff.DaysPerMonth != constants.DaysPerMonth {
		t.Errorf("Expected default daysPerMonth %d, got %d", constants.DaysPerMonth, config.Payoff.DaysPerMonth)
	}
	if config.Projection.PeriodsPerYear != constants.MonthsPerYear {
		t.Errorf("Expected default periodsPerYear %d, got %d", constants.MonthsPerYear, config.Projection.PeriodsPerYear)
	}
	if config.Projection.SafeWithdrawalRate != constants.DefaultSafeWithdrawalRate {
		t.Errorf("Expected default safe withdrawal rate %.2f, got %.2f", constants.DefaultSafeWithdrawalRate, config.Projection.SafeWithdrawalRate)
	}
	if config.Affordability.CriticalRunwayDays != constants.CriticalRunwayDays || config.Affordability.CautionRunwayDays != constants.CautionRunwayDays {
		t.Errorf("Unexpected runway thresholds: %+v", config.Affordability)
	}
	if config.Logging.Level != "info" {
		t.Errorf("Expected logging level info, got %s", config.Logging.Level)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	t.Setenv("PLANNER_PAYOFF_STRATEGY", "snowball")

	config, err := LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Payoff.Strategy != "snowball" {
		t.Errorf("Expected environment to override strategy to snowball, got %s", config.Payoff.Strategy)
	}
}

func TestValidateConfigurationExample(t *testing.T) {
	config, err := LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	warnings, err := config.ValidateConfiguration()
	if err != nil {
		t.Fatalf("ValidateConfiguration() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if config.Optimizer.Strategy != "avalanche" {
		t.Errorf("Expected optimizer to inherit avalanche, got %s", config.Optimizer.Strategy)
	}
}

func validConfiguration() Configuration {
	return Configuration{
		StartDate:  "2025-01-01",
		Payoff:     PayoffConfig{Strategy: "avalanche"},
		Projection: ProjectionConfig{Years: 10, PeriodsPerYear: 12},
		Affordability: AffordabilityConfig{
			CriticalRunwayDays: 90,
			CautionRunwayDays:  180,
		},
	}
}

func TestValidateConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr error
		errText string
	}{
		{
			name:    "Bad start date",
			mutate:  func(c *Configuration) { c.StartDate = "01/01/2025" },
			errText: "invalid start date",
		},
		{
			name:    "Unknown strategy",
			mutate:  func(c *Configuration) { c.Payoff.Strategy = "hybrid" },
			wantErr: validation.ErrUnknownStrategy,
		},
		{
			name:    "Negative extra payment",
			mutate:  func(c *Configuration) { c.Payoff.ExtraMonthlyPayment = -10 },
			wantErr: validation.ErrNegativeValue,
		},
		{
			name:    "Zero periods per year",
			mutate:  func(c *Configuration) { c.Projection.PeriodsPerYear = 0 },
			wantErr: validation.ErrInvalidPeriodsCount,
		},
		{
			name:    "Unknown output format",
			mutate:  func(c *Configuration) { c.Output.Format = "xml" },
			errText: "expected output format",
		},
		{
			name: "Active scenario with unknown strategy",
			mutate: func(c *Configuration) {
				c.Scenarios = []Scenario{{Name: "odd", Active: true, Strategy: "random"}}
			},
			wantErr: validation.ErrUnknownStrategy,
		},
		{
			name: "Optimizer without target",
			mutate: func(c *Configuration) {
				c.Optimizer = &OptimizerConfig{}
			},
			errText: "target months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfiguration()
			tt.mutate(&config)
			_, err := config.ValidateConfiguration()
			if err == nil {
				t.Fatalf("ValidateConfiguration() expected error but got none")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConfiguration() error = %v, expected %v", err, tt.wantErr)
			}
			if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("ValidateConfiguration() error = %v, expected it to contain %q", err, tt.errText)
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	config := validConfiguration()
	config.Scenarios = []Scenario{{Name: "ignored", Active: false, Strategy: "random"}}
	config.Projection.Years = 0
	config.Projection.UseFreeCashFlow = true
	config.Projection.MonthlyContribution = 100
	config.Affordability.CriticalRunwayDays = 200
	config.MonteCarlo = MonteCarloConfig{Enabled: true}

	warnings, err := config.ValidateConfiguration()
	if err != nil {
		t.Fatalf("ValidateConfiguration() error = %v", err)
	}
	if len(warnings) != 4 {
		t.Fatalf("Expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[2] != "Affordability critical runway (200 days) exceeds caution runway (180 days)" {
		t.Errorf("Unexpected runway warning: %s", warnings[2])
	}
}

func TestProcessLoans(t *testing.T) {
	config, err := LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	schedules, err := config.ProcessLoans(zap.NewNop())
	if err != nil {
		t.Fatalf("ProcessLoans() error = %v", err)
	}

	schedule, ok := schedules["Car Loan"]
	if !ok {
		t.Fatalf("Expected a schedule for Car Loan, got %v", schedules)
	}
	if len(schedule) == 0 || len(schedule) >= 60 {
		t.Errorf("Expected extra principal to shorten the 60 month term, got %d payments", len(schedule))
	}
	first := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !schedule[0].Date.Equal(first) {
		t.Errorf("Expected first payment on %s, got %s", first, schedule[0].Date)
	}
}

func TestLoanToLoansConfig(t *testing.T) {
	loan := Loan{
		Name:         "Boat",
		StartDate:    "2025-03-15",
		Principal:    15000,
		InterestRate: 0.08,
		Term:         48,
		ExtraPrincipalPayments: []ExtraPayment{
			{Date: "2025-09-01", Amount: 250},
		},
	}

	loanConfig, err := loan.ToLoansConfig()
	if err != nil {
		t.Fatalf("ToLoansConfig() error = %v", err)
	}
	if loanConfig.Name != "Boat" || loanConfig.Principal != 15000 || loanConfig.TermMonths != 48 {
		t.Errorf("Unexpected loan config: %+v", loanConfig)
	}
	if !loanConfig.StartDate.Equal(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start date: %s", loanConfig.StartDate)
	}
	if len(loanConfig.ExtraPayment) != 1 || loanConfig.ExtraPayment[0].Amount != 250 {
		t.Errorf("Unexpected extra payments: %+v", loanConfig.ExtraPayment)
	}

	loan.ExtraPrincipalPayments[0].Date = "September"
	if _, err := loan.ToLoansConfig(); err == nil {
		t.Errorf("ToLoansConfig() expected error for invalid extra payment date")
	}

	var nilLoan *Loan
	if _, err := nilLoan.ToLoansConfig(); err == nil {
		t.Errorf("ToLoansConfig() expected error for nil loan")
	}
}
