// Package constants provides shared constants for the finance-planner application.
package constants

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = "2006-01-02"

// MonthLayout is used for month-granular labels such as payoff months.
const MonthLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is used for non-monthly period approximations
	DaysPerYear = 365

	// DaysPerMonth is the fixed month length used by the debt simulator and runway
	DaysPerMonth = 30

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// InfiniteRunwayDays is returned as the runway when there is no burn
	InfiniteRunwayDays = 9999
)

// Simulation limits
const (
	// DefaultMaxPayoffMonths caps the debt payoff simulation (100 years)
	DefaultMaxPayoffMonths = 1200

	// MaxCrossoverMonths bounds the financial independence search (50 years)
	MaxCrossoverMonths = 600

	// DefaultMonteCarloIterations is the number of trials when none is configured
	DefaultMonteCarloIterations = 1000
)

// Debt heuristics
const (
	// MinPaymentFloor is the smallest minimum payment assumed when none is configured
	MinPaymentFloor = 25.0

	// MinPaymentPrincipalShare is the share of the balance added to interest
	// when deriving a minimum payment
	MinPaymentPrincipalShare = 0.01

	// HighInterestThreshold marks a liability as high interest
	HighInterestThreshold = 0.07
)

// Planning defaults
const (
	// DefaultSafeWithdrawalRate is the 4% rule
	DefaultSafeWithdrawalRate = 0.04

	// CriticalRunwayDays is the runway below which a purchase is high risk
	CriticalRunwayDays = 90

	// CautionRunwayDays is the runway below which a purchase is medium risk
	CautionRunwayDays = 180

	// MinFreeCashFlowShare is the share of income below which savings are flagged
	MinFreeCashFlowShare = 0.10

	// EmergencyFundWarningMonths is the runway (in months) below which cash is flagged
	EmergencyFundWarningMonths = 3

	// EmergencyFundCriticalMonths is the runway (in months) below which cash is critical
	EmergencyFundCriticalMonths = 1

	// EmergencyFundTargetMonths is the runway a stable household should hold
	EmergencyFundTargetMonths = 6
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// FloatTolerance absorbs accumulation error in balance series
	FloatTolerance = 1e-6
)
