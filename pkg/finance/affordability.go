package finance

import (
	"fmt"

	"github.com/iwvelando/finance-planner/pkg/constants"
)

// RiskLevel grades the liquidity impact of a purchase.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// AffordabilityContext is the classification of a single purchase.
type AffordabilityContext struct {
	IsSafe       bool      `json:"isSafe" yaml:"isSafe"`
	ImpactDays   int       `json:"impactDays" yaml:"impactDays"`
	NewLiquidity float64   `json:"newLiquidity" yaml:"newLiquidity"`
	RiskLevel    RiskLevel `json:"riskLevel" yaml:"riskLevel"`
	Message      string    `json:"message" yaml:"message"`
}

// AffordabilityOptions holds the runway thresholds in days.
type AffordabilityOptions struct {
	CriticalRunwayDays int
	CautionRunwayDays  int
}

// AffordabilityOption customizes AssessAffordability.
type AffordabilityOption func(*AffordabilityOptions)

// WithRunwayThresholds overrides the critical and caution thresholds.
func WithRunwayThresholds(criticalDays, cautionDays int) AffordabilityOption {
	return func(o *AffordabilityOptions) {
		if criticalDays > 0 {
			o.CriticalRunwayDays = criticalDays
		}
		if cautionDays > 0 {
			o.CautionRunwayDays = cautionDays
		}
	}
}

// AssessAffordability classifies a purchase of cost against the runway left
// after paying for it.
func AssessAffordability(cost, liquidity, monthlyBurn float64, opts ...AffordabilityOption) AffordabilityContext {
	o := AffordabilityOptions{
		CriticalRunwayDays: constants.CriticalRunwayDays,
		CautionRunwayDays:  constants.CautionRunwayDays,
	}
	for _, opt := range opts {
		opt(&o)
	}

	newLiquidity := liquidity - cost
	impactDays := RunwayDays(newLiquidity, monthlyBurn, constants.DaysPerMonth)
	months := float64(impactDays) / constants.DaysPerMonth

	ctx := AffordabilityContext{
		IsSafe:       true,
		ImpactDays:   impactDays,
		NewLiquidity: newLiquidity,
		RiskLevel:    RiskLow,
		Message:      "Purchase is within safe limits.",
	}

	switch {
	case newLiquidity < 0:
		ctx.IsSafe = false
		ctx.RiskLevel = RiskCritical
		ctx.Message = "You cannot afford this. It would put you in debt."
	case impactDays < o.CriticalRunwayDays:
		ctx.IsSafe = false
		ctx.RiskLevel = RiskHigh
		ctx.Message = fmt.Sprintf("High Risk: Reduces runway to %.1f months (Target: %.0fmo).",
			months, float64(o.CautionRunwayDays)/constants.DaysPerMonth)
	case impactDays < o.CautionRunwayDays:
		ctx.RiskLevel = RiskMedium
		ctx.Message = fmt.Sprintf("Caution: Runway reduces to %.1f months.", months)
	}

	return ctx
}
