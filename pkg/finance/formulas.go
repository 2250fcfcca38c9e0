// Package finance provides the interest primitives and the stateless
// projection engines: net worth, affordability, compound growth and Monte
// Carlo growth.
package finance

import (
	"math"

	"github.com/iwvelando/finance-planner/pkg/constants"
)

func periods(periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return constants.MonthsPerYear
	}
	return float64(periodsPerYear)
}

// MonthlyInterest returns the interest accrued over one period on principal.
func MonthlyInterest(principal, annualRate float64, periodsPerYear int) float64 {
	return principal * (annualRate / periods(periodsPerYear))
}

// CompoundStep advances a balance by one period of interest plus a
// contribution.
func CompoundStep(current, annualRate, contribution float64, periodsPerYear int) float64 {
	return current + MonthlyInterest(current, annualRate, periodsPerYear) + contribution
}

// RunwayDays returns how many days liquidity lasts at monthlyBurn, assuming
// daysPerPeriod days per month. No burn yields constants.InfiniteRunwayDays.
func RunwayDays(liquidity, monthlyBurn float64, daysPerPeriod int) int {
	if monthlyBurn <= 0 {
		return constants.InfiniteRunwayDays
	}
	if daysPerPeriod <= 0 {
		daysPerPeriod = constants.DaysPerMonth
	}
	return int(liquidity / monthlyBurn * float64(daysPerPeriod))
}

// AmortizationPayment returns the fixed periodic payment that retires
// principal over years. A non-positive rate divides the principal evenly.
func AmortizationPayment(principal, annualRate float64, years, periodsPerYear int) float64 {
	n := float64(years) * periods(periodsPerYear)
	if n <= 0 {
		return principal
	}
	if annualRate <= 0 {
		return principal / n
	}
	r := annualRate / periods(periodsPerYear)
	return r * principal / (1 - math.Pow(1+r, -n))
}

// FutureValue compounds a lump sum over years.
func FutureValue(principal, annualRate float64, years, periodsPerYear int) float64 {
	r := annualRate / periods(periodsPerYear)
	n := float64(years) * periods(periodsPerYear)
	return principal * math.Pow(1+r, n)
}

// PresentValue discounts a future amount back over years. It is the inverse
// of FutureValue.
func PresentValue(futureValue, annualRate float64, years, periodsPerYear int) float64 {
	r := annualRate / periods(periodsPerYear)
	n := float64(years) * periods(periodsPerYear)
	return futureValue / math.Pow(1+r, n)
}

// RealReturnRate converts a nominal rate into an inflation-adjusted one using
// the Fisher equation.
func RealReturnRate(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}
