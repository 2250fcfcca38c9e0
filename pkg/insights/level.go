package insights

import "github.com/iwvelando/finance-planner/pkg/constants"

// Level is a rung on the financial progress ladder.
type Level int

const (
	LevelInsolvent Level = iota
	LevelIndebted
	LevelStabilityBuilding
	LevelGrowth
	LevelIndependence
	LevelAbundance
)

const (
	// independenceMultiple is 25 years of expenses expressed in months.
	independenceMultiple = 300
	// abundanceMultiple is 50 years of expenses expressed in months.
	abundanceMultiple = 600
)

var levelNames = map[Level]string{
	LevelInsolvent:         "Insolvent",
	LevelIndebted:          "Indebted",
	LevelStabilityBuilding: "Stability Building",
	LevelGrowth:            "Growth",
	LevelIndependence:      "Independence",
	LevelAbundance:         "Abundance",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// FinancialLevel places a household on the ladder. Liquid assets stand in for
// invested assets in the independence checks.
func FinancialLevel(monthlyIncome, monthlyBurn, totalDebt, liquidAssets float64) Level {
	switch {
	case monthlyBurn > monthlyIncome:
		return LevelInsolvent
	case totalDebt > 0:
		return LevelIndebted
	case liquidAssets < monthlyBurn*constants.EmergencyFundTargetMonths:
		return LevelStabilityBuilding
	case liquidAssets < monthlyBurn*independenceMultiple:
		return LevelGrowth
	case liquidAssets < monthlyBurn*abundanceMultiple:
		return LevelIndependence
	default:
		return LevelAbundance
	}
}
