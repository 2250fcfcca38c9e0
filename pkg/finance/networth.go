package finance

import (
	"fmt"

	"github.com/iwvelando/finance-planner/pkg/format"
	"github.com/iwvelando/finance-planner/pkg/model"
)

// NetWorthContext is the result of a net worth calculation.
type NetWorthContext struct {
	Total            float64  `json:"total" yaml:"total"`
	Liquid           float64  `json:"liquid" yaml:"liquid"`
	Illiquid         float64  `json:"illiquid" yaml:"illiquid"`
	AssetsTotal      float64  `json:"assetsTotal" yaml:"assetsTotal"`
	LiabilitiesTotal float64  `json:"liabilitiesTotal" yaml:"liabilitiesTotal"`
	Reasoning        []string `json:"reasoning" yaml:"reasoning"`
}

// NetWorth aggregates assets minus liabilities and splits the assets into
// liquid and illiquid portions.
func NetWorth(assets []model.Asset, liabilities []model.Liability) NetWorthContext {
	assetsTotal := 0.0
	liquid := 0.0
	for _, a := range assets {
		assetsTotal += a.Value
		if a.IsLiquid() {
			liquid += a.Value
		}
	}

	liabilitiesTotal := 0.0
	for _, l := range liabilities {
		liabilitiesTotal += l.Balance
	}

	total := assetsTotal - liabilitiesTotal

	liquidLine := "Liquid Assets: $0.00"
	if assetsTotal > 0 {
		liquidLine = fmt.Sprintf("Liquid Assets: %s (%s of total assets)",
			format.Currency(liquid), format.Percent(liquid/assetsTotal))
	}

	return NetWorthContext{
		Total:            total,
		Liquid:           liquid,
		Illiquid:         assetsTotal - liquid,
		AssetsTotal:      assetsTotal,
		LiabilitiesTotal: liabilitiesTotal,
		Reasoning: []string{
			"Total Assets: " + format.Currency(assetsTotal),
			"Total Liabilities: " + format.Currency(liabilitiesTotal),
			"Net Worth = Assets - Liabilities = " + format.Currency(total),
			liquidLine,
		},
	}
}
