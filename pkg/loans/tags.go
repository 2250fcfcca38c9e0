package loans

import (
	"time"

	"github.com/iwvelando/finance-planner/pkg/model"
)

// TagGroup is the liabilities carrying one tag and their combined balance.
type TagGroup struct {
	Tag          model.LiabilityTag `json:"tag" yaml:"tag"`
	Liabilities  []model.Liability  `json:"liabilities" yaml:"liabilities"`
	TotalBalance float64            `json:"totalBalance" yaml:"totalBalance"`
}

// GroupByTag buckets liabilities by tag in model.AllTags order, followed by an
// untagged group. A liability with several tags appears in each of them.
// Empty groups are omitted.
func GroupByTag(liabilities []model.Liability) []TagGroup {
	groups := make([]TagGroup, 0, len(model.AllTags)+1)
	for _, tag := range model.AllTags {
		g := TagGroup{Tag: tag}
		for _, l := range liabilities {
			if l.HasTag(tag) {
				g.Liabilities = append(g.Liabilities, l)
				g.TotalBalance += l.Balance
			}
		}
		if len(g.Liabilities) > 0 {
			groups = append(groups, g)
		}
	}

	untagged := TagGroup{}
	for _, l := range liabilities {
		if len(l.Tags) == 0 {
			untagged.Liabilities = append(untagged.Liabilities, l)
			untagged.TotalBalance += l.Balance
		}
	}
	if len(untagged.Liabilities) > 0 {
		groups = append(groups, untagged)
	}
	return groups
}

// FilterByTag returns the liabilities carrying any of tags. No tags returns
// every liability.
func FilterByTag(liabilities []model.Liability, tags ...model.LiabilityTag) []model.Liability {
	if len(tags) == 0 {
		return append([]model.Liability(nil), liabilities...)
	}
	var out []model.Liability
	for _, l := range liabilities {
		for _, tag := range tags {
			if l.HasTag(tag) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// PayoffDates maps each debt name to the date it was paid off.
func PayoffDates(ctx PayoffContext) map[string]time.Time {
	dates := make(map[string]time.Time, len(ctx.Log))
	for _, entry := range ctx.Log {
		if entry.Event == EventPaidOff {
			dates[entry.DebtName] = entry.Date
		}
	}
	return dates
}

// PayoffComparison contrasts a scenario against a baseline simulation.
type PayoffComparison struct {
	InterestSaved float64 `json:"interestSaved" yaml:"interestSaved"`
	MonthsSaved   int     `json:"monthsSaved" yaml:"monthsSaved"`
}

// InterestSaved reports how much interest and time scenario saves over
// baseline. Negative values mean the scenario is worse.
func InterestSaved(baseline, scenario PayoffContext) PayoffComparison {
	return PayoffComparison{
		InterestSaved: baseline.InterestPaid - scenario.InterestPaid,
		MonthsSaved:   baseline.MonthsElapsed - scenario.MonthsElapsed,
	}
}
