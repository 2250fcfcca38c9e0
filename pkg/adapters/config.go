// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"strings"

	"github.com/iwvelando/finance-planner/internal/config"
	"github.com/iwvelando/finance-planner/pkg/loans"
	"github.com/iwvelando/finance-planner/pkg/model"
	"github.com/iwvelando/finance-planner/pkg/validation"
)

// Records is the financial snapshot held in a configuration, expressed as
// engine records.
type Records struct {
	Assets      []model.Asset
	Liabilities []model.Liability
	Income      []model.IncomeSource
	Spending    []model.SpendingCategory
}

// RecordsFromConfig converts every record of conf.
func RecordsFromConfig(conf *config.Configuration) Records {
	if conf == nil {
		return Records{}
	}
	return Records{
		Assets:      ConfigAssetsToModel(conf.Assets),
		Liabilities: ConfigLiabilitiesToModel(conf.Liabilities),
		Income:      ConfigIncomeToModel(conf.Income),
		Spending:    ConfigSpendingToModel(conf.Spending),
	}
}

// Validator returns a RecordValidator over the records.
func (r Records) Validator() *validation.RecordValidator {
	return &validation.RecordValidator{
		Assets:      r.Assets,
		Liabilities: r.Liabilities,
		Income:      r.Income,
		Spending:    r.Spending,
	}
}

// ConfigAssetsToModel converts config.Asset slices to model.Asset slices.
// Unrecognized types and liquidity values are passed through so validation
// can report them.
func ConfigAssetsToModel(assets []config.Asset) []model.Asset {
	if assets == nil {
		return nil
	}

	result := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		assetType := model.AssetType(strings.TrimSpace(a.Type))
		if parsed, ok := model.ParseAssetType(a.Type); ok {
			assetType = parsed
		}
		result = append(result, model.Asset{
			ID:        a.ID,
			Name:      a.Name,
			Type:      assetType,
			Value:     a.Value,
			APY:       a.APY,
			Liquidity: model.LiquidityStatus(strings.ToLower(strings.TrimSpace(a.Liquidity))),
		})
	}
	return result
}

// ConfigLiabilitiesToModel converts config.Liability slices to model.Liability slices.
func ConfigLiabilitiesToModel(liabilities []config.Liability) []model.Liability {
	if liabilities == nil {
		return nil
	}

	result := make([]model.Liability, 0, len(liabilities))
	for _, l := range liabilities {
		var creditLimit *float64
		if l.CreditLimit != nil {
			limit := *l.CreditLimit
			creditLimit = &limit
		}
		result = append(result, model.Liability{
			ID:           l.ID,
			Name:         l.Name,
			Balance:      l.Balance,
			InterestRate: l.InterestRate,
			MinPayment:   l.MinPayment,
			PaymentURL:   l.PaymentURL,
			CreditLimit:  creditLimit,
			Tags:         ConfigTagsToModel(l.Tags),
		})
	}
	return result
}

// ConfigTagsToModel parses tag identifiers or labels.
func ConfigTagsToModel(tags []string) []model.LiabilityTag {
	if len(tags) == 0 {
		return nil
	}

	result := make([]model.LiabilityTag, 0, len(tags))
	for _, tag := range tags {
		if parsed, ok := model.ParseTag(tag); ok {
			result = append(result, parsed)
			continue
		}
		result = append(result, model.LiabilityTag(tag))
	}
	return result
}

// ConfigIncomeToModel converts config.Income slices to model.IncomeSource slices.
func ConfigIncomeToModel(income []config.Income) []model.IncomeSource {
	if income == nil {
		return nil
	}

	result := make([]model.IncomeSource, 0, len(income))
	for _, i := range income {
		result = append(result, model.IncomeSource{
			Source:    i.Source,
			Amount:    i.Amount,
			Frequency: i.Frequency,
		})
	}
	return result
}

// ConfigSpendingToModel converts config.Spending slices to model.SpendingCategory slices.
func ConfigSpendingToModel(spending []config.Spending) []model.SpendingCategory {
	if spending == nil {
		return nil
	}

	result := make([]model.SpendingCategory, 0, len(spending))
	for _, s := range spending {
		result = append(result, model.SpendingCategory{
			ID:       s.ID,
			Category: s.Category,
			Amount:   s.Amount,
			Type:     s.Type,
			Owner:    s.Owner,
			Notes:    s.Notes,
		})
	}
	return result
}

// LoansToLoanConfigs converts config.Loan slices to loans.LoanConfig slices.
func LoansToLoanConfigs(configLoans []config.Loan) ([]loans.LoanConfig, error) {
	if configLoans == nil {
		return nil, nil
	}

	result := make([]loans.LoanConfig, 0, len(configLoans))
	for i := range configLoans {
		loanConfig, err := configLoans[i].ToLoansConfig()
		if err != nil {
			return nil, err
		}
		result = append(result, loanConfig)
	}
	return result, nil
}
