// Package model defines the financial records consumed by the planning
// engines. Records are plain values; engines never mutate them.
package model

import (
	"strings"
	"time"
)

// AssetType classifies an asset.
type AssetType string

const (
	AssetCash       AssetType = "cash"
	AssetEquity     AssetType = "equity"
	AssetRealEstate AssetType = "real_estate"
	AssetCrypto     AssetType = "crypto"
	AssetVehicle    AssetType = "vehicle"
	AssetRetirement AssetType = "retirement"
	AssetOther      AssetType = "other"
)

var assetTypes = map[string]AssetType{
	"cash":        AssetCash,
	"equity":      AssetEquity,
	"real_estate": AssetRealEstate,
	"crypto":      AssetCrypto,
	"vehicle":     AssetVehicle,
	"retirement":  AssetRetirement,
	"401k":        AssetRetirement,
	"other":       AssetOther,
}

// ParseAssetType maps a free-text type onto an AssetType.
func ParseAssetType(s string) (AssetType, bool) {
	t, ok := assetTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// LiquidityStatus tells whether an asset can be spent quickly.
type LiquidityStatus string

const (
	Liquid   LiquidityStatus = "liquid"
	Illiquid LiquidityStatus = "illiquid"
)

// Asset is something of value the household owns.
type Asset struct {
	ID        string
	Name      string
	Type      AssetType
	Value     float64
	APY       float64
	Liquidity LiquidityStatus
}

// IsLiquid reports whether the asset counts toward liquidity. An unset
// status is liquid.
func (a Asset) IsLiquid() bool {
	return a.Liquidity == "" || a.Liquidity == Liquid
}

// Liability is a debt with a balance that accrues interest.
type Liability struct {
	ID           string
	Name         string
	Balance      float64
	InterestRate float64 // annual, decimal (0.24 = 24%)
	MinPayment   float64
	PaymentURL   string
	CreditLimit  *float64
	Tags         []LiabilityTag
}

// Utilization returns balance over credit limit. The second value is false
// when no positive limit is configured.
func (l Liability) Utilization() (float64, bool) {
	if l.CreditLimit == nil || *l.CreditLimit <= 0 {
		return 0, false
	}
	return l.Balance / *l.CreditLimit, true
}

// HasTag reports whether the liability carries tag.
func (l Liability) HasTag(tag LiabilityTag) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IncomeSource is a recurring inflow.
type IncomeSource struct {
	Source    string
	Amount    float64
	Frequency string
}

// SpendingCategory is a recurring monthly outflow.
type SpendingCategory struct {
	ID       string
	Category string
	Amount   float64
	Type     string // Need, Want, Savings
	Owner    string
	Notes    string
}

// TimeSeriesPoint is one dated value of a projection or payoff series.
type TimeSeriesPoint struct {
	Date    time.Time `json:"date" yaml:"date"`
	Value   float64   `json:"value" yaml:"value"`
	Context string    `json:"context,omitempty" yaml:"context,omitempty"`
}
