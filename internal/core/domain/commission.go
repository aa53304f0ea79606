package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is a commission bracket unlocked once cumulative confirmed sales reach Threshold.
type Tier struct {
	Threshold decimal.Decimal `json:"threshold"`
	Allowance decimal.Decimal `json:"allowance"`
	Label     string          `json:"label"`
}

// TierTable is an ascending list of tiers with strictly increasing thresholds,
// the first of which is zero.
type TierTable struct {
	tiers []Tier
}

var hundred = decimal.NewFromInt(100)

// NewTierTable validates and wraps tiers.
func NewTierTable(tiers []Tier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, fmt.Errorf("tier table must contain at least one tier")
	}
	if !tiers[0].Threshold.IsZero() {
		return TierTable{}, fmt.Errorf("first tier threshold must be 0, got %s", tiers[0].Threshold)
	}
	for i := 1; i < len(tiers); i++ {
		if !tiers[i].Threshold.GreaterThan(tiers[i-1].Threshold) {
			return TierTable{}, fmt.Errorf("tier thresholds must be strictly increasing: %s after %s",
				tiers[i].Threshold, tiers[i-1].Threshold)
		}
	}
	cp := make([]Tier, len(tiers))
	copy(cp, tiers)
	return TierTable{tiers: cp}, nil
}

// DefaultTierTable returns the stock commission brackets.
func DefaultTierTable() TierTable {
	t, _ := NewTierTable([]Tier{
		{Threshold: decimal.Zero, Allowance: decimal.Zero, Label: "None"},
		{Threshold: decimal.NewFromInt(3_000_000), Allowance: decimal.NewFromInt(10_000), Label: "Bronze"},
		{Threshold: decimal.NewFromInt(6_000_000), Allowance: decimal.NewFromInt(25_000), Label: "Silver"},
		{Threshold: decimal.NewFromInt(10_000_000), Allowance: decimal.NewFromInt(50_000), Label: "Gold"},
	})
	return t
}

// Tiers returns a copy of the configured tiers in ascending order.
func (t TierTable) Tiers() []Tier {
	cp := make([]Tier, len(t.tiers))
	copy(cp, t.tiers)
	return cp
}

// TierFor returns the tier with the highest threshold not exceeding total.
// Thresholds are inclusive lower bounds.
func (t TierTable) TierFor(total decimal.Decimal) Tier {
	total = nonNegative(total)
	current := t.tiers[0]
	for _, tier := range t.tiers[1:] {
		if total.LessThan(tier.Threshold) {
			break
		}
		current = tier
	}
	return current
}

// NextTier returns the tier with the smallest threshold strictly greater than total.
// The second result is false when total is at or above the maximum threshold.
func (t TierTable) NextTier(total decimal.Decimal) (Tier, bool) {
	total = nonNegative(total)
	for _, tier := range t.tiers {
		if tier.Threshold.GreaterThan(total) {
			return tier, true
		}
	}
	return Tier{}, false
}

// ProgressToNextTier is the percentage of the span between the current and
// next tier already covered by total, rounded to one decimal and clamped to [0,100].
// At the maximum tier progress is 100.
func (t TierTable) ProgressToNextTier(total decimal.Decimal) decimal.Decimal {
	total = nonNegative(total)
	next, ok := t.NextTier(total)
	if !ok {
		return hundred
	}
	current := t.TierFor(total)
	span := next.Threshold.Sub(current.Threshold)
	progress := total.Sub(current.Threshold).Div(span).Mul(hundred)
	if progress.IsNegative() {
		progress = decimal.Zero
	}
	if progress.GreaterThan(hundred) {
		progress = hundred
	}
	return progress.Round(1)
}

// Confirmed totals are never negative; a negative input is treated as zero.
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
