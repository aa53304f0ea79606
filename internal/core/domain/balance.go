package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a per-property ledger snapshot, keyed by client, project, block and lot.
// It is read-only to this core.
type Balance struct {
	BalanceID          string          `json:"balanceID"`
	ClientName         string          `json:"clientName"`
	Project            string          `json:"project"`
	Block              string          `json:"block"`
	Lot                string          `json:"lot"`
	TotalContractPrice decimal.Decimal `json:"totalContractPrice"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
	MonthsPaid         int             `json:"monthsPaid"`
	TermMonths         int             `json:"termMonths"`
	PricePerSqm        decimal.Decimal `json:"pricePerSqm"`
	LotAreaSqm         decimal.Decimal `json:"lotAreaSqm"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// BlockLot renders the property unit identifier.
func (b Balance) BlockLot() string {
	return FormatBlockLot(b.Block, b.Lot)
}

// BalanceKey identifies a single property ledger.
type BalanceKey struct {
	ClientName string
	Project    string
	Block      string
	Lot        string
}
