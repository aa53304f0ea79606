package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the row shape of the balances table.
type Balance struct {
	BalanceID          string          `db:"balance_id"`
	ClientName         string          `db:"client_name"`
	Project            string          `db:"project"`
	Block              string          `db:"block"`
	Lot                string          `db:"lot"`
	TotalContractPrice decimal.Decimal `db:"total_contract_price"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	RemainingBalance   decimal.Decimal `db:"remaining_balance"`
	MonthsPaid         int             `db:"months_paid"`
	TermMonths         int             `db:"term_months"`
	PricePerSqm        decimal.Decimal `db:"price_per_sqm"`
	LotAreaSqm         decimal.Decimal `db:"lot_area_sqm"`
	UpdatedAt          time.Time       `db:"updated_at"`
}
