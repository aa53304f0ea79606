package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the row shape of the sales table. agent_id is nullable for legacy
// rows attributed by seller name.
type Sale struct {
	SaleID             string          `db:"sale_id"`
	AgentID            sql.NullString  `db:"agent_id"`
	SellerName         string          `db:"seller_name"`
	BuyerName          string          `db:"buyer_name"`
	TotalContractPrice decimal.Decimal `db:"total_contract_price"`
	Project            string          `db:"project"`
	Block              string          `db:"block"`
	Lot                string          `db:"lot"`
	ReservationDate    time.Time       `db:"reservation_date"`
	ReceiptPath        sql.NullString  `db:"receipt_path"`
	SecondReceiptPath  sql.NullString  `db:"second_receipt_path"`
	Status             string          `db:"status"`
	Version            int             `db:"version"`
	AuditFields
}
