package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the row shape of the payments table. payment_period is stored as
// the first day of the month.
type Payment struct {
	PaymentID          string              `db:"payment_id"`
	PayerName          string              `db:"payer_name"`
	Project            string              `db:"project"`
	Block              string              `db:"block"`
	Lot                string              `db:"lot"`
	Amount             decimal.Decimal     `db:"amount"`
	Penalty            decimal.NullDecimal `db:"penalty"`
	DueDate            string              `db:"due_date"`
	PaymentDate        time.Time           `db:"payment_date"`
	PaymentPeriod      time.Time           `db:"payment_period"`
	ReferenceNumber    string              `db:"reference_number"`
	VAT                string              `db:"vat"`
	Status             string              `db:"status"`
	ReceiptPath        string              `db:"receipt_path"`
	AcknowledgmentPath sql.NullString      `db:"acknowledgment_path"`
	Version            int                 `db:"version"`
	DeletedAt          *time.Time          `db:"deleted_at"`
	AuditFields
}
