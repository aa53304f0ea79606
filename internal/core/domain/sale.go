package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the administrator-controlled state of a sale.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleConfirmed SaleStatus = "confirmed"
	SaleRejected  SaleStatus = "rejected"
)

// Valid reports whether s is a known sale status.
func (s SaleStatus) Valid() bool {
	switch s {
	case SalePending, SaleConfirmed, SaleRejected:
		return true
	}
	return false
}

// Sale is a commission-eligible property transaction recorded by an agent.
// Duplicate submissions are distinct sales; no uniqueness is enforced.
type Sale struct {
	SaleID             string          `json:"saleID"`
	AgentID            string          `json:"agentID"`    // Empty on legacy rows attributed by name
	SellerName         string          `json:"sellerName"` // Agent full name captured at creation
	BuyerName          string          `json:"buyerName"`
	TotalContractPrice decimal.Decimal `json:"totalContractPrice"`
	Project            string          `json:"project"`
	Block              string          `json:"block"`
	Lot                string          `json:"lot"`
	ReservationDate    time.Time       `json:"reservationDate"`
	ReceiptPath        string          `json:"receiptPath,omitempty"`
	SecondReceiptPath  string          `json:"secondReceiptPath,omitempty"`
	Status             SaleStatus      `json:"status"`
	Version            int             `json:"version"`
	AuditFields
}

// IsConfirmed reports whether the sale counts toward totals.
func (s Sale) IsConfirmed() bool {
	return s.Status == SaleConfirmed
}

// NextStatus returns the status a pending sale moves to on review. Confirmed
// and rejected sales are immutable.
func (s Sale) NextStatus(target SaleStatus) (SaleStatus, error) {
	if s.Status != SalePending || (target != SaleConfirmed && target != SaleRejected) {
		return s.Status, newTransitionError(string(s.Status), "mark sale "+string(target))
	}
	return target, nil
}
