package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the reconciliation state of a client payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentApproved PaymentStatus = "Approved"
	PaymentRejected PaymentStatus = "Rejected"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

// VATClassification marks whether a payment is subject to VAT.
type VATClassification string

const (
	Vatable VATClassification = "Vatable"
	NonVat  VATClassification = "Non Vat"
)

// Valid reports whether v is a known VAT classification.
func (v VATClassification) Valid() bool {
	return v == Vatable || v == NonVat
}

// DueDate is the day of month an installment falls due.
type DueDate string

const (
	Due5th  DueDate = "5th"
	Due15th DueDate = "15th"
	Due30th DueDate = "30th"
)

// DueDates lists the selectable due dates in display order.
var DueDates = []DueDate{Due5th, Due15th, Due30th}

// Valid reports whether d is one of the enumerated due dates.
func (d DueDate) Valid() bool {
	for _, v := range DueDates {
		if d == v {
			return true
		}
	}
	return false
}

const (
	// PaymentPeriodLayout is the calendar-month format of Payment.PaymentPeriod.
	PaymentPeriodLayout = "2006-01"
	// PaymentDateLayout is the format used for payment dates in receipt paths and requests.
	PaymentDateLayout = "2006-01-02"
)

// PaymentAction is an administrator or client operation on an existing payment.
type PaymentAction string

const (
	ActionApprove              PaymentAction = "approve"
	ActionReject               PaymentAction = "reject"
	ActionAttachAcknowledgment PaymentAction = "attach acknowledgment receipt"
	ActionEditDetails          PaymentAction = "edit details"
)

// ReceiptKind selects which of a payment's two receipts to fetch.
type ReceiptKind string

const (
	ReceiptPayer          ReceiptKind = "payer"
	ReceiptAcknowledgment ReceiptKind = "acknowledgment"
)

// Payment is a client-submitted proof of a periodic payment against a property balance.
type Payment struct {
	PaymentID          string            `json:"paymentID"`
	PayerName          string            `json:"payerName"`
	Project            string            `json:"project"`
	Block              string            `json:"block"`
	Lot                string            `json:"lot"`
	Amount             decimal.Decimal   `json:"amount"`
	Penalty            *decimal.Decimal  `json:"penalty,omitempty"`
	DueDate            DueDate           `json:"dueDate"`
	PaymentDate        time.Time         `json:"paymentDate"`
	PaymentPeriod      string            `json:"paymentPeriod"` // YYYY-MM
	ReferenceNumber    string            `json:"referenceNumber"`
	VAT                VATClassification `json:"vat"`
	Status             PaymentStatus     `json:"status"`
	ReceiptPath        string            `json:"receiptPath"`
	AcknowledgmentPath string            `json:"acknowledgmentPath,omitempty"`
	Version            int               `json:"version"`
	DeletedAt          *time.Time        `json:"deletedAt,omitempty"`
	AuditFields
}

// BlockLot renders the property unit identifier used in receipt paths.
func (p Payment) BlockLot() string {
	return FormatBlockLot(p.Block, p.Lot)
}

// HasAcknowledgment reports whether an acknowledgment receipt is attached.
func (p Payment) HasAcknowledgment() bool {
	return p.AcknowledgmentPath != ""
}

// ReceiptPathFor returns the stored path of the requested receipt, empty when
// none is attached.
func (p Payment) ReceiptPathFor(kind ReceiptKind) string {
	if kind == ReceiptAcknowledgment {
		return p.AcknowledgmentPath
	}
	return p.ReceiptPath
}

// Allows reports whether action is permitted from the payment's current status.
func (p Payment) Allows(action PaymentAction) bool {
	switch action {
	case ActionApprove, ActionReject, ActionEditDetails:
		return p.Status == PaymentPending
	case ActionAttachAcknowledgment:
		return p.Status == PaymentApproved
	}
	return false
}

// NextStatus returns the status after action, or an InvalidTransition error
// when the current status does not permit it.
func (p Payment) NextStatus(action PaymentAction) (PaymentStatus, error) {
	if !p.Allows(action) {
		return p.Status, newTransitionError(string(p.Status), string(action))
	}
	switch action {
	case ActionApprove:
		return PaymentApproved, nil
	case ActionReject:
		return PaymentRejected, nil
	}
	return p.Status, nil
}

// FormatBlockLot renders a block and lot pair as B{block}-L{lot}.
func FormatBlockLot(block, lot string) string {
	return fmt.Sprintf("B%s-L%s", strings.TrimSpace(block), strings.TrimSpace(lot))
}

// ParsePaymentPeriod validates a YYYY-MM calendar month.
func ParsePaymentPeriod(period string) (time.Time, error) {
	t, err := time.Parse(PaymentPeriodLayout, period)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError("payment period must be a calendar month in YYYY-MM format")
	}
	return t, nil
}

func newTransitionError(from, action string) error {
	return apperrors.NewInvalidTransitionError(from, action)
}
