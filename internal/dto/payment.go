package dto

import (
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptFile is an uploaded receipt as received from the client.
type ReceiptFile struct {
	Filename string
	Content  []byte
}

// SubmitPaymentRequest defines the data a client submits alongside a payer receipt.
// Amounts and dates arrive as text and are validated by the payment service.
type SubmitPaymentRequest struct {
	PayerName       string `form:"payerName" json:"payerName" validate:"required"`
	Project         string `form:"project" json:"project" validate:"required"`
	Block           string `form:"block" json:"block" validate:"required"`
	Lot             string `form:"lot" json:"lot" validate:"required"`
	Amount          string `form:"amount" json:"amount" validate:"required,posdecimal"`
	Penalty         string `form:"penalty" json:"penalty" validate:"omitempty,nonnegdecimal"`               // Optional
	DueDate         string `form:"dueDate" json:"dueDate" validate:"required,duedate"`                      // 5th, 15th or 30th
	PaymentDate     string `form:"paymentDate" json:"paymentDate" validate:"required,datetime=2006-01-02"`  // YYYY-MM-DD
	PaymentPeriod   string `form:"paymentPeriod" json:"paymentPeriod" validate:"required,datetime=2006-01"` // YYYY-MM
	ReferenceNumber string `form:"referenceNumber" json:"referenceNumber" validate:"required"`              // Bank or e-wallet reference
	VAT             string `form:"vat" json:"vat" validate:"required,vat"`                                  // Vatable or Non Vat
}

// UpdatePaymentRequest defines the fields an administrator may correct on a pending payment.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePaymentRequest struct {
	PayerName       *string `json:"payerName" validate:"omitnil,min=1"`
	Project         *string `json:"project" validate:"omitnil,min=1"`
	Amount          *string `json:"amount" validate:"omitnil,posdecimal"`
	Penalty         *string `json:"penalty" validate:"omitnil,emptyornonneg"` // Empty string clears the penalty
	DueDate         *string `json:"dueDate" validate:"omitnil,duedate"`
	PaymentDate     *string `json:"paymentDate" validate:"omitnil,datetime=2006-01-02"`
	PaymentPeriod   *string `json:"paymentPeriod" validate:"omitnil,datetime=2006-01"`
	ReferenceNumber *string `json:"referenceNumber" validate:"omitnil,min=1"`
	VAT             *string `json:"vat" validate:"omitnil,vat"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Payer                 string `form:"payer"`
	Project               string `form:"project"`
	Status                string `form:"status"`
	MissingAcknowledgment bool   `form:"missingAcknowledgment"`
	Page                  int    `form:"page,default=1"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID         string                   `json:"paymentID"`
	PayerName         string                   `json:"payerName"`
	Project           string                   `json:"project"`
	Block             string                   `json:"block"`
	Lot               string                   `json:"lot"`
	BlockLot          string                   `json:"blockLot"`
	Amount            decimal.Decimal          `json:"amount"`
	Penalty           *decimal.Decimal         `json:"penalty,omitempty"`
	DueDate           domain.DueDate           `json:"dueDate"`
	PaymentDate       string                   `json:"paymentDate"`
	PaymentPeriod     string                   `json:"paymentPeriod"`
	ReferenceNumber   string                   `json:"referenceNumber"`
	VAT               domain.VATClassification `json:"vat"`
	Status            domain.PaymentStatus     `json:"status"`
	HasAcknowledgment bool                     `json:"hasAcknowledgment"`
	Version           int                      `json:"version"`
	CreatedAt         time.Time                `json:"createdAt"`
	CreatedBy         string                   `json:"createdBy"`
	LastUpdatedAt     time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy     string                   `json:"lastUpdatedBy"`
}

// ListPaymentsResponse wraps a page of payments with its pagination metadata.
type ListPaymentsResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		PayerName:         p.PayerName,
		Project:           p.Project,
		Block:             p.Block,
		Lot:               p.Lot,
		BlockLot:          p.BlockLot(),
		Amount:            p.Amount,
		Penalty:           p.Penalty,
		DueDate:           p.DueDate,
		PaymentDate:       p.PaymentDate.Format(domain.PaymentDateLayout),
		PaymentPeriod:     p.PaymentPeriod,
		ReferenceNumber:   p.ReferenceNumber,
		VAT:               p.VAT,
		Status:            p.Status,
		HasAcknowledgment: p.HasAcknowledgment(),
		Version:           p.Version,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
		LastUpdatedAt:     p.LastUpdatedAt,
		LastUpdatedBy:     p.LastUpdatedBy,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment to a slice of PaymentResponse DTOs
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}
