package services

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPayment retrieves a payment visible to actor.
	GetPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error)

	// ListPayments retrieves one page of payments matching params. Clients only
	// ever see their own payments.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams, actor domain.Actor) (*dto.ListPaymentsResponse, error)

	// DownloadReceipt returns the bytes of the payer or acknowledgment receipt.
	DownloadReceipt(ctx context.Context, paymentID string, kind domain.ReceiptKind, actor domain.Actor) (*dto.ReceiptFile, error)
}

// PaymentWriterSvc defines submission and administrative corrections
type PaymentWriterSvc interface {
	// SubmitPayment stores the payer receipt and records a Pending payment.
	SubmitPayment(ctx context.Context, req dto.SubmitPaymentRequest, receipt dto.ReceiptFile, actor domain.Actor) (*domain.Payment, error)

	// UpdatePaymentDetails corrects fields of a Pending payment.
	UpdatePaymentDetails(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error)

	// DeletePayment soft-deletes a payment.
	DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error
}

// PaymentLifecycleSvc defines the administrator-driven status transitions
type PaymentLifecycleSvc interface {
	// ApprovePayment moves a Pending payment to Approved.
	ApprovePayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error)

	// RejectPayment moves a Pending payment to Rejected.
	RejectPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error)

	// AttachAcknowledgmentReceipt stores an acknowledgment receipt on an Approved payment.
	AttachAcknowledgmentReceipt(ctx context.Context, paymentID string, receipt dto.ReceiptFile, actor domain.Actor) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
// This is a facade for clients that need access to all operations
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	PaymentLifecycleSvc
}
