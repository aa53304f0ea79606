package repositories

import (
	"context"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// PaymentFilter holds conjunctive filters for listing payments. Empty fields
// do not constrain the result. Soft-deleted payments are never returned.
type PaymentFilter struct {
	PayerNameContains     string // case-insensitive substring
	PayerNameExact        string
	Project               string
	Status                domain.PaymentStatus
	MissingAcknowledgment bool
}

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a live payment by its identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a page of payments matching the filter, newest first.
	ListPayments(ctx context.Context, filter PaymentFilter, limit int, offset int) ([]domain.Payment, error)

	// CountPayments counts payments matching the filter.
	CountPayments(ctx context.Context, filter PaymentFilter) (int, error)
}

// PaymentWriter defines write operations for payment data. Every update is
// guarded by expectedVersion; a stale version yields apperrors.ErrConflict and
// a missing row apperrors.ErrNotFound.
type PaymentWriter interface {
	// SavePayment inserts a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePaymentStatus sets the payment status.
	UpdatePaymentStatus(ctx context.Context, paymentID string, expectedVersion int, status domain.PaymentStatus, actorID string, now time.Time) error

	// UpdateAcknowledgmentPath replaces the acknowledgment receipt reference.
	UpdateAcknowledgmentPath(ctx context.Context, paymentID string, expectedVersion int, path string, actorID string, now time.Time) error

	// UpdatePaymentDetails persists corrected payment fields without touching status.
	UpdatePaymentDetails(ctx context.Context, payment domain.Payment, expectedVersion int) error

	// MarkPaymentDeleted soft-deletes a payment.
	MarkPaymentDeleted(ctx context.Context, paymentID string, deletedAt time.Time, actorID string) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
