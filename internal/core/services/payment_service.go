package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultPayerReceiptBucket = "payment-receipts"
	defaultAckReceiptBucket   = "acknowledgment-receipts"
	defaultMaxReceiptBytes    = 10 << 20
)

// PaymentService implements the payment lifecycle: client submission,
// administrator review and the acknowledgment receipt step.
type PaymentService struct {
	BaseService
	paymentRepo     portsrepo.PaymentRepositoryFacade
	balanceRepo     portsrepo.BalanceReader
	receipts        portsrepo.ReceiptStore
	payerBucket     string
	ackBucket       string
	pageSize        int
	maxReceiptBytes int64
	observers       paymentObservers
	newID           func() string
	newSuffix       func() (string, error)
}

// PaymentOption is a functional option for configuring the payment service
type PaymentOption func(*PaymentService)

// WithReceiptBuckets sets the payer and acknowledgment bucket names.
func WithReceiptBuckets(payer, ack string) PaymentOption {
	return func(s *PaymentService) {
		s.payerBucket = payer
		s.ackBucket = ack
	}
}

// WithPaymentPageSize sets the fixed listing page size.
func WithPaymentPageSize(size int) PaymentOption {
	return func(s *PaymentService) {
		s.pageSize = size
	}
}

// WithMaxReceiptBytes caps the accepted receipt size.
func WithMaxReceiptBytes(n int64) PaymentOption {
	return func(s *PaymentService) {
		s.maxReceiptBytes = n
	}
}

// WithPaymentObserver registers an observer for lifecycle events.
func WithPaymentObserver(o PaymentObserver) PaymentOption {
	return func(s *PaymentService) {
		s.observers = append(s.observers, o)
	}
}

// WithPaymentClock overrides the service clock.
func WithPaymentClock(now func() time.Time) PaymentOption {
	return func(s *PaymentService) {
		s.now = now
	}
}

// WithPaymentIDGenerator overrides how payment IDs and receipt suffixes are generated.
func WithPaymentIDGenerator(newID func() string, newSuffix func() (string, error)) PaymentOption {
	return func(s *PaymentService) {
		s.newID = newID
		s.newSuffix = newSuffix
	}
}

// NewPaymentService creates a new payment service with the provided options
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, balanceRepo portsrepo.BalanceReader, receipts portsrepo.ReceiptStore, options ...PaymentOption) *PaymentService {
	svc := &PaymentService{
		paymentRepo:     paymentRepo,
		balanceRepo:     balanceRepo,
		receipts:        receipts,
		payerBucket:     defaultPayerReceiptBucket,
		ackBucket:       defaultAckReceiptBucket,
		pageSize:        pagination.DefaultPageSize,
		maxReceiptBytes: defaultMaxReceiptBytes,
		newID:           uuid.NewString,
		newSuffix:       utils.GenerateReceiptSuffix,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// SubmitPayment uploads the payer receipt, then inserts the Pending payment.
// If the insert fails the uploaded blob is deleted again.
func (s *PaymentService) SubmitPayment(ctx context.Context, req dto.SubmitPaymentRequest, receipt dto.ReceiptFile, actor domain.Actor) (*domain.Payment, error) {
	if err := s.AuthorizeRole(ctx, actor, "submit payments", domain.RoleClient, domain.RoleAdmin); err != nil {
		return nil, err
	}

	req = trimSubmitRequest(req)
	if actor.Role == domain.RoleClient && req.PayerName != actor.Name {
		return nil, apperrors.NewForbiddenError("clients may only submit their own payments")
	}
	if err := validateStruct(req); err != nil {
		s.LogDebug(ctx, "Payment submission rejected", slog.String("reason", err.Error()))
		return nil, err
	}
	ext, err := s.validateReceipt(receipt)
	if err != nil {
		return nil, err
	}

	paymentDate, err := utils.ParsePaymentDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	balance, err := s.balanceRepo.FindBalance(ctx, domain.BalanceKey{
		ClientName: req.PayerName,
		Project:    req.Project,
		Block:      req.Block,
		Lot:        req.Lot,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("%s in %s does not belong to %s",
				domain.FormatBlockLot(req.Block, req.Lot), req.Project, req.PayerName))
		}
		s.LogError(ctx, err, "Failed to resolve property balance", slog.String("project", req.Project))
		return nil, err
	}

	now := s.Now()
	payment := domain.Payment{
		PaymentID:       s.newID(),
		PayerName:       balance.ClientName,
		Project:         balance.Project,
		Block:           balance.Block,
		Lot:             balance.Lot,
		Amount:          parseAmount(req.Amount),
		DueDate:         domain.DueDate(req.DueDate),
		PaymentDate:     paymentDate,
		PaymentPeriod:   req.PaymentPeriod,
		ReferenceNumber: req.ReferenceNumber,
		VAT:             domain.VATClassification(req.VAT),
		Status:          domain.PaymentPending,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}
	if req.Penalty != "" {
		penalty := parseAmount(req.Penalty)
		payment.Penalty = &penalty
	}

	suffix, err := s.newSuffix()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate receipt suffix")
		return nil, err
	}
	stored, err := s.receipts.Upload(ctx, s.payerBucket, utils.PayerReceiptPath(payment, suffix, ext), receipt.Content, portsrepo.UploadOptions{})
	if err != nil {
		s.LogError(ctx, err, "Failed to upload payer receipt", slog.String("payment_id", payment.PaymentID))
		return nil, err
	}
	payment.ReceiptPath = stored

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("payment_id", payment.PaymentID))
		s.compensateUpload(ctx, s.payerBucket, stored)
		return nil, err
	}

	s.observers.PaymentSubmitted(ctx, actor, payment)
	s.LogInfo(ctx, "Payment submitted",
		slog.String("payment_id", payment.PaymentID),
		slog.String("block_lot", payment.BlockLot()))
	return &payment, nil
}

// ApprovePayment moves a Pending payment to Approved.
func (s *PaymentService) ApprovePayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	return s.transition(ctx, paymentID, domain.ActionApprove, actor)
}

// RejectPayment moves a Pending payment to Rejected. Rejected is terminal.
func (s *PaymentService) RejectPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	return s.transition(ctx, paymentID, domain.ActionReject, actor)
}

func (s *PaymentService) transition(ctx context.Context, paymentID string, action domain.PaymentAction, actor domain.Actor) (*domain.Payment, error) {
	if err := s.AuthorizeRole(ctx, actor, string(action)+" payments", domain.RoleAdmin); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	next, err := payment.NextStatus(action)
	if err != nil {
		s.LogWarn(ctx, "Rejected payment transition",
			slog.String("payment_id", paymentID),
			slog.String("status", string(payment.Status)),
			slog.String("action", string(action)))
		return nil, err
	}

	now := s.Now()
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, paymentID, payment.Version, next, actor.ID, now); err != nil {
		s.LogError(ctx, err, "Failed to update payment status", slog.String("payment_id", paymentID))
		return nil, err
	}
	payment.Status = next
	payment.Version++
	payment.Touch(actor.ID, now)

	s.observers.PaymentTransitioned(ctx, actor, *payment, action)
	s.LogInfo(ctx, "Payment status updated",
		slog.String("payment_id", paymentID),
		slog.String("status", string(next)))
	return payment, nil
}

// AttachAcknowledgmentReceipt stores an acknowledgment receipt for an Approved
// payment, replacing any previous one.
func (s *PaymentService) AttachAcknowledgmentReceipt(ctx context.Context, paymentID string, receipt dto.ReceiptFile, actor domain.Actor) (*domain.Payment, error) {
	if err := s.AuthorizeRole(ctx, actor, "attach acknowledgment receipts", domain.RoleAdmin); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if _, err := payment.NextStatus(domain.ActionAttachAcknowledgment); err != nil {
		return nil, err
	}
	ext, err := s.validateReceipt(receipt)
	if err != nil {
		return nil, err
	}

	suffix, err := s.newSuffix()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate receipt suffix")
		return nil, err
	}
	stored, err := s.receipts.Upload(ctx, s.ackBucket, utils.AckReceiptPath(*payment, suffix, ext), receipt.Content, portsrepo.UploadOptions{Overwrite: true})
	if err != nil {
		s.LogError(ctx, err, "Failed to upload acknowledgment receipt", slog.String("payment_id", paymentID))
		return nil, err
	}

	now := s.Now()
	if err := s.paymentRepo.UpdateAcknowledgmentPath(ctx, paymentID, payment.Version, stored, actor.ID, now); err != nil {
		s.LogError(ctx, err, "Failed to record acknowledgment receipt", slog.String("payment_id", paymentID))
		s.compensateUpload(ctx, s.ackBucket, stored)
		return nil, err
	}

	previous := payment.AcknowledgmentPath
	payment.AcknowledgmentPath = stored
	payment.Version++
	payment.Touch(actor.ID, now)

	if previous != "" && previous != stored {
		if err := s.receipts.Delete(ctx, s.ackBucket, previous); err != nil {
			s.LogWarn(ctx, "Failed to remove replaced acknowledgment receipt",
				slog.String("path", previous),
				slog.String("error", err.Error()))
		}
	}

	s.observers.PaymentTransitioned(ctx, actor, *payment, domain.ActionAttachAcknowledgment)
	s.LogInfo(ctx, "Acknowledgment receipt attached", slog.String("payment_id", paymentID))
	return payment, nil
}

// UpdatePaymentDetails corrects the fields of a Pending payment. The unit is
// not re-resolved against balances and the status is untouched.
func (s *PaymentService) UpdatePaymentDetails(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	if err := s.AuthorizeRole(ctx, actor, "edit payments", domain.RoleAdmin); err != nil {
		return nil, err
	}
	req = trimUpdateRequest(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if _, err := payment.NextStatus(domain.ActionEditDetails); err != nil {
		return nil, err
	}

	updated := *payment
	if req.PayerName != nil {
		updated.PayerName = *req.PayerName
	}
	if req.Project != nil {
		updated.Project = *req.Project
	}
	if req.Amount != nil {
		updated.Amount = parseAmount(*req.Amount)
	}
	if req.Penalty != nil {
		if *req.Penalty == "" {
			updated.Penalty = nil
		} else {
			penalty := parseAmount(*req.Penalty)
			updated.Penalty = &penalty
		}
	}
	if req.DueDate != nil {
		updated.DueDate = domain.DueDate(*req.DueDate)
	}
	if req.PaymentDate != nil {
		if updated.PaymentDate, err = utils.ParsePaymentDate(*req.PaymentDate); err != nil {
			return nil, err
		}
	}
	if req.PaymentPeriod != nil {
		updated.PaymentPeriod = *req.PaymentPeriod
	}
	if req.ReferenceNumber != nil {
		updated.ReferenceNumber = *req.ReferenceNumber
	}
	if req.VAT != nil {
		updated.VAT = domain.VATClassification(*req.VAT)
	}
	if updated.PayerName == "" || !updated.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("payer name and a positive amount are required")
	}

	now := s.Now()
	updated.Touch(actor.ID, now)
	if err := s.paymentRepo.UpdatePaymentDetails(ctx, updated, payment.Version); err != nil {
		s.LogError(ctx, err, "Failed to update payment details", slog.String("payment_id", paymentID))
		return nil, err
	}
	updated.Version++

	s.observers.PaymentTransitioned(ctx, actor, updated, domain.ActionEditDetails)
	s.LogInfo(ctx, "Payment details updated", slog.String("payment_id", paymentID))
	return &updated, nil
}

// DeletePayment soft-deletes a payment in any status, keeping the row for audit.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error {
	if err := s.AuthorizeRole(ctx, actor, "delete payments", domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.paymentRepo.FindPaymentByID(ctx, paymentID); err != nil {
		return err
	}
	if err := s.paymentRepo.MarkPaymentDeleted(ctx, paymentID, s.Now(), actor.ID); err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return err
	}
	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// GetPayment retrieves a payment. A client asking for someone else's payment
// gets NotFound.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	if err := s.AuthorizeRole(ctx, actor, "view payments", domain.RoleAdmin, domain.RoleClient); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClient && payment.PayerName != actor.Name {
		return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
	}
	return payment, nil
}

// ListPayments returns one fixed-size page of payments, newest first, with
// the total counted by a separate query.
func (s *PaymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams, actor domain.Actor) (*dto.ListPaymentsResponse, error) {
	if err := s.AuthorizeRole(ctx, actor, "list payments", domain.RoleAdmin, domain.RoleClient); err != nil {
		return nil, err
	}

	filter := portsrepo.PaymentFilter{
		PayerNameContains:     strings.TrimSpace(params.Payer),
		Project:               strings.TrimSpace(params.Project),
		Status:                domain.PaymentStatus(params.Status),
		MissingAcknowledgment: params.MissingAcknowledgment,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationFailedError("status must be one of Pending, Approved, Rejected")
	}
	if actor.Role == domain.RoleClient {
		filter.PayerNameExact = actor.Name
	}

	page := pagination.NewPage(params.Page, s.pageSize)
	total, err := s.paymentRepo.CountPayments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count payments")
		return nil, err
	}
	payments, err := s.paymentRepo.ListPayments(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, err
	}

	return &dto.ListPaymentsResponse{
		Payments:   dto.ToListPaymentResponse(payments),
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
	}, nil
}

// DownloadReceipt reads a payment's payer or acknowledgment receipt from its bucket.
func (s *PaymentService) DownloadReceipt(ctx context.Context, paymentID string, kind domain.ReceiptKind, actor domain.Actor) (*dto.ReceiptFile, error) {
	bucket := s.payerBucket
	switch kind {
	case domain.ReceiptPayer:
	case domain.ReceiptAcknowledgment:
		bucket = s.ackBucket
	default:
		return nil, apperrors.NewValidationFailedError("unknown receipt kind " + string(kind))
	}

	payment, err := s.GetPayment(ctx, paymentID, actor)
	if err != nil {
		return nil, err
	}
	stored := payment.ReceiptPathFor(kind)
	if stored == "" {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s has no %s receipt", paymentID, kind))
	}

	data, err := s.receipts.Download(ctx, bucket, stored)
	if err != nil {
		s.LogError(ctx, err, "Failed to download receipt",
			slog.String("payment_id", paymentID),
			slog.String("kind", string(kind)))
		return nil, err
	}
	return &dto.ReceiptFile{Filename: path.Base(stored), Content: data}, nil
}

func (s *PaymentService) validateReceipt(receipt dto.ReceiptFile) (string, error) {
	if len(receipt.Content) == 0 {
		return "", apperrors.NewValidationFailedError("receipt file is required")
	}
	if int64(len(receipt.Content)) > s.maxReceiptBytes {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("receipt exceeds %d bytes", s.maxReceiptBytes))
	}
	return utils.ReceiptExtension(receipt.Filename)
}

// compensateUpload removes a blob whose record was never written.
func (s *PaymentService) compensateUpload(ctx context.Context, bucket, stored string) {
	err := s.receipts.Delete(ctx, bucket, stored)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete orphaned receipt",
			slog.String("bucket", bucket),
			slog.String("path", stored))
	}
	s.observers.ReceiptCompensated(ctx, bucket, err)
}

func trimSubmitRequest(req dto.SubmitPaymentRequest) dto.SubmitPaymentRequest {
	for _, f := range []*string{
		&req.PayerName, &req.Project, &req.Block, &req.Lot, &req.Amount, &req.Penalty,
		&req.DueDate, &req.PaymentDate, &req.PaymentPeriod, &req.ReferenceNumber, &req.VAT,
	} {
		*f = strings.TrimSpace(*f)
	}
	return req
}

func trimUpdateRequest(req dto.UpdatePaymentRequest) dto.UpdatePaymentRequest {
	for _, f := range []**string{
		&req.PayerName, &req.Project, &req.Amount, &req.Penalty, &req.DueDate,
		&req.PaymentDate, &req.PaymentPeriod, &req.ReferenceNumber, &req.VAT,
	} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	return req
}
