package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	admin    = domain.Actor{ID: "admin-1", Name: "Office Admin", Role: domain.RoleAdmin}
	client   = domain.Actor{ID: "client-1", Name: "Maria Santos", Role: domain.RoleClient}
)

type PaymentServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	paymentRepo *MockPaymentRepository
	balanceRepo *MockBalanceRepository
	receipts    *MockReceiptStore
	observer    *recordingObserver
	service     *services.PaymentService
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.paymentRepo = new(MockPaymentRepository)
	suite.balanceRepo = new(MockBalanceRepository)
	suite.receipts = new(MockReceiptStore)
	suite.observer = &recordingObserver{}
	suite.service = services.NewPaymentService(suite.paymentRepo, suite.balanceRepo, suite.receipts,
		services.WithPaymentClock(func() time.Time { return fixedNow }),
		services.WithPaymentIDGenerator(
			func() string { return "pay-1" },
			func() (string, error) { return "abc123", nil },
		),
		services.WithMaxReceiptBytes(1024),
		services.WithPaymentObserver(suite.observer),
	)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func submitRequest() dto.SubmitPaymentRequest {
	return dto.SubmitPaymentRequest{
		PayerName:       "Maria Santos",
		Project:         "Palm Grove",
		Block:           "3",
		Lot:             "12",
		Amount:          "15000.50",
		DueDate:         "5th",
		PaymentDate:     "2024-03-05",
		PaymentPeriod:   "2024-03",
		ReferenceNumber: "GC-99812",
		VAT:             "Non Vat",
	}
}

func pdfReceipt() dto.ReceiptFile {
	return dto.ReceiptFile{Filename: "proof.PDF", Content: []byte("%PDF-1.4 receipt")}
}

func palmGroveBalance() *domain.Balance {
	return &domain.Balance{ClientName: "Maria Santos", Project: "Palm Grove", Block: "3", Lot: "12"}
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		PaymentID:   "pay-42",
		PayerName:   "Maria Santos",
		Project:     "Palm Grove",
		Block:       "3",
		Lot:         "12",
		Amount:      decimal.NewFromInt(15000),
		PaymentDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:      domain.PaymentPending,
		ReceiptPath: "Palm Grove/Maria Santos/2024-03-05_B3-L12_old.pdf",
		Version:     3,
	}
}

const expectedReceiptPath = "Palm Grove/Maria Santos/2024-03-05_B3-L12_abc123.pdf"

func (suite *PaymentServiceTestSuite) expectBalance() {
	suite.balanceRepo.On("FindBalance", suite.ctx, domain.BalanceKey{
		ClientName: "Maria Santos", Project: "Palm Grove", Block: "3", Lot: "12",
	}).Return(palmGroveBalance(), nil).Once()
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_Success() {
	suite.expectBalance()
	suite.receipts.On("Upload", suite.ctx, "payment-receipts", expectedReceiptPath, pdfReceipt().Content, portsrepo.UploadOptions{Overwrite: false}).
		Return(expectedReceiptPath, nil).Once()
	suite.paymentRepo.On("SavePayment", suite.ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.PaymentID == "pay-1" && p.Status == domain.PaymentPending && p.ReceiptPath == expectedReceiptPath && p.Version == 1
	})).Return(nil).Once()

	payment, err := suite.service.SubmitPayment(suite.ctx, submitRequest(), pdfReceipt(), client)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, payment.Status)
	suite.True(decimal.RequireFromString("15000.50").Equal(payment.Amount))
	suite.Nil(payment.Penalty)
	suite.Equal(domain.Due5th, payment.DueDate)
	suite.Equal(domain.NonVat, payment.VAT)
	suite.Equal(client.ID, payment.CreatedBy)
	suite.Equal(fixedNow, payment.CreatedAt)
	suite.Len(suite.observer.submitted, 1)
	suite.receipts.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.receipts.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_WithPenalty() {
	req := submitRequest()
	req.Penalty = " 250 "
	suite.expectBalance()
	suite.receipts.On("Upload", suite.ctx, "payment-receipts", expectedReceiptPath, mock.Anything, mock.Anything).Return(expectedReceiptPath, nil).Once()
	suite.paymentRepo.On("SavePayment", suite.ctx, mock.Anything).Return(nil).Once()

	payment, err := suite.service.SubmitPayment(suite.ctx, req, pdfReceipt(), client)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment.Penalty)
	suite.True(decimal.NewFromInt(250).Equal(*payment.Penalty))
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_InsertFailureDeletesBlob() {
	storeErr := apperrors.NewStoreError("failed to insert payment", assert.AnError)
	suite.expectBalance()
	suite.receipts.On("Upload", suite.ctx, "payment-receipts", expectedReceiptPath, mock.Anything, mock.Anything).Return(expectedReceiptPath, nil).Once()
	suite.paymentRepo.On("SavePayment", suite.ctx, mock.Anything).Return(storeErr).Once()
	suite.receipts.On("Delete", suite.ctx, "payment-receipts", expectedReceiptPath).Return(nil).Once()

	payment, err := suite.service.SubmitPayment(suite.ctx, submitRequest(), pdfReceipt(), client)

	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrStore)
	suite.Equal([]error{nil}, suite.observer.compensations)
	suite.Empty(suite.observer.submitted)
	suite.receipts.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_CompensationFailureKeepsOriginalError() {
	storeErr := apperrors.NewStoreError("failed to insert payment", assert.AnError)
	deleteErr := apperrors.NewStoreError("failed to delete receipt", assert.AnError)
	suite.expectBalance()
	suite.receipts.On("Upload", suite.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(expectedReceiptPath, nil).Once()
	suite.paymentRepo.On("SavePayment", suite.ctx, mock.Anything).Return(storeErr).Once()
	suite.receipts.On("Delete", suite.ctx, "payment-receipts", expectedReceiptPath).Return(deleteErr).Once()

	_, err := suite.service.SubmitPayment(suite.ctx, submitRequest(), pdfReceipt(), client)

	suite.Equal(storeErr, err)
	suite.Require().Len(suite.observer.compensations, 1)
	suite.Equal(deleteErr, suite.observer.compensations[0])
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_UploadFailureSkipsInsert() {
	suite.expectBalance()
	suite.receipts.On("Upload", suite.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.NewStoreError("quota exceeded", assert.AnError)).Once()

	_, err := suite.service.SubmitPayment(suite.ctx, submitRequest(), pdfReceipt(), client)

	suite.ErrorIs(err, apperrors.ErrStore)
	suite.paymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_ValidationFailures() {
	tests := []struct {
		name    string
		mutate  func(*dto.SubmitPaymentRequest)
		receipt dto.ReceiptFile
	}{
		{"empty receipt", func(*dto.SubmitPaymentRequest) {}, dto.ReceiptFile{Filename: "proof.pdf"}},
		{"bad extension", func(*dto.SubmitPaymentRequest) {}, dto.ReceiptFile{Filename: "proof.docx", Content: []byte("x")}},
		{"oversized", func(*dto.SubmitPaymentRequest) {}, dto.ReceiptFile{Filename: "proof.png", Content: make([]byte, 2048)}},
		{"zero amount", func(r *dto.SubmitPaymentRequest) { r.Amount = "0" }, pdfReceipt()},
		{"non numeric amount", func(r *dto.SubmitPaymentRequest) { r.Amount = "fifteen" }, pdfReceipt()},
		{"sub-cent amount", func(r *dto.SubmitPaymentRequest) { r.Amount = "0.001" }, pdfReceipt()},
		{"negative penalty", func(r *dto.SubmitPaymentRequest) { r.Penalty = "-1" }, pdfReceipt()},
		{"three decimal penalty", func(r *dto.SubmitPaymentRequest) { r.Penalty = "10.125" }, pdfReceipt()},
		{"unknown due date", func(r *dto.SubmitPaymentRequest) { r.DueDate = "10th" }, pdfReceipt()},
		{"bad payment date", func(r *dto.SubmitPaymentRequest) { r.PaymentDate = "03/05/2024" }, pdfReceipt()},
		{"bad period", func(r *dto.SubmitPaymentRequest) { r.PaymentPeriod = "2024-13" }, pdfReceipt()},
		{"blank reference", func(r *dto.SubmitPaymentRequest) { r.ReferenceNumber = "   " }, pdfReceipt()},
		{"unknown vat", func(r *dto.SubmitPaymentRequest) { r.VAT = "Exempt" }, pdfReceipt()},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := submitRequest()
			tt.mutate(&req)

			payment, err := suite.service.SubmitPayment(suite.ctx, req, tt.receipt, client)

			suite.Nil(payment)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.receipts.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.balanceRepo.AssertNotCalled(suite.T(), "FindBalance", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_UnitNotOwnedByPayer() {
	suite.balanceRepo.On("FindBalance", suite.ctx, mock.Anything).Return(nil, apperrors.NewNotFoundError("balance not found")).Once()

	_, err := suite.service.SubmitPayment(suite.ctx, submitRequest(), pdfReceipt(), client)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "B3-L12")
}

func (suite *PaymentServiceTestSuite) TestSubmitPayment_ClientCannotPayForOthers() {
	req := submitRequest()
	req.PayerName = "Someone Else"

	_, err := suite.service.SubmitPayment(suite.ctx, req, pdfReceipt(), client)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentServiceTestSuite) TestRejectThenApprove_SecondCallFails() {
	rejected := pendingPayment()
	rejected.Status = domain.PaymentRejected
	rejected.Version = 4

	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(pendingPayment(), nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx, "pay-42", 3, domain.PaymentRejected, admin.ID, fixedNow).Return(nil).Once()
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(rejected, nil).Once()

	payment, err := suite.service.RejectPayment(suite.ctx, "pay-42", admin)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRejected, payment.Status)
	suite.Equal(4, payment.Version)

	_, err = suite.service.ApprovePayment(suite.ctx, "pay-42", admin)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Equal([]domain.PaymentAction{domain.ActionReject}, suite.observer.actions)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_ConcurrentModification() {
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(pendingPayment(), nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx, "pay-42", 3, domain.PaymentApproved, admin.ID, fixedNow).
		Return(apperrors.NewConflictError("payment pay-42 was modified concurrently")).Once()

	_, err := suite.service.ApprovePayment(suite.ctx, "pay-42", admin)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.observer.actions)
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_RequiresAdmin() {
	_, err := suite.service.ApprovePayment(suite.ctx, "pay-42", client)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.paymentRepo.AssertNotCalled(suite.T(), "FindPaymentByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApprovePayment_NotFound() {
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "missing").Return(nil, apperrors.NewNotFoundError("payment missing not found")).Once()

	_, err := suite.service.ApprovePayment(suite.ctx, "missing", admin)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestAttachAcknowledgment_RequiresApproved() {
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(pendingPayment(), nil).Once()

	_, err := suite.service.AttachAcknowledgmentReceipt(suite.ctx, "pay-42", pdfReceipt(), admin)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.receipts.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAttachAcknowledgment_ReplacesPrevious() {
	approved := pendingPayment()
	approved.Status = domain.PaymentApproved
	approved.AcknowledgmentPath = "Palm Grove/Maria Santos/ack_2024-03-05_B3-L12_first.pdf"
	ackPath := "Palm Grove/Maria Santos/ack_2024-03-05_B3-L12_abc123.png"

	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(approved, nil).Once()
	suite.receipts.On("Upload", suite.ctx, "acknowledgment-receipts", ackPath, mock.Anything, portsrepo.UploadOptions{Overwrite: true}).Return(ackPath, nil).Once()
	suite.paymentRepo.On("UpdateAcknowledgmentPath", suite.ctx, "pay-42", 3, ackPath, admin.ID, fixedNow).Return(nil).Once()
	suite.receipts.On("Delete", suite.ctx, "acknowledgment-receipts", "Palm Grove/Maria Santos/ack_2024-03-05_B3-L12_first.pdf").Return(nil).Once()

	payment, err := suite.service.AttachAcknowledgmentReceipt(suite.ctx, "pay-42", dto.ReceiptFile{Filename: "ack.png", Content: []byte("png")}, admin)

	suite.Require().NoError(err)
	suite.Equal(ackPath, payment.AcknowledgmentPath)
	suite.Equal(domain.PaymentApproved, payment.Status)
	suite.Equal(4, payment.Version)
	suite.Equal([]domain.PaymentAction{domain.ActionAttachAcknowledgment}, suite.observer.actions)
	suite.receipts.AssertExpectations(suite.T())
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAttachAcknowledgment_RecordFailureDeletesBlob() {
	approved := pendingPayment()
	approved.Status = domain.PaymentApproved
	ackPath := "Palm Grove/Maria Santos/ack_2024-03-05_B3-L12_abc123.pdf"

	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(approved, nil).Once()
	suite.receipts.On("Upload", suite.ctx, "acknowledgment-receipts", ackPath, mock.Anything, mock.Anything).Return(ackPath, nil).Once()
	suite.paymentRepo.On("UpdateAcknowledgmentPath", suite.ctx, "pay-42", 3, ackPath, admin.ID, fixedNow).
		Return(apperrors.NewConflictError("stale")).Once()
	suite.receipts.On("Delete", suite.ctx, "acknowledgment-receipts", ackPath).Return(nil).Once()

	_, err := suite.service.AttachAcknowledgmentReceipt(suite.ctx, "pay-42", pdfReceipt(), admin)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.receipts.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentDetails_Pending() {
	name := "  Maria A. Santos "
	amount := "16000"
	clearPenalty := ""
	vat := "Vatable"
	existing := pendingPayment()
	penalty := decimal.NewFromInt(100)
	existing.Penalty = &penalty

	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(existing, nil).Once()
	suite.paymentRepo.On("UpdatePaymentDetails", suite.ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.PayerName == "Maria A. Santos" && p.Penalty == nil && p.VAT == domain.Vatable &&
			p.Status == domain.PaymentPending && p.LastUpdatedBy == admin.ID
	}), 3).Return(nil).Once()

	payment, err := suite.service.UpdatePaymentDetails(suite.ctx, "pay-42", dto.UpdatePaymentRequest{
		PayerName: &name,
		Amount:    &amount,
		Penalty:   &clearPenalty,
		VAT:       &vat,
	}, admin)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(16000).Equal(payment.Amount))
	suite.Equal(4, payment.Version)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentDetails_Rules() {
	blank := "   "
	approved := pendingPayment()
	approved.Status = domain.PaymentApproved

	_, err := suite.service.UpdatePaymentDetails(suite.ctx, "pay-42", dto.UpdatePaymentRequest{PayerName: &blank}, admin)
	suite.ErrorIs(err, apperrors.ErrValidation, "blank payer name must be rejected")

	emptyAmount := ""
	_, err = suite.service.UpdatePaymentDetails(suite.ctx, "pay-42", dto.UpdatePaymentRequest{Amount: &emptyAmount}, admin)
	suite.ErrorIs(err, apperrors.ErrValidation, "amount must stay present")

	subCent := "0.001"
	_, err = suite.service.UpdatePaymentDetails(suite.ctx, "pay-42", dto.UpdatePaymentRequest{Amount: &subCent}, admin)
	suite.ErrorIs(err, apperrors.ErrValidation, "amounts beyond two decimals must be rejected")

	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(approved, nil).Once()
	ref := "NEW-REF"
	_, err = suite.service.UpdatePaymentDetails(suite.ctx, "pay-42", dto.UpdatePaymentRequest{ReferenceNumber: &ref}, admin)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.paymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_SoftDeletes() {
	approved := pendingPayment()
	approved.Status = domain.PaymentApproved
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(approved, nil).Once()
	suite.paymentRepo.On("MarkPaymentDeleted", suite.ctx, "pay-42", fixedNow, admin.ID).Return(nil).Once()

	err := suite.service.DeletePayment(suite.ctx, "pay-42", admin)

	suite.NoError(err)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestListPayments_ClientScopedAndPaged() {
	expectedFilter := portsrepo.PaymentFilter{
		PayerNameContains:     "Maria",
		Status:                domain.PaymentApproved,
		MissingAcknowledgment: true,
		PayerNameExact:        client.Name,
	}
	suite.paymentRepo.On("CountPayments", suite.ctx, expectedFilter).Return(23, nil).Once()
	suite.paymentRepo.On("ListPayments", suite.ctx, expectedFilter, 10, 10).Return([]domain.Payment{*pendingPayment()}, nil).Once()

	res, err := suite.service.ListPayments(suite.ctx, dto.ListPaymentsParams{
		Payer:                 " Maria ",
		Status:                "Approved",
		MissingAcknowledgment: true,
		Page:                  2,
	}, client)

	suite.Require().NoError(err)
	suite.Equal(23, res.Total)
	suite.Equal(2, res.Page)
	suite.Equal(10, res.PageSize)
	suite.Equal(3, res.TotalPages)
	suite.Len(res.Payments, 1)
	suite.Equal("B3-L12", res.Payments[0].BlockLot)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestListPayments_InvalidStatus() {
	_, err := suite.service.ListPayments(suite.ctx, dto.ListPaymentsParams{Status: "Deleted"}, admin)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestGetPayment_ClientCannotSeeOthers() {
	other := pendingPayment()
	other.PayerName = "Juan Dela Cruz"
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(other, nil).Once()

	_, err := suite.service.GetPayment(suite.ctx, "pay-42", client)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestDownloadReceipt() {
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "pay-42").Return(pendingPayment(), nil).Twice()
	suite.receipts.On("Download", suite.ctx, "payment-receipts", "Palm Grove/Maria Santos/2024-03-05_B3-L12_old.pdf").Return([]byte("pdf"), nil).Once()

	file, err := suite.service.DownloadReceipt(suite.ctx, "pay-42", domain.ReceiptPayer, client)
	suite.Require().NoError(err)
	suite.Equal("2024-03-05_B3-L12_old.pdf", file.Filename)
	suite.Equal([]byte("pdf"), file.Content)

	_, err = suite.service.DownloadReceipt(suite.ctx, "pay-42", domain.ReceiptAcknowledgment, client)
	suite.ErrorIs(err, apperrors.ErrNotFound, "no acknowledgment attached yet")

	_, err = suite.service.DownloadReceipt(suite.ctx, "pay-42", domain.ReceiptKind("other"), client)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.receipts.AssertExpectations(suite.T())
}
