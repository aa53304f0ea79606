package handlers_test

import (
	"context"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) paymentResult(args mock.Arguments) (*domain.Payment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	return m.paymentResult(m.Called(ctx, paymentID, actor))
}
func (m *MockPaymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams, actor domain.Actor) (*dto.ListPaymentsResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPaymentsResponse), args.Error(1)
}
func (m *MockPaymentService) DownloadReceipt(ctx context.Context, paymentID string, kind domain.ReceiptKind, actor domain.Actor) (*dto.ReceiptFile, error) {
	args := m.Called(ctx, paymentID, kind, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceiptFile), args.Error(1)
}
func (m *MockPaymentService) SubmitPayment(ctx context.Context, req dto.SubmitPaymentRequest, receipt dto.ReceiptFile, actor domain.Actor) (*domain.Payment, error) {
	return m.paymentResult(m.Called(ctx, req, receipt, actor))
}
func (m *MockPaymentService) UpdatePaymentDetails(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	return m.paymentResult(m.Called(ctx, paymentID, req, actor))
}
func (m *MockPaymentService) DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error {
	args := m.Called(ctx, paymentID, actor)
	return args.Error(0)
}
func (m *MockPaymentService) ApprovePayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	return m.paymentResult(m.Called(ctx, paymentID, actor))
}
func (m *MockPaymentService) RejectPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	return m.paymentResult(m.Called(ctx, paymentID, actor))
}
func (m *MockPaymentService) AttachAcknowledgmentReceipt(ctx context.Context, paymentID string, receipt dto.ReceiptFile, actor domain.Actor) (*domain.Payment, error) {
	return m.paymentResult(m.Called(ctx, paymentID, receipt, actor))
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) saleResult(args mock.Arguments) (*domain.Sale, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams, actor domain.Actor) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}
func (m *MockSaleService) SubmitSale(ctx context.Context, req dto.CreateSaleRequest, actor domain.Actor) (*domain.Sale, error) {
	return m.saleResult(m.Called(ctx, req, actor))
}
func (m *MockSaleService) ConfirmSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
	return m.saleResult(m.Called(ctx, saleID, actor))
}
func (m *MockSaleService) RejectSale(ctx context.Context, saleID string, actor domain.Actor) (*domain.Sale, error) {
	return m.saleResult(m.Called(ctx, saleID, actor))
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock CommissionService ---
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) Leaderboard(ctx context.Context, actor domain.Actor) (*domain.Leaderboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}
func (m *MockCommissionService) AgentStanding(ctx context.Context, agentID string, actor domain.Actor) (*domain.AgentStanding, error) {
	args := m.Called(ctx, agentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentStanding), args.Error(1)
}
func (m *MockCommissionService) CumulativeConfirmedSales(ctx context.Context, agentID string, actor domain.Actor) (decimal.Decimal, error) {
	args := m.Called(ctx, agentID, actor)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCommissionService) Tiers() []domain.Tier {
	args := m.Called()
	return args.Get(0).([]domain.Tier)
}

var _ portssvc.CommissionSvc = (*MockCommissionService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ListBalances(ctx context.Context, clientName string, actor domain.Actor) ([]domain.Balance, error) {
	args := m.Called(ctx, clientName, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}
func (m *MockBalanceService) GetBalance(ctx context.Context, key domain.BalanceKey, actor domain.Actor) (*domain.Balance, error) {
	args := m.Called(ctx, key, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

var _ portssvc.BalanceSvc = (*MockBalanceService)(nil)
