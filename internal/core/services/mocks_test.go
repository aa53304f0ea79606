package services_test

import (
	"context"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter, limit int, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountPayments(ctx context.Context, filter portsrepo.PaymentFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, expectedVersion int, status domain.PaymentStatus, actorID string, now time.Time) error {
	args := m.Called(ctx, paymentID, expectedVersion, status, actorID, now)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateAcknowledgmentPath(ctx context.Context, paymentID string, expectedVersion int, path string, actorID string, now time.Time) error {
	args := m.Called(ctx, paymentID, expectedVersion, path, actorID, now)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentDetails(ctx context.Context, payment domain.Payment, expectedVersion int) error {
	args := m.Called(ctx, payment, expectedVersion)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkPaymentDeleted(ctx context.Context, paymentID string, deletedAt time.Time, actorID string) error {
	args := m.Called(ctx, paymentID, deletedAt, actorID)
	return args.Error(0)
}

// MockBalanceRepository is a mock type for the BalanceReader interface
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalances(ctx context.Context, clientName string) ([]domain.Balance, error) {
	args := m.Called(ctx, clientName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

// MockReceiptStore is a mock type for the ReceiptStore interface
type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) Upload(ctx context.Context, bucket, path string, data []byte, opts portsrepo.UploadOptions) (string, error) {
	args := m.Called(ctx, bucket, path, data, opts)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptStore) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	args := m.Called(ctx, bucket, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReceiptStore) Delete(ctx context.Context, bucket, path string) error {
	args := m.Called(ctx, bucket, path)
	return args.Error(0)
}

// MockSaleRepository is a mock type for the SaleRepositoryFacade interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) CountSales(ctx context.Context, filter portsrepo.SaleFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSaleRepository) ListConfirmedSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, expectedVersion int, status domain.SaleStatus, actorID string, now time.Time) error {
	args := m.Called(ctx, saleID, expectedVersion, status, actorID, now)
	return args.Error(0)
}

// MockAgentRepository is a mock type for the AgentReader interface
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) FindAgentByID(ctx context.Context, agentID string) (*domain.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) ListActiveAgents(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

// recordingObserver captures lifecycle notifications.
type recordingObserver struct {
	submitted     []domain.Payment
	actions       []domain.PaymentAction
	compensations []error
	sales         []domain.Sale
	reviews       []domain.SaleStatus
	aggregations  int
}

func (o *recordingObserver) PaymentSubmitted(_ context.Context, _ domain.Actor, p domain.Payment) {
	o.submitted = append(o.submitted, p)
}

func (o *recordingObserver) PaymentTransitioned(_ context.Context, _ domain.Actor, _ domain.Payment, action domain.PaymentAction) {
	o.actions = append(o.actions, action)
}

func (o *recordingObserver) ReceiptCompensated(_ context.Context, _ string, err error) {
	o.compensations = append(o.compensations, err)
}

func (o *recordingObserver) SaleSubmitted(_ context.Context, _ domain.Actor, s domain.Sale) {
	o.sales = append(o.sales, s)
}

func (o *recordingObserver) SaleReviewed(_ context.Context, _ domain.Actor, s domain.Sale) {
	o.reviews = append(o.reviews, s.Status)
}

func (o *recordingObserver) AggregationCompleted(context.Context, time.Duration, int, int) {
	o.aggregations++
}
