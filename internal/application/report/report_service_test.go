package report

import (
	"context"
	"testing"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockShipmentRepository is a mock implementation of shipment.Repository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shipment.Filter) ([]shipment.Shipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Count(ctx context.Context, filter shipment.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) SaveWithLock(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

var _ shipment.Repository = (*MockShipmentRepository)(nil)

// MockItemRepository is a mock implementation of shipment.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Item), args.Error(1)
}

func (m *MockItemRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.Item, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).([]*shipment.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *shipment.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) SaveAll(ctx context.Context, items []*shipment.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteByShipment(ctx context.Context, shipmentID uuid.UUID) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}

var _ shipment.ItemRepository = (*MockItemRepository)(nil)

// MockShippingDetailsRepository is a mock of shipment.ShippingDetailsRepository
type MockShippingDetailsRepository struct {
	mock.Mock
}

func (m *MockShippingDetailsRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) (*shipment.ShippingDetails, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.ShippingDetails), args.Error(1)
}

func (m *MockShippingDetailsRepository) Save(ctx context.Context, details *shipment.ShippingDetails) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

var _ shipment.ShippingDetailsRepository = (*MockShippingDetailsRepository)(nil)

// MockPaymentRepository is a mock implementation of shipment.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.Payment, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).([]*shipment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shipment.PaymentFilter) ([]*shipment.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*shipment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *shipment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

var _ shipment.PaymentRepository = (*MockPaymentRepository)(nil)

// MockAllocationRepository is a mock implementation of shipment.AllocationRepository
type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]shipment.PaymentAllocation, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]shipment.PaymentAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]shipment.PaymentAllocation, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).([]shipment.PaymentAllocation), args.Error(1)
}

func (m *MockAllocationRepository) SaveAll(ctx context.Context, allocations []shipment.PaymentAllocation) error {
	args := m.Called(ctx, allocations)
	return args.Error(0)
}

var _ shipment.AllocationRepository = (*MockAllocationRepository)(nil)

type reportMocks struct {
	shipments   *MockShipmentRepository
	items       *MockItemRepository
	details     *MockShippingDetailsRepository
	payments    *MockPaymentRepository
	allocations *MockAllocationRepository
}

func newReportService() (*ReportService, reportMocks) {
	m := reportMocks{
		shipments:   new(MockShipmentRepository),
		items:       new(MockItemRepository),
		details:     new(MockShippingDetailsRepository),
		payments:    new(MockPaymentRepository),
		allocations: new(MockAllocationRepository),
	}
	svc := NewReportService(m.shipments, m.items, m.details, m.payments, m.allocations, nil)
	return svc, m
}

func supplierPayment(t *testing.T, shipmentID uuid.UUID, amountEgp int64, method shipment.PaymentMethod, paidAt time.Time) *shipment.Payment {
	t.Helper()
	p, err := shipment.NewPayment(shipmentID, shipment.PartyTypeSupplier, uuid.New(),
		"EGP", decimal.NewFromInt(amountEgp), decimal.Zero,
		shipment.CostComponentGoods, method, paidAt, "")
	require.NoError(t, err)
	return p
}

func TestReportService_Movement_MergesCostsAndPayments(t *testing.T) {
	svc, m := newReportService()
	ctx := context.Background()

	purchaseDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	sh, err := shipment.NewShipment("SHP-2025-010", "April stock", purchaseDate, decimal.NewFromInt(10))
	require.NoError(t, err)

	// 1 CTN x 10 PCS at 4 RMB = 40 RMB purchase -> 400 EGP at rate 10.
	item, err := shipment.NewItem(sh.ID, "Blenders", uuid.New(), nil, "CN",
		1, 10, decimal.NewFromInt(4), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	payment := supplierPayment(t, sh.ID, 150, shipment.PaymentMethodCash,
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))

	m.shipments.On("FindAll", ctx, mock.AnythingOfType("shipment.Filter")).Return([]shipment.Shipment{*sh}, nil)
	m.items.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Item{item}, nil)
	m.details.On("FindByShipment", ctx, sh.ID).Return(nil, shared.ErrNotFound)
	m.payments.On("FindAll", ctx, mock.AnythingOfType("shipment.PaymentFilter")).Return([]*shipment.Payment{payment}, nil)
	m.allocations.On("FindByShipment", ctx, sh.ID).Return([]shipment.PaymentAllocation{}, nil)

	resp, err := svc.Movement(ctx, MovementReportFilter{})

	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "COST", resp.Entries[0].Direction)
	assert.Equal(t, "GOODS", resp.Entries[0].CostComponent)
	assert.Equal(t, "400.00", resp.Entries[0].AmountEgp)
	assert.Equal(t, "PAYMENT", resp.Entries[1].Direction)
	assert.Equal(t, "150.00", resp.Entries[1].AmountEgp)

	assert.Equal(t, "400.00", resp.Totals.TotalCostEgp)
	assert.Equal(t, "150.00", resp.Totals.TotalPaidEgp)
	assert.Equal(t, "250.00", resp.Totals.NetMovementEgp)
}

func TestReportService_Movement_SkipsShipmentsWithoutItems(t *testing.T) {
	svc, m := newReportService()
	ctx := context.Background()

	sh, err := shipment.NewShipment("SHP-2025-011", "Empty", time.Now(), decimal.NewFromInt(10))
	require.NoError(t, err)

	m.shipments.On("FindAll", ctx, mock.AnythingOfType("shipment.Filter")).Return([]shipment.Shipment{*sh}, nil)
	m.items.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Item{}, nil)
	m.payments.On("FindAll", ctx, mock.AnythingOfType("shipment.PaymentFilter")).Return([]*shipment.Payment{}, nil)
	m.allocations.On("FindByShipment", ctx, sh.ID).Return([]shipment.PaymentAllocation{}, nil)

	resp, err := svc.Movement(ctx, MovementReportFilter{})

	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
	assert.Equal(t, "0.00", resp.Totals.TotalCostEgp)
}

func TestReportService_PaymentMethods_SharesOfTotal(t *testing.T) {
	svc, m := newReportService()
	ctx := context.Background()

	shipmentID := uuid.New()
	payments := []*shipment.Payment{
		supplierPayment(t, shipmentID, 150, shipment.PaymentMethodCash, time.Now()),
		supplierPayment(t, shipmentID, 50, shipment.PaymentMethodBankTransfer, time.Now()),
	}
	m.payments.On("FindAll", ctx, mock.AnythingOfType("shipment.PaymentFilter")).Return(payments, nil)

	resp, err := svc.PaymentMethods(ctx, MovementReportFilter{})

	require.NoError(t, err)
	assert.Equal(t, "200.00", resp.TotalEgp)
	require.Len(t, resp.Buckets, 2)
	assert.Equal(t, "CASH", resp.Buckets[0].Method)
	assert.Equal(t, "75.00", resp.Buckets[0].ShareOfTotal)
	assert.Equal(t, "BANK_TRANSFER", resp.Buckets[1].Method)
	assert.Equal(t, "25.00", resp.Buckets[1].ShareOfTotal)
}
