package shipment

import (
	"context"
	"testing"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCompanyRepository is a mock of partner.ShippingCompanyRepository used by
// the payment flow to resolve the paying party.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ShippingCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ShippingCompany), args.Error(1)
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, name string) (*partner.ShippingCompany, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ShippingCompany), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter partner.Filter) ([]partner.ShippingCompany, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.ShippingCompany), args.Error(1)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter partner.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *partner.ShippingCompany) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ partner.ShippingCompanyRepository = (*MockCompanyRepository)(nil)

// MockPartySupplierRepository is a mock of partner.SupplierRepository for the
// payment flow.
type MockPartySupplierRepository struct {
	mock.Mock
}

func (m *MockPartySupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockPartySupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockPartySupplierRepository) FindAll(ctx context.Context, filter partner.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockPartySupplierRepository) Count(ctx context.Context, filter partner.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartySupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockPartySupplierRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartySupplierRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartySupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ partner.SupplierRepository = (*MockPartySupplierRepository)(nil)

type paymentMocks struct {
	payments    *MockPaymentRepository
	allocations *MockAllocationRepository
	shipments   *MockShipmentRepository
	items       *MockItemRepository
	suppliers   *MockPartySupplierRepository
	companies   *MockCompanyRepository
	idempotency *cache.InMemoryIdempotencyStore
}

func newPaymentService() (*PaymentService, paymentMocks) {
	m := paymentMocks{
		payments:    new(MockPaymentRepository),
		allocations: new(MockAllocationRepository),
		shipments:   new(MockShipmentRepository),
		items:       new(MockItemRepository),
		suppliers:   new(MockPartySupplierRepository),
		companies:   new(MockCompanyRepository),
		idempotency: cache.NewInMemoryIdempotencyStore(),
	}
	svc := NewPaymentService(
		m.payments, m.allocations, m.shipments, m.items,
		m.suppliers, m.companies, m.idempotency, nil, fakeTxManager{}, nil,
	)
	return svc, m
}

func TestPaymentService_Create_AutoAllocatesInItemOrder(t *testing.T) {
	svc, m := newPaymentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	companyID := uuid.New()
	require.NoError(t, sh.AssignShippingCompany(companyID))

	supplierA := uuid.New()
	supplierB := uuid.New()
	items := []*shipment.Item{
		// Supplier A first: 10 pieces x 4 RMB = 40 RMB outstanding.
		newTestItem(t, sh.ID, supplierA, 1, 10, decimal.NewFromInt(4), decimal.Zero, decimal.Zero),
		// Supplier B second: 10 pieces x 3 RMB = 30 RMB outstanding.
		newTestItem(t, sh.ID, supplierB, 1, 10, decimal.NewFromInt(3), decimal.Zero, decimal.Zero),
	}
	company, err := partner.NewShippingCompany("Red Sea Freight")
	require.NoError(t, err)

	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.companies.On("FindByID", ctx, companyID).Return(company, nil)
	m.items.On("FindByShipment", ctx, sh.ID).Return(items, nil)
	m.payments.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Payment{}, nil)
	m.allocations.On("FindByShipment", ctx, sh.ID).Return([]shipment.PaymentAllocation{}, nil)
	m.payments.On("Save", ctx, mock.AnythingOfType("*shipment.Payment")).Return(nil)
	m.shipments.On("SaveWithLock", ctx, sh).Return(nil)

	var saved []shipment.PaymentAllocation
	m.allocations.On("SaveAll", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]shipment.PaymentAllocation)
	}).Return(nil)

	resp, err := svc.Create(ctx, CreatePaymentRequest{
		ShipmentID:        sh.ID,
		PartyType:         "SHIPPING_COMPANY",
		PartyID:           companyID,
		Currency:          "RMB",
		AmountOriginal:    decimal.NewFromInt(50),
		ExchangeRateToEgp: decimal.NewFromInt(7),
		CostComponent:     "GOODS",
		Method:            "BANK_TRANSFER",
		PaidAt:            time.Now(),
		AutoAllocate:      true,
	})

	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, supplierA, saved[0].SupplierID)
	assert.True(t, saved[0].AllocatedAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, supplierB, saved[1].SupplierID)
	assert.True(t, saved[1].AllocatedAmount.Equal(decimal.NewFromInt(10)))
	require.Len(t, resp.Allocations, 2)
	assert.Equal(t, "40.00", resp.Allocations[0].AllocatedAmount)
}

func TestPaymentService_Create_AutoAllocateRequiresRmb(t *testing.T) {
	svc, m := newPaymentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	companyID := uuid.New()
	require.NoError(t, sh.AssignShippingCompany(companyID))
	company, err := partner.NewShippingCompany("Red Sea Freight")
	require.NoError(t, err)

	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.companies.On("FindByID", ctx, companyID).Return(company, nil)

	_, err = svc.Create(ctx, CreatePaymentRequest{
		ShipmentID:     sh.ID,
		PartyType:      "SHIPPING_COMPANY",
		PartyID:        companyID,
		Currency:       "EGP",
		AmountOriginal: decimal.NewFromInt(1000),
		CostComponent:  "GOODS",
		Method:         "CASH",
		AutoAllocate:   true,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	m.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_Create_ReplayReturnsOriginalPayment(t *testing.T) {
	svc, m := newPaymentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	supplierID := uuid.New()
	supplier, err := partner.NewSupplier("Yiwu Trading Co")
	require.NoError(t, err)

	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.suppliers.On("FindByID", ctx, supplierID).Return(supplier, nil)

	var savedPayment *shipment.Payment
	m.payments.On("Save", ctx, mock.AnythingOfType("*shipment.Payment")).Run(func(args mock.Arguments) {
		savedPayment = args.Get(1).(*shipment.Payment)
	}).Return(nil).Once()
	m.payments.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Payment{}, nil)
	m.shipments.On("SaveWithLock", ctx, sh).Return(nil)

	req := CreatePaymentRequest{
		ShipmentID:     sh.ID,
		PartyType:      "SUPPLIER",
		PartyID:        supplierID,
		Currency:       "EGP",
		AmountOriginal: decimal.NewFromInt(100),
		CostComponent:  "GOODS",
		Method:         "CASH",
		IdempotencyKey: "abc-123",
	}

	first, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, savedPayment)

	// The replay resolves through the stored payment ID instead of writing
	// a second payment.
	m.payments.On("FindByID", ctx, savedPayment.ID).Return(savedPayment, nil)
	m.allocations.On("FindByPayment", ctx, savedPayment.ID).Return([]shipment.PaymentAllocation{}, nil)

	second, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	m.payments.AssertNumberOfCalls(t, "Save", 1)
}

func TestPaymentService_Create_FailedAttemptDoesNotConsumeKey(t *testing.T) {
	svc, m := newPaymentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	supplierID := uuid.New()
	supplier, err := partner.NewSupplier("Yiwu Trading Co")
	require.NoError(t, err)

	// First submission dies before anything is persisted.
	m.shipments.On("FindByID", ctx, sh.ID).Return(nil, shared.ErrNotFound).Once()

	req := CreatePaymentRequest{
		ShipmentID:     sh.ID,
		PartyType:      "SUPPLIER",
		PartyID:        supplierID,
		Currency:       "EGP",
		AmountOriginal: decimal.NewFromInt(100),
		CostComponent:  "GOODS",
		Method:         "CASH",
		IdempotencyKey: "retry-77",
	}

	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, shared.ErrNotFound)

	// The retry with the same key must go through, not hit a conflict.
	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.suppliers.On("FindByID", ctx, supplierID).Return(supplier, nil)
	m.payments.On("Save", ctx, mock.AnythingOfType("*shipment.Payment")).Return(nil)
	m.payments.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Payment{}, nil)
	m.shipments.On("SaveWithLock", ctx, sh).Return(nil)

	resp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.AmountEgp)

	// The committed payment is now what the key resolves to.
	paymentID, found, err := m.idempotency.Lookup(ctx, "retry-77")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, resp.ID.String(), paymentID)
}

func TestPaymentService_Create_ArchivedShipment(t *testing.T) {
	svc, m := newPaymentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	require.NoError(t, sh.Archive())
	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)

	_, err := svc.Create(ctx, CreatePaymentRequest{
		ShipmentID:     sh.ID,
		PartyType:      "SUPPLIER",
		PartyID:        uuid.New(),
		Currency:       "EGP",
		AmountOriginal: decimal.NewFromInt(100),
		CostComponent:  "GOODS",
		Method:         "CASH",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestPaymentService_Create_UpdatesShipmentPaidTotal(t *testing.T) {
	svc, m := newPaymentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	supplierID := uuid.New()
	supplier, err := partner.NewSupplier("Yiwu Trading Co")
	require.NoError(t, err)

	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.suppliers.On("FindByID", ctx, supplierID).Return(supplier, nil)

	// The in-transaction refetch sees a prior payment of 200 EGP alongside the
	// new one; the shipment's paid total comes from that list.
	prior, err := shipment.NewPayment(sh.ID, shipment.PartyTypeSupplier, supplierID,
		"EGP", decimal.NewFromInt(200), decimal.Zero,
		shipment.CostComponentGoods, shipment.PaymentMethodCash, time.Now(), "")
	require.NoError(t, err)

	var savedPayment *shipment.Payment
	m.payments.On("Save", ctx, mock.AnythingOfType("*shipment.Payment")).Run(func(args mock.Arguments) {
		savedPayment = args.Get(1).(*shipment.Payment)
	}).Return(nil)
	m.payments.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Payment{prior}, nil)
	m.shipments.On("SaveWithLock", ctx, sh).Return(nil)

	resp, err := svc.Create(ctx, CreatePaymentRequest{
		ShipmentID:     sh.ID,
		PartyType:      "SUPPLIER",
		PartyID:        supplierID,
		Currency:       "EGP",
		AmountOriginal: decimal.NewFromInt(500),
		CostComponent:  "GOODS",
		Method:         "CASH",
	})

	require.NoError(t, err)
	require.NotNil(t, savedPayment)
	assert.Equal(t, "500.00", resp.AmountEgp)
	assert.True(t, savedPayment.AmountEgp.Equal(decimal.NewFromInt(500)))
	assert.True(t, sh.TotalPaidEgp.Equal(decimal.NewFromInt(200)))
	m.shipments.AssertExpectations(t)
}
