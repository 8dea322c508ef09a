package shipment

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

// fakeTxManager runs the unit of work inline, without a database
type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ shared.TransactionManager = fakeTxManager{}

type shipmentMocks struct {
	shipments   *MockShipmentRepository
	items       *MockItemRepository
	details     *MockShippingDetailsRepository
	payments    *MockPaymentRepository
	allocations *MockAllocationRepository
}

func newShipmentService() (*ShipmentService, shipmentMocks) {
	m := shipmentMocks{
		shipments:   new(MockShipmentRepository),
		items:       new(MockItemRepository),
		details:     new(MockShippingDetailsRepository),
		payments:    new(MockPaymentRepository),
		allocations: new(MockAllocationRepository),
	}
	svc := NewShipmentService(m.shipments, m.items, m.details, m.payments, m.allocations, fakeTxManager{}, nil)
	return svc, m
}

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	sh, err := shipment.NewShipment("SHP-2025-001", "Spring stock", time.Now(), decimal.NewFromInt(10))
	require.NoError(t, err)
	return sh
}

func newTestItem(t *testing.T, shipmentID, supplierID uuid.UUID, cartons, pieces int64, price, customs, takhreeg decimal.Decimal) *shipment.Item {
	t.Helper()
	it, err := shipment.NewItem(shipmentID, "Blenders", supplierID, nil, "CN", cartons, pieces, price, customs, takhreeg)
	require.NoError(t, err)
	return it
}

func TestShipmentService_Create_DuplicateCode(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	m.shipments.On("ExistsByCode", ctx, "SHP-2025-001").Return(true, nil)

	_, err := svc.Create(ctx, CreateShipmentRequest{
		Code:             "SHP-2025-001",
		Name:             "Spring stock",
		PurchaseDate:     time.Now(),
		PurchaseRmbToEgp: decimal.NewFromInt(7),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	m.shipments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestShipmentService_Create_Success(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	m.shipments.On("ExistsByCode", ctx, "SHP-2025-002").Return(false, nil)
	m.shipments.On("Save", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil)

	resp, err := svc.Create(ctx, CreateShipmentRequest{
		Code:             "SHP-2025-002",
		Name:             "Summer stock",
		PurchaseDate:     time.Now(),
		PurchaseRmbToEgp: decimal.RequireFromString("7.15"),
	})

	require.NoError(t, err)
	assert.Equal(t, "NEW", resp.Status)
	assert.Equal(t, "0.00", resp.Totals.FinalTotalCostEgp)
	assert.Equal(t, "0.00", resp.BalanceEgp)
}

func TestShipmentService_UpdateMissingPieces_RecomputesCosts(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	supplierID := uuid.New()
	// 2 CTN x 5 PCS = 10 pieces at 4 RMB, customs 1 EGP/piece, takhreeg 2 EGP/carton.
	it := newTestItem(t, sh.ID, supplierID, 2, 5,
		decimal.NewFromInt(4), decimal.NewFromInt(1), decimal.NewFromInt(2))
	items := []*shipment.Item{it}

	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.items.On("FindByShipment", ctx, sh.ID).Return(items, nil)
	m.items.On("SaveAll", ctx, mock.Anything).Return(nil)
	m.details.On("FindByShipment", ctx, sh.ID).Return(nil, shared.ErrNotFound)
	m.shipments.On("SaveWithLock", ctx, sh).Return(nil)

	resp, err := svc.UpdateMissingPieces(ctx, sh.ID, MissingPiecesRequest{
		Items: []MissingPieceInput{{ItemID: it.ID, MissingPieces: 2}},
	})

	require.NoError(t, err)
	// Purchase 40 RMB -> 400 EGP at rate 10; extras 10 customs + 4 takhreeg.
	// Unit cost (400+14)/10 = 41.4; missing 2 pieces -> 82.80.
	assert.Equal(t, "82.80", resp.Totals.TotalMissingCostEgp)
	assert.Equal(t, "331.20", resp.Totals.FinalTotalCostEgp)
	assert.Equal(t, "82.80", resp.Items[0].MissingCostEgp)
	assert.Equal(t, int64(2), resp.Items[0].MissingPieces)
}

func TestShipmentService_UpdateMissingPieces_UnknownItem(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.items.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Item{}, nil)

	_, err := svc.UpdateMissingPieces(ctx, sh.ID, MissingPiecesRequest{
		Items: []MissingPieceInput{{ItemID: uuid.New(), MissingPieces: 1}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestShipmentService_Advance_WalksTheWizard(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.shipments.On("SaveWithLock", ctx, sh).Return(nil)

	statuses := []string{"AWAITING_SHIPPING", "READY_FOR_RECEIPT", "RECEIVED", "ARCHIVED"}
	for _, want := range statuses {
		resp, err := svc.Advance(ctx, sh.ID)
		require.NoError(t, err)
		assert.Equal(t, want, resp.Status)
	}

	_, err := svc.Advance(ctx, sh.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestShipmentService_ReplaceItems_ArchivedShipment(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	require.NoError(t, sh.Archive())
	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)

	_, err := svc.ReplaceItems(ctx, sh.ID, ReplaceItemsRequest{
		Items: []ItemInput{{
			ProductName:     "Blenders",
			SupplierID:      uuid.New(),
			Cartons:         1,
			PiecesPerCarton: 10,
		}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestShipmentService_GoodsSummary_SuppliersInItemOrder(t *testing.T) {
	svc, m := newShipmentService()
	ctx := context.Background()

	sh := newTestShipment(t)
	supplierA := uuid.New()
	supplierB := uuid.New()
	items := []*shipment.Item{
		newTestItem(t, sh.ID, supplierA, 1, 10, decimal.NewFromInt(4), decimal.Zero, decimal.Zero),
		newTestItem(t, sh.ID, supplierB, 1, 10, decimal.NewFromInt(3), decimal.Zero, decimal.Zero),
		newTestItem(t, sh.ID, supplierA, 1, 5, decimal.NewFromInt(2), decimal.Zero, decimal.Zero),
	}

	m.shipments.On("FindByID", ctx, sh.ID).Return(sh, nil)
	m.items.On("FindByShipment", ctx, sh.ID).Return(items, nil)
	m.payments.On("FindByShipment", ctx, sh.ID).Return([]*shipment.Payment{}, nil)
	m.allocations.On("FindByShipment", ctx, sh.ID).Return([]shipment.PaymentAllocation{}, nil)

	summaries, err := svc.GoodsSummary(ctx, sh.ID)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, supplierA, summaries[0].SupplierID)
	assert.Equal(t, "50.00", summaries[0].GoodsTotalRmb) // 40 + 10
	assert.Equal(t, supplierB, summaries[1].SupplierID)
	assert.Equal(t, "30.00", summaries[1].GoodsTotalRmb)
}
