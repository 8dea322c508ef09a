package partner

import (
	"context"
	"testing"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter partner.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter partner.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ partner.SupplierRepository = (*MockSupplierRepository)(nil)

func newTestSupplier(t *testing.T, name string) *partner.Supplier {
	t.Helper()
	s, err := partner.NewSupplier(name)
	require.NoError(t, err)
	return s
}

func TestSupplierService_Create_Success(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, nil)
	ctx := context.Background()

	repo.On("ExistsByName", ctx, "Yiwu Trading Co", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

	resp, err := service.Create(ctx, CreateSupplierRequest{
		Name:  "Yiwu Trading Co",
		Phone: "+86 135 0000 0000",
	})

	require.NoError(t, err)
	assert.Equal(t, "Yiwu Trading Co", resp.Name)
	assert.True(t, resp.Active)
	repo.AssertExpectations(t)
}

func TestSupplierService_Create_DuplicateName(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, nil)
	ctx := context.Background()

	repo.On("ExistsByName", ctx, "Yiwu Trading Co", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := service.Create(ctx, CreateSupplierRequest{Name: "Yiwu Trading Co"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSupplierService_Update_RenameConflict(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, nil)
	ctx := context.Background()

	existing := newTestSupplier(t, "Old Name")
	newName := "Taken Name"

	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	repo.On("ExistsByName", ctx, newName, &existing.ID).Return(true, nil)

	_, err := service.Update(ctx, existing.ID, UpdateSupplierRequest{Name: &newName})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestSupplierService_Delete_ReferencedDeactivates(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, nil)
	ctx := context.Background()

	supplier := newTestSupplier(t, "Guangzhou Goods")

	repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	repo.On("IsReferenced", ctx, supplier.ID).Return(true, nil)
	repo.On("Save", ctx, supplier).Return(nil)

	result, err := service.Delete(ctx, supplier.ID)

	require.NoError(t, err)
	assert.True(t, result.Deactivated)
	assert.False(t, result.Deleted)
	assert.False(t, supplier.Active)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSupplierService_Delete_UnreferencedRemoves(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, nil)
	ctx := context.Background()

	supplier := newTestSupplier(t, "One Off Supplier")

	repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	repo.On("IsReferenced", ctx, supplier.ID).Return(false, nil)
	repo.On("Delete", ctx, supplier.ID).Return(nil)

	result, err := service.Delete(ctx, supplier.ID)

	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.False(t, result.Deactivated)
	repo.AssertExpectations(t)
}

func TestSupplierService_Delete_NotFound(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, nil)
	ctx := context.Background()

	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.Delete(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
