package trade

import (
	"context"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*trade.Purchase, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) List(ctx context.Context, ownerID int64, filter trade.ListFilter) ([]trade.Purchase, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]trade.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *trade.Purchase) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, p *trade.Purchase) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*trade.Sale, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context, ownerID int64, filter trade.ListFilter) ([]trade.Sale, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]trade.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) Create(ctx context.Context, s *trade.Sale) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSaleRepository) Save(ctx context.Context, s *trade.Sale) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockTypeRepository struct {
	mock.Mock
}

func (m *MockTypeRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*catalog.Type, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Type), args.Error(1)
}

func (m *MockTypeRepository) FindAllForOwner(ctx context.Context, ownerID int64, filter shared.Filter) ([]catalog.Type, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Type), args.Error(1)
}

func (m *MockTypeRepository) ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTypeRepository) Create(ctx context.Context, t *catalog.Type) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTypeRepository) Save(ctx context.Context, t *catalog.Type) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTypeRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, userID, companyID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CreateForUser(ctx context.Context, userID int64, customer *partner.Customer) error {
	return m.Called(ctx, userID, customer).Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepository) HasTrade(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Supplier, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountForUser(ctx context.Context, userID int64, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByNameForUser(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) CreateForUser(ctx context.Context, userID int64, supplier *partner.Supplier) error {
	return m.Called(ctx, userID, supplier).Error(0)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSupplierRepository) HasPurchases(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Mock collaborators
// =============================================================================

type MockStatisticsCache struct {
	mock.Mock
}

func (m *MockStatisticsCache) Get(ctx context.Context, ownerID int64, key string) ([]byte, bool, error) {
	args := m.Called(ctx, ownerID, key)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Bool(1), args.Error(2)
}

func (m *MockStatisticsCache) Set(ctx context.Context, ownerID int64, key string, payload []byte) error {
	return m.Called(ctx, ownerID, key, payload).Error(0)
}

func (m *MockStatisticsCache) Invalidate(ctx context.Context, ownerID int64) error {
	return m.Called(ctx, ownerID).Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, imageURL string) error {
	return m.Called(ctx, imageURL).Error(0)
}

var (
	_ trade.PurchaseRepository   = (*MockPurchaseRepository)(nil)
	_ trade.SaleRepository       = (*MockSaleRepository)(nil)
	_ catalog.TypeRepository     = (*MockTypeRepository)(nil)
	_ partner.CustomerRepository = (*MockCustomerRepository)(nil)
	_ partner.SupplierRepository = (*MockSupplierRepository)(nil)
	_ report.StatisticsCache     = (*MockStatisticsCache)(nil)
	_ ImageStore                 = (*MockImageStore)(nil)
)
