package testhelpers

import (
	"context"

	"qabum/domain/entities"
	"qabum/domain/events"
	"qabum/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) GetByID(ctx context.Context, storeID string) (*entities.StoreConfig, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StoreConfig), args.Error(1)
}

func (m *MockStoreRepository) GetAll(ctx context.Context) ([]*entities.StoreConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StoreConfig), args.Error(1)
}

// MockSnapshotProvider is a mock implementation of MerchantSnapshotProvider
type MockSnapshotProvider struct {
	mock.Mock
}

func (m *MockSnapshotProvider) Get(ctx context.Context, storeID, merchantID string) (*entities.MerchantSalesSnapshot, error) {
	args := m.Called(ctx, storeID, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MerchantSalesSnapshot), args.Error(1)
}

// MockRiskConfigRepository is a mock implementation of RiskConfigRepository
type MockRiskConfigRepository struct {
	mock.Mock
}

func (m *MockRiskConfigRepository) Get(ctx context.Context) (*entities.RiskConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RiskConfig), args.Error(1)
}

func (m *MockRiskConfigRepository) Put(ctx context.Context, next *entities.RiskConfig, expectedVersion int) error {
	args := m.Called(ctx, next, expectedVersion)
	return args.Error(0)
}

// MockConfigAuditRepository is a mock implementation of ConfigAuditRepository
type MockConfigAuditRepository struct {
	mock.Mock
}

func (m *MockConfigAuditRepository) Append(ctx context.Context, entry *entities.ConfigAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockConfigAuditRepository) GetRecent(ctx context.Context, limit int) ([]*entities.ConfigAuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ConfigAuditEntry), args.Error(1)
}

// MockProcessedTransactionRepository is a mock implementation of ProcessedTransactionRepository
type MockProcessedTransactionRepository struct {
	mock.Mock
}

func (m *MockProcessedTransactionRepository) Record(ctx context.Context, txn *entities.ProcessedTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockProcessedTransactionRepository) GetByMerchant(ctx context.Context, storeID, merchantID string, limit int) ([]*entities.ProcessedTransaction, error) {
	args := m.Called(ctx, storeID, merchantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProcessedTransaction), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockConfigService is a mock implementation of ConfigService
type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) GetConfig(ctx context.Context) (*entities.RiskConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RiskConfig), args.Error(1)
}

func (m *MockConfigService) UpdateConfig(ctx context.Context, input map[string]any, meta entities.UpdateMeta) (*entities.RiskConfig, []string, error) {
	args := m.Called(ctx, input, meta)
	var cfg *entities.RiskConfig
	if args.Get(0) != nil {
		cfg = args.Get(0).(*entities.RiskConfig)
	}
	var errs []string
	if args.Get(1) != nil {
		errs = args.Get(1).([]string)
	}
	return cfg, errs, args.Error(2)
}

func (m *MockConfigService) GetAuditTrail(ctx context.Context, limit int) ([]*entities.ConfigAuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ConfigAuditEntry), args.Error(1)
}

// MockSplitService is a mock implementation of SplitService
type MockSplitService struct {
	mock.Mock
}

func (m *MockSplitService) CalculateSplit(ctx context.Context, input interfaces.CalculateSplitInput) (*entities.TransactionSplitResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionSplitResult), args.Error(1)
}

func (m *MockSplitService) CalculateSplitWithConfig(ctx context.Context, input interfaces.CalculateSplitInput, cfg *entities.RiskConfig) (*entities.TransactionSplitResult, error) {
	args := m.Called(ctx, input, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionSplitResult), args.Error(1)
}
