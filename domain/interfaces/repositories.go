package interfaces

import (
	"context"

	"qabum/domain/entities"
)

// StoreRepository defines the interface for store reference data access
type StoreRepository interface {
	// GetByID retrieves a store configuration by its id.
	// Returns entities.ErrStoreNotFound when the store does not exist.
	GetByID(ctx context.Context, storeID string) (*entities.StoreConfig, error)

	// GetAll returns all store configurations
	GetAll(ctx context.Context) ([]*entities.StoreConfig, error)
}

// MerchantSnapshotProvider defines the interface for merchant sales history access
type MerchantSnapshotProvider interface {
	// Get retrieves the sales snapshot for a merchant. A lookup miss never
	// fails; it yields the synthetic high-risk default instead.
	Get(ctx context.Context, storeID, merchantID string) (*entities.MerchantSalesSnapshot, error)
}

// RiskConfigRepository defines the interface for the persisted risk configuration
type RiskConfigRepository interface {
	// Get retrieves the current configuration.
	// Returns entities.ErrConfigNotFound when none has been persisted yet.
	Get(ctx context.Context) (*entities.RiskConfig, error)

	// Put persists the next configuration. expectedVersion is the version
	// the caller read (0 when no prior config existed); the write fails
	// with entities.ErrConfigVersionConflict if the stored version moved.
	Put(ctx context.Context, next *entities.RiskConfig, expectedVersion int) error
}

// ConfigAuditRepository defines the interface for the append-only config audit trail
type ConfigAuditRepository interface {
	// Append writes one audit entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *entities.ConfigAuditEntry) error

	// GetRecent returns the most recent audit entries, newest first
	GetRecent(ctx context.Context, limit int) ([]*entities.ConfigAuditEntry, error)
}

// ProcessedTransactionRepository defines the interface for split audit records
type ProcessedTransactionRepository interface {
	// Record persists one processed transaction split
	Record(ctx context.Context, txn *entities.ProcessedTransaction) error

	// GetByMerchant returns recent processed transactions for a merchant
	GetByMerchant(ctx context.Context, storeID, merchantID string, limit int) ([]*entities.ProcessedTransaction, error)
}
