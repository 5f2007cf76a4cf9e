package interfaces

import (
	"context"

	"qabum/domain/entities"
	"qabum/domain/events"
)

// EventPublisher defines the interface for publishing domain events.
// Publishing is best-effort; failures never abort the originating operation.
type EventPublisher interface {
	Publish(event events.Event) error
}

// CalculateSplitInput carries the parameters of one transaction split
type CalculateSplitInput struct {
	StoreID           string
	MerchantID        string
	TransactionAmount float64
	HasActiveAdvance  bool
}

// SplitService defines the interface for transaction split allocation
type SplitService interface {
	// CalculateSplit computes the fee/margin/repayment breakdown for a
	// transaction under the sector's ethical cap, reading the current
	// configuration
	CalculateSplit(ctx context.Context, input CalculateSplitInput) (*entities.TransactionSplitResult, error)

	// CalculateSplitWithConfig is CalculateSplit against a caller-supplied
	// configuration, so compound operations see a single config version
	CalculateSplitWithConfig(ctx context.Context, input CalculateSplitInput, cfg *entities.RiskConfig) (*entities.TransactionSplitResult, error)
}

// RiskService defines the interface for merchant risk profiling
type RiskService interface {
	// GetMerchantRiskProfile fetches the merchant snapshot and derives its
	// risk profile under the current configuration
	GetMerchantRiskProfile(ctx context.Context, storeID, merchantID string) (*entities.MerchantRiskProfile, error)

	// DeriveRiskProfile classifies a snapshot under the given configuration.
	// Pure and deterministic.
	DeriveRiskProfile(snapshot *entities.MerchantSalesSnapshot, cfg *entities.RiskConfig) *entities.MerchantRiskProfile
}

// EvaluateAdvanceInput carries the parameters of one advance request
type EvaluateAdvanceInput struct {
	StoreID         string
	MerchantID      string
	RequestedAmount float64
}

// EligibilityService defines the interface for advance eligibility decisions
type EligibilityService interface {
	// EvaluateAdvanceRequest applies the activity gates and band-specific
	// approval rules and returns the decision with audit fields attached
	EvaluateAdvanceRequest(ctx context.Context, input EvaluateAdvanceInput) (*entities.AdvanceEligibilityResult, error)
}

// ConfigService defines the interface for the risk configuration lifecycle
type ConfigService interface {
	// GetConfig returns the current configuration, initializing and
	// persisting the documented defaults on first use
	GetConfig(ctx context.Context) (*entities.RiskConfig, error)

	// UpdateConfig validates the submitted document, stamps version and
	// updatedAt, persists it with a compare-and-swap on the version read,
	// and appends an audit record. Validation failures return the complete
	// error list; no partial config is ever applied.
	UpdateConfig(ctx context.Context, input map[string]any, meta entities.UpdateMeta) (*entities.RiskConfig, []string, error)

	// GetAuditTrail returns the most recent configuration audit entries
	GetAuditTrail(ctx context.Context, limit int) ([]*entities.ConfigAuditEntry, error)
}
