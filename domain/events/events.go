package events

import (
	"time"

	"qabum/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeConfigUpdated    EventType = "config_updated"
	EventTypeSplitComputed    EventType = "split_computed"
	EventTypeAdvanceEvaluated EventType = "advance_evaluated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ConfigUpdatedEvent represents a successful risk configuration write
type ConfigUpdatedEvent struct {
	PreviousVersion int       `json:"previousVersion"`
	NewVersion      int       `json:"newVersion"`
	Actor           string    `json:"actor"`
	Reason          string    `json:"reason"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (e ConfigUpdatedEvent) Type() EventType {
	return EventTypeConfigUpdated
}

// SplitComputedEvent represents a processed transaction split
type SplitComputedEvent struct {
	StoreID           string  `json:"storeId"`
	MerchantID        string  `json:"merchantId"`
	GrossAmount       float64 `json:"grossAmount"`
	MerchantNetAmount float64 `json:"merchantNetAmount"`
	EffectiveTakeRate float64 `json:"effectiveTakeRate"`
	CapExceeded       bool    `json:"capExceeded"`
	ConfigVersionUsed int     `json:"configVersionUsed"`
}

func (e SplitComputedEvent) Type() EventType {
	return EventTypeSplitComputed
}

// AdvanceEvaluatedEvent represents a completed advance eligibility decision
type AdvanceEvaluatedEvent struct {
	StoreID         string            `json:"storeId"`
	MerchantID      string            `json:"merchantId"`
	RequestedAmount float64           `json:"requestedAmount"`
	ApprovedAmount  float64           `json:"approvedAmount"`
	IsEligible      bool              `json:"isEligible"`
	RiskBand        entities.RiskBand `json:"riskBand"`
}

func (e AdvanceEvaluatedEvent) Type() EventType {
	return EventTypeAdvanceEvaluated
}
