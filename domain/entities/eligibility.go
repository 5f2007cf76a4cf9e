package entities

import "time"

// AdvanceEligibilityResult is the derived outcome of a working-capital
// advance request, including the audit fields describing which sector, cap
// and configuration version produced the decision.
type AdvanceEligibilityResult struct {
	MerchantID            string               `json:"merchantId"`
	StoreID               string               `json:"storeId"`
	RequestedAmount       float64              `json:"requestedAmount"`
	IsEligible            bool                 `json:"isEligible"`
	ApprovedAmount        float64              `json:"approvedAmount"`
	RiskProfile           *MerchantRiskProfile `json:"riskProfile"`
	DecisionReason        string               `json:"decisionReason"`
	EstimatedPaybackMonths *float64            `json:"estimatedPaybackMonths,omitempty"`

	// Audit fields, attached to every result including gate failures
	MerchantSectorUsed      Sector    `json:"merchantSectorUsed,omitempty"`
	EthicalCapUsed          float64   `json:"ethicalCapUsed"`
	RiskConfigVersionUsed   int       `json:"riskConfigVersionUsed"`
	RiskConfigUpdatedAtUsed time.Time `json:"riskConfigUpdatedAtUsed"`
}
