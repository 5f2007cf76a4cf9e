package entities

// RiskBand classifies a merchant's creditworthiness
type RiskBand string

const (
	RiskBandLow    RiskBand = "LOW"
	RiskBandMedium RiskBand = "MEDIUM"
	RiskBandHigh   RiskBand = "HIGH"
)

// Reason codes attached to a risk profile. LOW_RISK_PROFILE is the only
// gating code; the rest are diagnostics.
const (
	ReasonLowRiskProfile      = "LOW_RISK_PROFILE"
	ReasonHighVolatility      = "HIGH_VOLATILITY"
	ReasonIntermediateHistory = "INTERMEDIATE_HISTORY"
	ReasonFailedSplitsLite    = "FAILED_SPLITS_LITE"
	ReasonLowVolume           = "LOW_VOLUME"
	ReasonShortHistory        = "SHORT_HISTORY"
	ReasonRecentDrop          = "RECENT_DROP"
	ReasonFailedSplitsHigh    = "FAILED_SPLITS_HIGH"
	ReasonCriticalVolatility  = "CRITICAL_VOLATILITY"
)
