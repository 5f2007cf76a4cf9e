package entities

// MerchantRiskProfile is the derived, ephemeral risk classification for a
// merchant. RecommendedRepaymentRate is already clamped against the
// sector's ethical cap when the sector is known.
type MerchantRiskProfile struct {
	MerchantID               string   `json:"merchantId"`
	StoreID                  string   `json:"storeId"`
	RiskBand                 RiskBand `json:"riskBand"`
	MaxAdvanceLimit          float64  `json:"maxAdvanceLimit"`
	RecommendedRepaymentRate float64  `json:"recommendedRepaymentRate"`
	LossProvisionRate        float64  `json:"lossProvisionRate"`
	ReasonCodes              []string `json:"reasonCodes"`
}

// IsLowRisk returns true for the LOW band
func (p *MerchantRiskProfile) IsLowRisk() bool {
	return p.RiskBand == RiskBandLow
}

// HighRiskCap returns the stricter approval ceiling applied to HIGH band
// merchants: half the advance limit.
func (p *MerchantRiskProfile) HighRiskCap() float64 {
	return p.MaxAdvanceLimit * 0.5
}
