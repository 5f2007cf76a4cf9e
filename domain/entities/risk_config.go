package entities

import "time"

// GlobalRiskParams holds the platform-wide rate and gating parameters
type GlobalRiskParams struct {
	DefaultMdr                          float64 `json:"defaultMdr"`
	DefaultQabumMarginCap               float64 `json:"defaultQabumMarginCap"`
	DefaultRepaymentRate                float64 `json:"defaultRepaymentRate"`
	MaxAdvanceMultipleOfAvgMonthlySales float64 `json:"maxAdvanceMultipleOfAvgMonthlySales"`
	MinPaybackMonths                    int     `json:"minPaybackMonths"`
	MaxPaybackMonths                    int     `json:"maxPaybackMonths"`
	MinPlatformAgeMonths                int     `json:"minPlatformAgeMonths"`
	MinActiveMonthsLastN                int     `json:"minActiveMonthsLastN"`
}

// SectorCap holds the per-sector deduction ceiling and an optional
// advance-multiple override
type SectorCap struct {
	EthicalCap                          float64  `json:"ethicalCap"`
	MaxAdvanceMultipleOfAvgMonthlySales *float64 `json:"maxAdvanceMultipleOfAvgMonthlySales,omitempty"`
}

// RiskConfig is the single shared, monotonically versioned configuration
// that parameterizes the split allocator and the risk profiler. It is
// replaced wholesale on each validated write and never deleted.
type RiskConfig struct {
	Version    int                  `json:"version"`
	UpdatedAt  time.Time            `json:"updatedAt"`
	Global     GlobalRiskParams     `json:"global"`
	SectorCaps map[Sector]SectorCap `json:"sectorCaps"`
}

// QabumMarginCeiling is the internal ceiling on the platform margin rate.
// The effective margin is min(QabumMarginCeiling, Global.DefaultQabumMarginCap).
const QabumMarginCeiling = 0.007

// EthicalCapFor resolves the deduction ceiling for a sector: configured
// override first, then the built-in sector-default table.
func (c *RiskConfig) EthicalCapFor(sector Sector) float64 {
	if sc, ok := c.SectorCaps[sector]; ok && sc.EthicalCap > 0 {
		return sc.EthicalCap
	}
	return sector.DefaultEthicalCap()
}

// MaxAdvanceMultipleFor resolves the advance-limit multiple for a sector:
// per-sector override when configured, else the global value.
func (c *RiskConfig) MaxAdvanceMultipleFor(sector Sector) float64 {
	if sc, ok := c.SectorCaps[sector]; ok && sc.MaxAdvanceMultipleOfAvgMonthlySales != nil {
		return *sc.MaxAdvanceMultipleOfAvgMonthlySales
	}
	return c.Global.MaxAdvanceMultipleOfAvgMonthlySales
}

// EffectiveMarginRate returns the platform margin rate after the internal ceiling
func (c *RiskConfig) EffectiveMarginRate() float64 {
	if c.Global.DefaultQabumMarginCap < QabumMarginCeiling {
		return c.Global.DefaultQabumMarginCap
	}
	return QabumMarginCeiling
}

// DefaultRiskConfig returns the conservative first-use configuration
func DefaultRiskConfig(now time.Time) *RiskConfig {
	return &RiskConfig{
		Version:   1,
		UpdatedAt: now,
		Global: GlobalRiskParams{
			DefaultMdr:                          0.03,
			DefaultQabumMarginCap:               0.05,
			DefaultRepaymentRate:                0.10,
			MaxAdvanceMultipleOfAvgMonthlySales: 1.0,
			MinPaybackMonths:                    1,
			MaxPaybackMonths:                    12,
			MinPlatformAgeMonths:                3,
			MinActiveMonthsLastN:                3,
		},
		SectorCaps: map[Sector]SectorCap{
			SectorHighSensitivity:   {EthicalCap: 0.022},
			SectorStandardPyme:      {EthicalCap: 0.027},
			SectorHighMarginService: {EthicalCap: 0.030},
		},
	}
}
