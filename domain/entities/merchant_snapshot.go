package entities

import "time"

// MerchantSalesSnapshot is a point-in-time aggregate of a merchant's sales
// history and behavioral signals, supplied by an external provider
type MerchantSalesSnapshot struct {
	MerchantID             string     `json:"merchantId" db:"merchant_id"`
	StoreID                string     `json:"storeId" db:"store_id"`
	AverageMonthlyVolume   float64    `json:"averageMonthlyVolume" db:"average_monthly_volume"`
	MonthlyVolatilityIndex float64    `json:"monthlyVolatilityIndex" db:"monthly_volatility_index"`
	MonthsActive           int        `json:"monthsActive" db:"months_active"`
	RecentActiveMonths     int        `json:"recentActiveMonths" db:"recent_active_months"`
	HasRecentDrop          bool       `json:"hasRecentDrop" db:"has_recent_drop"`
	FailedSplitCount       int        `json:"failedSplitCount" db:"failed_split_count"`
	Sector                 Sector     `json:"sector,omitempty" db:"sector"`
	MerchantName           string     `json:"merchantName,omitempty" db:"merchant_name"`
	OnboardDate            *time.Time `json:"onboardDate,omitempty" db:"onboard_date"`
	HasActiveAdvance       bool       `json:"hasActiveAdvance" db:"has_active_advance"`
}

// SyntheticSnapshot returns the high-risk default used when no snapshot
// exists for a merchant: zero history, maximum volatility, heavy failure count.
func SyntheticSnapshot(storeID, merchantID string) *MerchantSalesSnapshot {
	return &MerchantSalesSnapshot{
		MerchantID:             merchantID,
		StoreID:                storeID,
		AverageMonthlyVolume:   0,
		MonthlyVolatilityIndex: 1.0,
		MonthsActive:           0,
		RecentActiveMonths:     0,
		HasRecentDrop:          true,
		FailedSplitCount:       10,
	}
}

// HasKnownSector returns true if the snapshot carries a recognized sector
func (s *MerchantSalesSnapshot) HasKnownSector() bool {
	return s.Sector.IsKnown()
}
