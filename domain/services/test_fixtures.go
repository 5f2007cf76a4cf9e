package services

import (
	"time"

	"qabum/domain/entities"
)

// Test constants for consistent test data
const (
	TestStoreID    = "ec-qabum-001"
	TestMerchantID = "merch-001"
)

// testConfig returns a risk config with the given core rates, defaulting
// the remaining fields to the documented defaults
func testConfig(mdr, marginCap, repayment float64) *entities.RiskConfig {
	cfg := entities.DefaultRiskConfig(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	cfg.Global.DefaultMdr = mdr
	cfg.Global.DefaultQabumMarginCap = marginCap
	cfg.Global.DefaultRepaymentRate = repayment
	return cfg
}

// testStore returns a store config fixture
func testStore(id string) *entities.StoreConfig {
	return &entities.StoreConfig{
		ID:                    id,
		Code:                  "QABUM_EC",
		CountryCode:           "EC",
		CurrencyCode:          "USD",
		TakeRateCap:           0.0300,
		DefaultMdr:            0.0220,
		DefaultQabumMarginCap: 0.0150,
		DefaultRepaymentRate:  0.0080,
	}
}

// lowRiskSnapshot returns a snapshot satisfying every LOW band criterion
func lowRiskSnapshot() *entities.MerchantSalesSnapshot {
	return &entities.MerchantSalesSnapshot{
		MerchantID:             TestMerchantID,
		StoreID:                TestStoreID,
		AverageMonthlyVolume:   30000,
		MonthlyVolatilityIndex: 0.15,
		MonthsActive:           24,
		RecentActiveMonths:     3,
		HasRecentDrop:          false,
		FailedSplitCount:       0,
		Sector:                 entities.SectorHighSensitivity,
	}
}

// highRiskSnapshot returns a low-volume, short-history snapshot
func highRiskSnapshot() *entities.MerchantSalesSnapshot {
	return &entities.MerchantSalesSnapshot{
		MerchantID:             "merch-003",
		StoreID:                TestStoreID,
		AverageMonthlyVolume:   1500,
		MonthlyVolatilityIndex: 0.70,
		MonthsActive:           3,
		RecentActiveMonths:     3,
		HasRecentDrop:          true,
		FailedSplitCount:       3,
		Sector:                 entities.SectorHighMarginService,
	}
}

// validConfigDocument returns an untyped document that passes validation
func validConfigDocument() map[string]any {
	return map[string]any{
		"version":   1,
		"updatedAt": "2024-06-01T00:00:00Z",
		"global": map[string]any{
			"defaultMdr":                          0.03,
			"defaultQabumMarginCap":               0.05,
			"defaultRepaymentRate":                0.10,
			"maxAdvanceMultipleOfAvgMonthlySales": 1.0,
			"minPaybackMonths":                    1,
			"maxPaybackMonths":                    12,
			"minPlatformAgeMonths":                3,
			"minActiveMonthsLastN":                3,
		},
		"sectorCaps": map[string]any{
			"HIGH_SENSITIVITY":    map[string]any{"ethicalCap": 0.022},
			"STANDARD_PYME":       map[string]any{"ethicalCap": 0.027},
			"HIGH_MARGIN_SERVICE": map[string]any{"ethicalCap": 0.030},
		},
	}
}
