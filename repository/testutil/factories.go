package testutil

import (
	"qabum/domain/entities"
)

// CreateTestStore creates a store config with the Ecuador reference values
func CreateTestStore(id string) *entities.StoreConfig {
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

// CreateTestStoreUK creates a store config with the UK reference values
func CreateTestStoreUK(id string) *entities.StoreConfig {
	return &entities.StoreConfig{
		ID:                    id,
		Code:                  "QABUM_UK",
		CountryCode:           "GB",
		CurrencyCode:          "GBP",
		TakeRateCap:           0.0250,
		DefaultMdr:            0.0150,
		DefaultQabumMarginCap: 0.0100,
		DefaultRepaymentRate:  0.0050,
	}
}

// CreateLowRiskSnapshot creates a snapshot satisfying every low-risk criterion
func CreateLowRiskSnapshot(storeID, merchantID string) *entities.MerchantSalesSnapshot {
	return &entities.MerchantSalesSnapshot{
		MerchantID:             merchantID,
		StoreID:                storeID,
		AverageMonthlyVolume:   30000,
		MonthlyVolatilityIndex: 0.15,
		MonthsActive:           24,
		RecentActiveMonths:     3,
		HasRecentDrop:          false,
		FailedSplitCount:       0,
		Sector:                 entities.SectorHighSensitivity,
		MerchantName:           "Panaderia La Espiga",
		HasActiveAdvance:       true,
	}
}

// CreateMediumRiskSnapshot creates a snapshot that lands in the medium band
func CreateMediumRiskSnapshot(storeID, merchantID string) *entities.MerchantSalesSnapshot {
	return &entities.MerchantSalesSnapshot{
		MerchantID:             merchantID,
		StoreID:                storeID,
		AverageMonthlyVolume:   5000,
		MonthlyVolatilityIndex: 0.45,
		MonthsActive:           8,
		RecentActiveMonths:     3,
		HasRecentDrop:          false,
		FailedSplitCount:       1,
		Sector:                 entities.SectorStandardPyme,
		MerchantName:           "Ferreteria Central",
	}
}

// CreateHighRiskSnapshot creates a snapshot that lands in the high band
func CreateHighRiskSnapshot(storeID, merchantID string) *entities.MerchantSalesSnapshot {
	return &entities.MerchantSalesSnapshot{
		MerchantID:             merchantID,
		StoreID:                storeID,
		AverageMonthlyVolume:   1500,
		MonthlyVolatilityIndex: 0.70,
		MonthsActive:           3,
		RecentActiveMonths:     3,
		HasRecentDrop:          true,
		FailedSplitCount:       3,
		Sector:                 entities.SectorHighMarginService,
		MerchantName:           "Estudio Delta",
	}
}

// CreateTestTransaction creates a processed transaction record with plausible split amounts
func CreateTestTransaction(storeID, merchantID string, gross float64) *entities.ProcessedTransaction {
	return &entities.ProcessedTransaction{
		StoreID:            storeID,
		MerchantID:         merchantID,
		GrossAmount:        gross,
		MdrAmount:          gross * 0.022,
		QabumMarginAmount:  gross * 0.007,
		RepaymentAmount:    0,
		MerchantNetAmount:  gross * (1 - 0.029),
		EffectiveTakeRate:  0.029,
		CapExceeded:        false,
		FinalRepaymentRate: 0,
		ConfigVersionUsed:  1,
	}
}
