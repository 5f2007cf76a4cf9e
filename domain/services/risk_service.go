package services

import (
	"context"
	"fmt"

	"qabum/domain/entities"
	"qabum/domain/interfaces"
	"qabum/domain/utils"
)

// Band classification thresholds. Evaluated first-match in the order
// LOW, MEDIUM, HIGH; no other ordering is valid.
const (
	lowRiskMinVolume        = 8000.0
	lowRiskMaxVolatility    = 0.3
	lowRiskMinMonthsActive  = 12
	mediumRiskMinVolume     = 3000.0
	mediumRiskMinMonths     = 6
	mediumVolatilityWarning = 0.4
	highVolatilityCritical  = 0.6
	highFailedSplitCount    = 3

	lowLimitMultiplier    = 1.0
	mediumLimitMultiplier = 0.7
	highLimitMultiplier   = 0.4

	lowRepaymentRate    = 0.010
	mediumRepaymentRate = 0.008

	lowLossProvision    = 0.01
	mediumLossProvision = 0.03
	highLossProvision   = 0.06
)

type riskService struct {
	snapshotProvider interfaces.MerchantSnapshotProvider
	configService    interfaces.ConfigService
}

// NewRiskService creates a new risk profiler service
func NewRiskService(snapshotProvider interfaces.MerchantSnapshotProvider, configService interfaces.ConfigService) interfaces.RiskService {
	return &riskService{
		snapshotProvider: snapshotProvider,
		configService:    configService,
	}
}

func (s *riskService) GetMerchantRiskProfile(ctx context.Context, storeID, merchantID string) (*entities.MerchantRiskProfile, error) {
	snapshot, err := s.snapshotProvider.Get(ctx, storeID, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant snapshot: %w", err)
	}

	cfg, err := s.configService.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve risk config: %w", err)
	}

	return s.DeriveRiskProfile(snapshot, cfg), nil
}

func (s *riskService) DeriveRiskProfile(snapshot *entities.MerchantSalesSnapshot, cfg *entities.RiskConfig) *entities.MerchantRiskProfile {
	band := entities.RiskBandHigh
	limitMultiplier := highLimitMultiplier
	repaymentRate := cfg.Global.DefaultRepaymentRate
	lossProvisionRate := highLossProvision
	reasonCodes := []string{}

	switch {
	case snapshot.AverageMonthlyVolume >= lowRiskMinVolume &&
		snapshot.MonthlyVolatilityIndex <= lowRiskMaxVolatility &&
		snapshot.MonthsActive >= lowRiskMinMonthsActive &&
		!snapshot.HasRecentDrop &&
		snapshot.FailedSplitCount == 0:

		band = entities.RiskBandLow
		limitMultiplier = lowLimitMultiplier
		repaymentRate = lowRepaymentRate
		lossProvisionRate = lowLossProvision
		reasonCodes = append(reasonCodes, entities.ReasonLowRiskProfile)

	case snapshot.AverageMonthlyVolume >= mediumRiskMinVolume &&
		snapshot.MonthsActive >= mediumRiskMinMonths:

		band = entities.RiskBandMedium
		limitMultiplier = mediumLimitMultiplier
		repaymentRate = mediumRepaymentRate
		lossProvisionRate = mediumLossProvision
		if snapshot.MonthlyVolatilityIndex > mediumVolatilityWarning {
			reasonCodes = append(reasonCodes, entities.ReasonHighVolatility)
		}
		if snapshot.MonthsActive < lowRiskMinMonthsActive {
			reasonCodes = append(reasonCodes, entities.ReasonIntermediateHistory)
		}
		if snapshot.FailedSplitCount > 0 {
			reasonCodes = append(reasonCodes, entities.ReasonFailedSplitsLite)
		}

	default:
		if snapshot.AverageMonthlyVolume < mediumRiskMinVolume {
			reasonCodes = append(reasonCodes, entities.ReasonLowVolume)
		}
		if snapshot.MonthsActive < mediumRiskMinMonths {
			reasonCodes = append(reasonCodes, entities.ReasonShortHistory)
		}
		if snapshot.HasRecentDrop {
			reasonCodes = append(reasonCodes, entities.ReasonRecentDrop)
		}
		if snapshot.FailedSplitCount >= highFailedSplitCount {
			reasonCodes = append(reasonCodes, entities.ReasonFailedSplitsHigh)
		}
		if snapshot.MonthlyVolatilityIndex > highVolatilityCritical {
			reasonCodes = append(reasonCodes, entities.ReasonCriticalVolatility)
		}
	}

	// Cap the band multiplier at the configured advance multiple, then
	// floor the limit to an integer currency unit
	maxMultiple := cfg.MaxAdvanceMultipleFor(snapshot.Sector)
	if limitMultiplier > maxMultiple {
		limitMultiplier = maxMultiple
	}
	maxAdvanceLimit := utils.FloorCurrencyUnit(snapshot.AverageMonthlyVolume * limitMultiplier)

	// Clamp the recommended repayment rate against the sector's ethical cap.
	// The clamp can only lower the band's rate, never raise it.
	if snapshot.HasKnownSector() {
		ethicalCap := cfg.EthicalCapFor(snapshot.Sector)
		maxRepayment := ethicalCap - (cfg.Global.DefaultMdr + cfg.EffectiveMarginRate())
		if maxRepayment < 0 {
			maxRepayment = 0
		}
		if repaymentRate > maxRepayment {
			repaymentRate = maxRepayment
		}
	}

	return &entities.MerchantRiskProfile{
		MerchantID:               snapshot.MerchantID,
		StoreID:                  snapshot.StoreID,
		RiskBand:                 band,
		MaxAdvanceLimit:          maxAdvanceLimit,
		RecommendedRepaymentRate: repaymentRate,
		LossProvisionRate:        lossProvisionRate,
		ReasonCodes:              reasonCodes,
	}
}
