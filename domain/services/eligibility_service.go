package services

import (
	"context"
	"fmt"

	"qabum/domain/entities"
	"qabum/domain/interfaces"
	"qabum/domain/utils"
)

// highRiskCapFactor is the fraction of the advance limit available to HIGH
// band merchants
const highRiskCapFactor = 0.5

type eligibilityService struct {
	snapshotProvider interfaces.MerchantSnapshotProvider
	riskService      interfaces.RiskService
	configService    interfaces.ConfigService
}

// NewEligibilityService creates a new advance eligibility evaluator
func NewEligibilityService(snapshotProvider interfaces.MerchantSnapshotProvider, riskService interfaces.RiskService, configService interfaces.ConfigService) interfaces.EligibilityService {
	return &eligibilityService{
		snapshotProvider: snapshotProvider,
		riskService:      riskService,
		configService:    configService,
	}
}

func (s *eligibilityService) EvaluateAdvanceRequest(ctx context.Context, input interfaces.EvaluateAdvanceInput) (*entities.AdvanceEligibilityResult, error) {
	snapshot, err := s.snapshotProvider.Get(ctx, input.StoreID, input.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant snapshot: %w", err)
	}

	cfg, err := s.configService.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve risk config: %w", err)
	}

	profile := s.riskService.DeriveRiskProfile(snapshot, cfg)

	result := &entities.AdvanceEligibilityResult{
		MerchantID:              input.MerchantID,
		StoreID:                 input.StoreID,
		RequestedAmount:         input.RequestedAmount,
		RiskProfile:             profile,
		MerchantSectorUsed:      snapshot.Sector,
		EthicalCapUsed:          cfg.EthicalCapFor(snapshot.Sector),
		RiskConfigVersionUsed:   cfg.Version,
		RiskConfigUpdatedAtUsed: cfg.UpdatedAt,
	}

	// Minimum-activity gates
	minAge := cfg.Global.MinPlatformAgeMonths
	minActive := cfg.Global.MinActiveMonthsLastN
	if snapshot.MonthsActive < minAge || snapshot.RecentActiveMonths < minActive {
		profile.MaxAdvanceLimit = 0
		result.IsEligible = false
		result.ApprovedAmount = 0
		result.DecisionReason = fmt.Sprintf(
			"NOT ELIGIBLE: account has %d months on platform and %d recent active months; requires at least %d and %d.",
			snapshot.MonthsActive, snapshot.RecentActiveMonths, minAge, minActive)
		return result, nil
	}

	var approvedAmount float64
	switch profile.RiskBand {
	case entities.RiskBandLow:
		// Always eligible, capped at the limit
		result.IsEligible = true
		if input.RequestedAmount <= profile.MaxAdvanceLimit {
			approvedAmount = input.RequestedAmount
			result.DecisionReason = fmt.Sprintf("Requested: %s. Limit: %s. Approved: full requested amount.",
				formatUSD(input.RequestedAmount), formatUSD(profile.MaxAdvanceLimit))
		} else {
			approvedAmount = profile.MaxAdvanceLimit
			result.DecisionReason = fmt.Sprintf("Requested: %s. Limit: %s. Approved: capped at limit.",
				formatUSD(input.RequestedAmount), formatUSD(profile.MaxAdvanceLimit))
		}

	case entities.RiskBandMedium:
		if input.RequestedAmount <= profile.MaxAdvanceLimit {
			result.IsEligible = true
			approvedAmount = input.RequestedAmount
			result.DecisionReason = fmt.Sprintf("Requested: %s. Limit: %s. Approved: full requested amount.",
				formatUSD(input.RequestedAmount), formatUSD(profile.MaxAdvanceLimit))
		} else {
			result.IsEligible = false
			result.DecisionReason = fmt.Sprintf("Requested: %s. Limit: %s. Approved: NO (exceeds limit).",
				formatUSD(input.RequestedAmount), formatUSD(profile.MaxAdvanceLimit))
		}

	default: // HIGH
		highRiskCap := profile.MaxAdvanceLimit * highRiskCapFactor
		if input.RequestedAmount <= highRiskCap {
			result.IsEligible = true
			approvedAmount = input.RequestedAmount
			result.DecisionReason = fmt.Sprintf("Requested: %s. Limit: %s (High Risk Cap). Approved: full requested amount.",
				formatUSD(input.RequestedAmount), formatUSD(highRiskCap))
		} else {
			result.IsEligible = false
			result.DecisionReason = fmt.Sprintf("Requested: %s. Limit: %s (High Risk Cap). Approved: NO (exceeds strict cap).",
				formatUSD(input.RequestedAmount), formatUSD(highRiskCap))
		}
	}

	if result.IsEligible {
		result.ApprovedAmount = utils.FloorCurrencyUnit(approvedAmount)
	}

	// Payback estimate assumes stable sales; defined only when the
	// approved amount, monthly volume and repayment rate are all positive
	if result.ApprovedAmount > 0 && snapshot.AverageMonthlyVolume > 0 && profile.RecommendedRepaymentRate > 0 {
		monthlyRepayment := snapshot.AverageMonthlyVolume * profile.RecommendedRepaymentRate
		months := result.ApprovedAmount / monthlyRepayment
		result.EstimatedPaybackMonths = &months
	}

	return result, nil
}

// formatUSD renders an amount the way decision reasons expose it
func formatUSD(amount float64) string {
	return fmt.Sprintf("USD %.2f", amount)
}
