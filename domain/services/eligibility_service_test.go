package services

import (
	"context"
	"testing"

	"qabum/domain/entities"
	"qabum/domain/interfaces"
	"qabum/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEligibilityService(snapshot *entities.MerchantSalesSnapshot, cfg *entities.RiskConfig) interfaces.EligibilityService {
	mockSnapshots := new(testhelpers.MockSnapshotProvider)
	mockConfig := new(testhelpers.MockConfigService)

	mockSnapshots.On("Get", mock.Anything, snapshot.StoreID, snapshot.MerchantID).Return(snapshot, nil)
	mockConfig.On("GetConfig", mock.Anything).Return(cfg, nil)

	riskService := NewRiskService(mockSnapshots, mockConfig)
	return NewEligibilityService(mockSnapshots, riskService, mockConfig)
}

func TestEligibilityService_LowBand_ApprovesRequested(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := lowRiskSnapshot()
	service := setupEligibilityService(snapshot, cfg)

	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 25000,
	})

	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, entities.RiskBandLow, result.RiskProfile.RiskBand)
	assert.Equal(t, 30000.0, result.RiskProfile.MaxAdvanceLimit)
	assert.Equal(t, 25000.0, result.ApprovedAmount)
	assert.Equal(t, entities.SectorHighSensitivity, result.MerchantSectorUsed)
	assert.Equal(t, 0.022, result.EthicalCapUsed)
	assert.Equal(t, cfg.Version, result.RiskConfigVersionUsed)
	assert.Equal(t, cfg.UpdatedAt, result.RiskConfigUpdatedAtUsed)
}

func TestEligibilityService_LowBand_CapsAtLimit(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := lowRiskSnapshot()
	service := setupEligibilityService(snapshot, cfg)

	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 45000,
	})

	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, 30000.0, result.ApprovedAmount)
	assert.Contains(t, result.DecisionReason, "capped at limit")
}

func TestEligibilityService_GateFailure_ForcesZeroLimit(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080) // minPlatformAgeMonths 3
	snapshot := lowRiskSnapshot()
	snapshot.MonthsActive = 2

	service := setupEligibilityService(snapshot, cfg)

	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 1000,
	})

	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, 0.0, result.ApprovedAmount)
	assert.Equal(t, 0.0, result.RiskProfile.MaxAdvanceLimit)
	assert.Contains(t, result.DecisionReason, "2 months on platform")
	assert.Contains(t, result.DecisionReason, "at least 3")
	assert.Nil(t, result.EstimatedPaybackMonths)
	// Audit fields are attached on the gate-failure path too
	assert.Equal(t, cfg.Version, result.RiskConfigVersionUsed)
	assert.Equal(t, 0.022, result.EthicalCapUsed)
}

func TestEligibilityService_MediumBand_AllOrNothing(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := &entities.MerchantSalesSnapshot{
		MerchantID:             "merch-002",
		StoreID:                TestStoreID,
		AverageMonthlyVolume:   5000,
		MonthlyVolatilityIndex: 0.45,
		MonthsActive:           8,
		RecentActiveMonths:     3,
		FailedSplitCount:       1,
		Sector:                 entities.SectorStandardPyme,
	}

	service := setupEligibilityService(snapshot, cfg)

	// Within the 3500 limit: approved in full
	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 3000,
	})
	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, 3000.0, result.ApprovedAmount)

	// Above the limit: rejected entirely, not partially approved
	result, err = service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 4000,
	})
	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, 0.0, result.ApprovedAmount)
	assert.Contains(t, result.DecisionReason, "exceeds limit")
}

func TestEligibilityService_HighBand_StrictCap(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := highRiskSnapshot()
	service := setupEligibilityService(snapshot, cfg)

	// limit = floor(1500*0.4) = 600, high risk cap = 300; 700 > 300
	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 700,
	})

	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, 0.0, result.ApprovedAmount)
	assert.Equal(t, entities.RiskBandHigh, result.RiskProfile.RiskBand)
	assert.Equal(t, 600.0, result.RiskProfile.MaxAdvanceLimit)
	assert.Contains(t, result.DecisionReason, "High Risk Cap")
}

func TestEligibilityService_HighBand_ApprovesWithinStrictCap(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := highRiskSnapshot()
	service := setupEligibilityService(snapshot, cfg)

	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 250,
	})

	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, 250.0, result.ApprovedAmount)
}

func TestEligibilityService_PaybackEstimate(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := lowRiskSnapshot()
	service := setupEligibilityService(snapshot, cfg)

	result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
		StoreID:         TestStoreID,
		MerchantID:      snapshot.MerchantID,
		RequestedAmount: 25000,
	})

	require.NoError(t, err)
	require.NotNil(t, result.EstimatedPaybackMonths)
	// rate = LOW band 0.010 clamped to 0.022 - (0.015+0.006) = 0.001
	// 25000 / (30000 * 0.001) = 833.33...
	assert.InDelta(t, 25000.0/(30000*0.001), *result.EstimatedPaybackMonths, 1e-6)
}

func TestEligibilityService_ApprovedNeverExceedsRequested(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(0.0150, 0.0060, 0.0080)
	snapshot := lowRiskSnapshot()
	service := setupEligibilityService(snapshot, cfg)

	for _, requested := range []float64{1, 600.5, 29999.99, 30000, 100000} {
		result, err := service.EvaluateAdvanceRequest(ctx, interfaces.EvaluateAdvanceInput{
			StoreID:         TestStoreID,
			MerchantID:      snapshot.MerchantID,
			RequestedAmount: requested,
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, result.ApprovedAmount, requested)
		assert.LessOrEqual(t, result.ApprovedAmount, result.RiskProfile.MaxAdvanceLimit)
	}
}
