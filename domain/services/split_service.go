package services

import (
	"context"
	"fmt"

	"qabum/domain/entities"
	"qabum/domain/interfaces"
	"qabum/domain/utils"

	log "github.com/sirupsen/logrus"
)

type splitService struct {
	storeRepo        interfaces.StoreRepository
	snapshotProvider interfaces.MerchantSnapshotProvider
	configService    interfaces.ConfigService
}

// NewSplitService creates a new split allocator service
func NewSplitService(storeRepo interfaces.StoreRepository, snapshotProvider interfaces.MerchantSnapshotProvider, configService interfaces.ConfigService) interfaces.SplitService {
	return &splitService{
		storeRepo:        storeRepo,
		snapshotProvider: snapshotProvider,
		configService:    configService,
	}
}

func (s *splitService) CalculateSplit(ctx context.Context, input interfaces.CalculateSplitInput) (*entities.TransactionSplitResult, error) {
	cfg, err := s.configService.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve risk config: %w", err)
	}
	return s.CalculateSplitWithConfig(ctx, input, cfg)
}

func (s *splitService) CalculateSplitWithConfig(ctx context.Context, input interfaces.CalculateSplitInput, cfg *entities.RiskConfig) (*entities.TransactionSplitResult, error) {
	if input.TransactionAmount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive")
	}

	// The engine never runs against a missing store
	if _, err := s.storeRepo.GetByID(ctx, input.StoreID); err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotProvider.Get(ctx, input.StoreID, input.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant snapshot: %w", err)
	}

	ethicalCap := cfg.EthicalCapFor(snapshot.Sector)

	// Priority 1: bank MDR, never altered
	mdrRate := cfg.Global.DefaultMdr

	// Priority 2: platform margin, fixed by config up to the internal
	// ceiling, never altered by cap logic
	marginRate := cfg.EffectiveMarginRate()

	// A configuration where the fixed components alone blow the cap cannot
	// be satisfied by any repayment reduction
	if mdrRate+marginRate > ethicalCap {
		log.WithFields(log.Fields{
			"storeId":    input.StoreID,
			"merchantId": input.MerchantID,
			"mdrRate":    mdrRate,
			"marginRate": marginRate,
			"ethicalCap": ethicalCap,
		}).Error("MDR plus margin exceed the ethical cap")
		return nil, entities.ErrInconsistentRateConfig
	}

	// Priority 3: repayment, the only component ever reduced
	originalRepaymentRate := 0.0
	if input.HasActiveAdvance {
		originalRepaymentRate = cfg.Global.DefaultRepaymentRate
	}

	totalBeforeCap := mdrRate + marginRate + originalRepaymentRate
	capExceeded := totalBeforeCap > ethicalCap

	finalRepaymentRate := originalRepaymentRate
	if capExceeded {
		maxRepaymentRate := ethicalCap - (mdrRate + marginRate)
		if maxRepaymentRate < 0 {
			maxRepaymentRate = 0
		}
		finalRepaymentRate = maxRepaymentRate
	}

	gross := input.TransactionAmount
	mdrAmount := utils.RoundCurrency(gross * mdrRate)
	marginAmount := utils.RoundCurrency(gross * marginRate)
	repaymentAmount := utils.RoundCurrency(gross * finalRepaymentRate)

	totalDeductions := mdrAmount + marginAmount + repaymentAmount
	merchantNetAmount := utils.RoundCurrency(gross - totalDeductions)

	return &entities.TransactionSplitResult{
		GrossAmount:        gross,
		MdrAmount:          mdrAmount,
		QabumMarginAmount:  marginAmount,
		RepaymentAmount:    repaymentAmount,
		MerchantNetAmount:  merchantNetAmount,
		EffectiveTakeRate:  totalDeductions / gross,
		CapExceeded:        capExceeded,
		FinalRepaymentRate: finalRepaymentRate,
	}, nil
}
