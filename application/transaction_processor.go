package application

import (
	"context"
	"fmt"

	"qabum/domain/entities"
	"qabum/domain/events"
	"qabum/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// TransactionProcessor runs the end-to-end split flow for one transaction:
// resolve the merchant's advance status, compute the split under a single
// configuration version, persist the audit record and announce the result.
type TransactionProcessor struct {
	snapshotProvider interfaces.MerchantSnapshotProvider
	splitService     interfaces.SplitService
	configService    interfaces.ConfigService
	txnRepo          interfaces.ProcessedTransactionRepository
	eventPublisher   interfaces.EventPublisher
}

// NewTransactionProcessor creates a new transaction processor
func NewTransactionProcessor(
	snapshotProvider interfaces.MerchantSnapshotProvider,
	splitService interfaces.SplitService,
	configService interfaces.ConfigService,
	txnRepo interfaces.ProcessedTransactionRepository,
	eventPublisher interfaces.EventPublisher,
) *TransactionProcessor {
	return &TransactionProcessor{
		snapshotProvider: snapshotProvider,
		splitService:     splitService,
		configService:    configService,
		txnRepo:          txnRepo,
		eventPublisher:   eventPublisher,
	}
}

// ProcessTransaction computes and records the split for a transaction.
// The persisted record and the returned result come from the same
// configuration version even if a concurrent update lands mid-flight.
func (p *TransactionProcessor) ProcessTransaction(ctx context.Context, storeID, merchantID string, amount float64) (*entities.TransactionSplitResult, error) {
	cfg, err := p.configService.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load risk config: %w", err)
	}

	snapshot, err := p.snapshotProvider.Get(ctx, storeID, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant snapshot: %w", err)
	}

	result, err := p.splitService.CalculateSplitWithConfig(ctx, interfaces.CalculateSplitInput{
		StoreID:           storeID,
		MerchantID:        merchantID,
		TransactionAmount: amount,
		HasActiveAdvance:  snapshot.HasActiveAdvance,
	}, cfg)
	if err != nil {
		return nil, err
	}

	record := &entities.ProcessedTransaction{
		StoreID:            storeID,
		MerchantID:         merchantID,
		GrossAmount:        result.GrossAmount,
		MdrAmount:          result.MdrAmount,
		QabumMarginAmount:  result.QabumMarginAmount,
		RepaymentAmount:    result.RepaymentAmount,
		MerchantNetAmount:  result.MerchantNetAmount,
		EffectiveTakeRate:  result.EffectiveTakeRate,
		CapExceeded:        result.CapExceeded,
		FinalRepaymentRate: result.FinalRepaymentRate,
		ConfigVersionUsed:  cfg.Version,
	}
	if err := p.txnRepo.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record processed transaction: %w", err)
	}

	if err := p.eventPublisher.Publish(events.SplitComputedEvent{
		StoreID:           storeID,
		MerchantID:        merchantID,
		GrossAmount:       result.GrossAmount,
		MerchantNetAmount: result.MerchantNetAmount,
		EffectiveTakeRate: result.EffectiveTakeRate,
		CapExceeded:       result.CapExceeded,
		ConfigVersionUsed: cfg.Version,
	}); err != nil {
		log.WithFields(log.Fields{
			"storeId":    storeID,
			"merchantId": merchantID,
			"error":      err,
		}).Warn("Failed to publish split computed event")
	}

	log.WithFields(log.Fields{
		"storeId":       storeID,
		"merchantId":    merchantID,
		"gross":         result.GrossAmount,
		"net":           result.MerchantNetAmount,
		"capExceeded":   result.CapExceeded,
		"configVersion": cfg.Version,
	}).Info("Processed transaction split")

	return result, nil
}

// GetMerchantHistory returns recent processed transactions for a merchant
func (p *TransactionProcessor) GetMerchantHistory(ctx context.Context, storeID, merchantID string, limit int) ([]*entities.ProcessedTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return p.txnRepo.GetByMerchant(ctx, storeID, merchantID, limit)
}
