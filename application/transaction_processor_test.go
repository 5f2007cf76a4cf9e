package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"qabum/domain/entities"
	"qabum/domain/events"
	"qabum/domain/interfaces"
	"qabum/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type processorFixture struct {
	snapshots *testhelpers.MockSnapshotProvider
	splits    *testhelpers.MockSplitService
	configs   *testhelpers.MockConfigService
	txns      *testhelpers.MockProcessedTransactionRepository
	publisher *testhelpers.MockEventPublisher
	processor *TransactionProcessor
}

func setupProcessor() *processorFixture {
	f := &processorFixture{
		snapshots: new(testhelpers.MockSnapshotProvider),
		splits:    new(testhelpers.MockSplitService),
		configs:   new(testhelpers.MockConfigService),
		txns:      new(testhelpers.MockProcessedTransactionRepository),
		publisher: new(testhelpers.MockEventPublisher),
	}
	f.processor = NewTransactionProcessor(f.snapshots, f.splits, f.configs, f.txns, f.publisher)
	return f
}

func TestTransactionProcessor_ProcessTransaction(t *testing.T) {
	f := setupProcessor()
	ctx := context.Background()

	cfg := entities.DefaultRiskConfig(time.Now())
	cfg.Version = 4

	snapshot := &entities.MerchantSalesSnapshot{
		MerchantID:       "merch-001",
		StoreID:          "ec-qabum-001",
		HasActiveAdvance: true,
	}

	result := &entities.TransactionSplitResult{
		GrossAmount:        100,
		MdrAmount:          2.00,
		QabumMarginAmount:  0.70,
		RepaymentAmount:    0.10,
		MerchantNetAmount:  97.20,
		EffectiveTakeRate:  0.028,
		CapExceeded:        false,
		FinalRepaymentRate: 0.001,
	}

	f.configs.On("GetConfig", ctx).Return(cfg, nil)
	f.snapshots.On("Get", ctx, "ec-qabum-001", "merch-001").Return(snapshot, nil)
	f.splits.On("CalculateSplitWithConfig", ctx, interfaces.CalculateSplitInput{
		StoreID:           "ec-qabum-001",
		MerchantID:        "merch-001",
		TransactionAmount: 100,
		HasActiveAdvance:  true,
	}, cfg).Return(result, nil)
	f.txns.On("Record", ctx, mock.MatchedBy(func(txn *entities.ProcessedTransaction) bool {
		return txn.MerchantID == "merch-001" &&
			txn.GrossAmount == 100 &&
			txn.ConfigVersionUsed == 4
	})).Return(nil)
	f.publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		split, ok := e.(events.SplitComputedEvent)
		return ok && split.ConfigVersionUsed == 4 && split.MerchantNetAmount == 97.20
	})).Return(nil)

	got, err := f.processor.ProcessTransaction(ctx, "ec-qabum-001", "merch-001", 100)
	require.NoError(t, err)
	assert.Equal(t, result, got)

	f.txns.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestTransactionProcessor_SplitErrorSkipsRecording(t *testing.T) {
	f := setupProcessor()
	ctx := context.Background()

	cfg := entities.DefaultRiskConfig(time.Now())
	f.configs.On("GetConfig", ctx).Return(cfg, nil)
	f.snapshots.On("Get", ctx, "ec-qabum-001", "merch-zzz").
		Return(entities.SyntheticSnapshot("ec-qabum-001", "merch-zzz"), nil)
	f.splits.On("CalculateSplitWithConfig", ctx, mock.Anything, cfg).
		Return(nil, entities.ErrInconsistentRateConfig)

	got, err := f.processor.ProcessTransaction(ctx, "ec-qabum-001", "merch-zzz", 100)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, entities.ErrInconsistentRateConfig)

	f.txns.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestTransactionProcessor_PublishFailureIsNonFatal(t *testing.T) {
	f := setupProcessor()
	ctx := context.Background()

	cfg := entities.DefaultRiskConfig(time.Now())
	result := &entities.TransactionSplitResult{GrossAmount: 50, MerchantNetAmount: 48.55}

	f.configs.On("GetConfig", ctx).Return(cfg, nil)
	f.snapshots.On("Get", ctx, "ec-qabum-001", "merch-002").
		Return(&entities.MerchantSalesSnapshot{MerchantID: "merch-002", StoreID: "ec-qabum-001"}, nil)
	f.splits.On("CalculateSplitWithConfig", ctx, mock.Anything, cfg).Return(result, nil)
	f.txns.On("Record", ctx, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything).Return(errors.New("nats down"))

	got, err := f.processor.ProcessTransaction(ctx, "ec-qabum-001", "merch-002", 50)
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestTransactionProcessor_RecordFailureFails(t *testing.T) {
	f := setupProcessor()
	ctx := context.Background()

	cfg := entities.DefaultRiskConfig(time.Now())
	f.configs.On("GetConfig", ctx).Return(cfg, nil)
	f.snapshots.On("Get", ctx, "ec-qabum-001", "merch-001").
		Return(&entities.MerchantSalesSnapshot{}, nil)
	f.splits.On("CalculateSplitWithConfig", ctx, mock.Anything, cfg).
		Return(&entities.TransactionSplitResult{GrossAmount: 10}, nil)
	f.txns.On("Record", ctx, mock.Anything).Return(errors.New("insert failed"))

	got, err := f.processor.ProcessTransaction(ctx, "ec-qabum-001", "merch-001", 10)
	assert.Nil(t, got)
	assert.Error(t, err)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestTransactionProcessor_GetMerchantHistoryDefaultLimit(t *testing.T) {
	f := setupProcessor()
	ctx := context.Background()

	f.txns.On("GetByMerchant", ctx, "ec-qabum-001", "merch-001", 20).
		Return([]*entities.ProcessedTransaction{}, nil)

	_, err := f.processor.GetMerchantHistory(ctx, "ec-qabum-001", "merch-001", 0)
	require.NoError(t, err)
	f.txns.AssertExpectations(t)
}
