package repository

import (
	"context"
	"testing"

	"qabum/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessedTransactionRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProcessedTransactionRepository(testDB.DB)
	ctx := context.Background()

	txn := testutil.CreateTestTransaction("ec-qabum-001", "merch-001", 100.00)
	require.NoError(t, repo.Record(ctx, txn))
	assert.NotZero(t, txn.ID)
	assert.False(t, txn.CreatedAt.IsZero())
}

func TestProcessedTransactionRepository_GetByMerchant(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProcessedTransactionRepository(testDB.DB)
	ctx := context.Background()

	for _, gross := range []float64{100, 250, 75.50} {
		require.NoError(t, repo.Record(ctx, testutil.CreateTestTransaction("ec-qabum-001", "merch-001", gross)))
	}
	require.NoError(t, repo.Record(ctx, testutil.CreateTestTransaction("ec-qabum-001", "merch-002", 500)))

	t.Run("filters by merchant", func(t *testing.T) {
		txns, err := repo.GetByMerchant(ctx, "ec-qabum-001", "merch-001", 10)
		require.NoError(t, err)
		require.Len(t, txns, 3)
		for _, txn := range txns {
			assert.Equal(t, "merch-001", txn.MerchantID)
		}
	})

	t.Run("newest first with limit", func(t *testing.T) {
		txns, err := repo.GetByMerchant(ctx, "ec-qabum-001", "merch-001", 1)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.InDelta(t, 75.50, txns[0].GrossAmount, 1e-9)
	})

	t.Run("unknown merchant returns empty", func(t *testing.T) {
		txns, err := repo.GetByMerchant(ctx, "ec-qabum-001", "merch-zzz", 10)
		require.NoError(t, err)
		assert.Empty(t, txns)
	})
}
