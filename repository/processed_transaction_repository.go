package repository

import (
	"context"
	"fmt"

	"qabum/database"
	"qabum/domain/entities"
	"qabum/domain/interfaces"
)

// ProcessedTransactionRepository implements the ProcessedTransactionRepository
// interface against Postgres
type ProcessedTransactionRepository struct {
	q Queryable
}

// NewProcessedTransactionRepository creates a new processed transaction repository
func NewProcessedTransactionRepository(db *database.DB) interfaces.ProcessedTransactionRepository {
	return &ProcessedTransactionRepository{q: db.Pool}
}

// NewProcessedTransactionRepositoryWithTx creates a new processed transaction repository with a transaction
func NewProcessedTransactionRepositoryWithTx(tx Queryable) interfaces.ProcessedTransactionRepository {
	return &ProcessedTransactionRepository{q: tx}
}

func (r *ProcessedTransactionRepository) Record(ctx context.Context, txn *entities.ProcessedTransaction) error {
	query := `
		INSERT INTO processed_transactions (
			store_id, merchant_id, gross_amount, mdr_amount, qabum_margin_amount,
			repayment_amount, merchant_net_amount, effective_take_rate,
			cap_exceeded, final_repayment_rate, config_version_used
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		txn.StoreID,
		txn.MerchantID,
		txn.GrossAmount,
		txn.MdrAmount,
		txn.QabumMarginAmount,
		txn.RepaymentAmount,
		txn.MerchantNetAmount,
		txn.EffectiveTakeRate,
		txn.CapExceeded,
		txn.FinalRepaymentRate,
		txn.ConfigVersionUsed,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record processed transaction: %w", err)
	}

	return nil
}

func (r *ProcessedTransactionRepository) GetByMerchant(ctx context.Context, storeID, merchantID string, limit int) ([]*entities.ProcessedTransaction, error) {
	query := `
		SELECT id, store_id, merchant_id, gross_amount, mdr_amount, qabum_margin_amount,
		       repayment_amount, merchant_net_amount, effective_take_rate,
		       cap_exceeded, final_repayment_rate, config_version_used, created_at
		FROM processed_transactions
		WHERE store_id = $1 AND merchant_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, storeID, merchantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query processed transactions: %w", err)
	}
	defer rows.Close()

	var txns []*entities.ProcessedTransaction
	for rows.Next() {
		var txn entities.ProcessedTransaction
		if err := rows.Scan(
			&txn.ID,
			&txn.StoreID,
			&txn.MerchantID,
			&txn.GrossAmount,
			&txn.MdrAmount,
			&txn.QabumMarginAmount,
			&txn.RepaymentAmount,
			&txn.MerchantNetAmount,
			&txn.EffectiveTakeRate,
			&txn.CapExceeded,
			&txn.FinalRepaymentRate,
			&txn.ConfigVersionUsed,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan processed transaction: %w", err)
		}
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
