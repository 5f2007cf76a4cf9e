package repository

import (
	"context"
	"fmt"

	"qabum/database"
	"qabum/domain/entities"
	"qabum/domain/interfaces"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// MerchantSnapshotRepository implements the MerchantSnapshotProvider interface
// against Postgres
type MerchantSnapshotRepository struct {
	q Queryable
}

// NewMerchantSnapshotRepository creates a new merchant snapshot repository
func NewMerchantSnapshotRepository(db *database.DB) *MerchantSnapshotRepository {
	return &MerchantSnapshotRepository{q: db.Pool}
}

// NewMerchantSnapshotRepositoryWithTx creates a new merchant snapshot repository with a transaction
func NewMerchantSnapshotRepositoryWithTx(tx Queryable) interfaces.MerchantSnapshotProvider {
	return &MerchantSnapshotRepository{q: tx}
}

// Get returns the merchant's snapshot, or the synthetic high-risk default
// when no row exists. Only infrastructure failures surface as errors.
func (r *MerchantSnapshotRepository) Get(ctx context.Context, storeID, merchantID string) (*entities.MerchantSalesSnapshot, error) {
	query := `
		SELECT merchant_id, store_id, average_monthly_volume, monthly_volatility_index,
		       months_active, recent_active_months, has_recent_drop, failed_split_count,
		       sector, merchant_name, onboard_date, has_active_advance
		FROM merchant_snapshots
		WHERE store_id = $1 AND merchant_id = $2
	`

	var snapshot entities.MerchantSalesSnapshot
	var sector, merchantName *string
	err := r.q.QueryRow(ctx, query, storeID, merchantID).Scan(
		&snapshot.MerchantID,
		&snapshot.StoreID,
		&snapshot.AverageMonthlyVolume,
		&snapshot.MonthlyVolatilityIndex,
		&snapshot.MonthsActive,
		&snapshot.RecentActiveMonths,
		&snapshot.HasRecentDrop,
		&snapshot.FailedSplitCount,
		&sector,
		&merchantName,
		&snapshot.OnboardDate,
		&snapshot.HasActiveAdvance,
	)
	if err == pgx.ErrNoRows {
		log.WithFields(log.Fields{
			"storeId":    storeID,
			"merchantId": merchantID,
		}).Debug("No sales snapshot found, using synthetic high-risk default")
		return entities.SyntheticSnapshot(storeID, merchantID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for merchant %s: %w", merchantID, err)
	}

	if sector != nil {
		snapshot.Sector = entities.Sector(*sector)
	}
	if merchantName != nil {
		snapshot.MerchantName = *merchantName
	}

	return &snapshot, nil
}

// Upsert writes or replaces a merchant's snapshot
func (r *MerchantSnapshotRepository) Upsert(ctx context.Context, snapshot *entities.MerchantSalesSnapshot) error {
	query := `
		INSERT INTO merchant_snapshots (
			merchant_id, store_id, average_monthly_volume, monthly_volatility_index,
			months_active, recent_active_months, has_recent_drop, failed_split_count,
			sector, merchant_name, onboard_date, has_active_advance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (store_id, merchant_id) DO UPDATE SET
			average_monthly_volume = EXCLUDED.average_monthly_volume,
			monthly_volatility_index = EXCLUDED.monthly_volatility_index,
			months_active = EXCLUDED.months_active,
			recent_active_months = EXCLUDED.recent_active_months,
			has_recent_drop = EXCLUDED.has_recent_drop,
			failed_split_count = EXCLUDED.failed_split_count,
			sector = EXCLUDED.sector,
			merchant_name = EXCLUDED.merchant_name,
			onboard_date = EXCLUDED.onboard_date,
			has_active_advance = EXCLUDED.has_active_advance
	`

	var sector *string
	if snapshot.Sector != "" {
		s := string(snapshot.Sector)
		sector = &s
	}
	var merchantName *string
	if snapshot.MerchantName != "" {
		merchantName = &snapshot.MerchantName
	}

	_, err := r.q.Exec(ctx, query,
		snapshot.MerchantID,
		snapshot.StoreID,
		snapshot.AverageMonthlyVolume,
		snapshot.MonthlyVolatilityIndex,
		snapshot.MonthsActive,
		snapshot.RecentActiveMonths,
		snapshot.HasRecentDrop,
		snapshot.FailedSplitCount,
		sector,
		merchantName,
		snapshot.OnboardDate,
		snapshot.HasActiveAdvance,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for merchant %s: %w", snapshot.MerchantID, err)
	}

	return nil
}
