package repository

import (
	"context"
	"fmt"

	"qabum/database"
	"qabum/domain/entities"
	"qabum/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// StoreRepository implements the StoreRepository interface against Postgres
type StoreRepository struct {
	q Queryable
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *database.DB) *StoreRepository {
	return &StoreRepository{q: db.Pool}
}

// NewStoreRepositoryWithTx creates a new store repository with a transaction
func NewStoreRepositoryWithTx(tx Queryable) interfaces.StoreRepository {
	return &StoreRepository{q: tx}
}

func (r *StoreRepository) GetByID(ctx context.Context, storeID string) (*entities.StoreConfig, error) {
	query := `
		SELECT id, code, country_code, currency_code, take_rate_cap,
		       default_mdr, default_qabum_margin_cap, default_repayment_rate
		FROM stores
		WHERE id = $1
	`

	var store entities.StoreConfig
	err := r.q.QueryRow(ctx, query, storeID).Scan(
		&store.ID,
		&store.Code,
		&store.CountryCode,
		&store.CurrencyCode,
		&store.TakeRateCap,
		&store.DefaultMdr,
		&store.DefaultQabumMarginCap,
		&store.DefaultRepaymentRate,
	)
	if err == pgx.ErrNoRows {
		return nil, entities.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store %s: %w", storeID, err)
	}

	return &store, nil
}

func (r *StoreRepository) GetAll(ctx context.Context) ([]*entities.StoreConfig, error) {
	query := `
		SELECT id, code, country_code, currency_code, take_rate_cap,
		       default_mdr, default_qabum_margin_cap, default_repayment_rate
		FROM stores
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []*entities.StoreConfig
	for rows.Next() {
		var store entities.StoreConfig
		if err := rows.Scan(
			&store.ID,
			&store.Code,
			&store.CountryCode,
			&store.CurrencyCode,
			&store.TakeRateCap,
			&store.DefaultMdr,
			&store.DefaultQabumMarginCap,
			&store.DefaultRepaymentRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, &store)
	}

	return stores, rows.Err()
}

// Upsert writes or replaces a store configuration. Used by seeding only;
// stores are reference data at runtime.
func (r *StoreRepository) Upsert(ctx context.Context, store *entities.StoreConfig) error {
	query := `
		INSERT INTO stores (
			id, code, country_code, currency_code, take_rate_cap,
			default_mdr, default_qabum_margin_cap, default_repayment_rate
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			country_code = EXCLUDED.country_code,
			currency_code = EXCLUDED.currency_code,
			take_rate_cap = EXCLUDED.take_rate_cap,
			default_mdr = EXCLUDED.default_mdr,
			default_qabum_margin_cap = EXCLUDED.default_qabum_margin_cap,
			default_repayment_rate = EXCLUDED.default_repayment_rate
	`

	_, err := r.q.Exec(ctx, query,
		store.ID,
		store.Code,
		store.CountryCode,
		store.CurrencyCode,
		store.TakeRateCap,
		store.DefaultMdr,
		store.DefaultQabumMarginCap,
		store.DefaultRepaymentRate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert store %s: %w", store.ID, err)
	}

	return nil
}
