package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"qabum/database"
	"qabum/domain/entities"
	"qabum/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// RiskConfigRepository implements the RiskConfigRepository interface against
// Postgres. The configuration lives in a single row; optimistic concurrency
// runs on the stored version number.
type RiskConfigRepository struct {
	q Queryable
}

// NewRiskConfigRepository creates a new risk config repository
func NewRiskConfigRepository(db *database.DB) interfaces.RiskConfigRepository {
	return &RiskConfigRepository{q: db.Pool}
}

// NewRiskConfigRepositoryWithTx creates a new risk config repository with a transaction
func NewRiskConfigRepositoryWithTx(tx Queryable) interfaces.RiskConfigRepository {
	return &RiskConfigRepository{q: tx}
}

func (r *RiskConfigRepository) Get(ctx context.Context) (*entities.RiskConfig, error) {
	query := `
		SELECT version, updated_at, global, sector_caps
		FROM risk_config
		WHERE id = 1
	`

	var config entities.RiskConfig
	var globalJSON, sectorCapsJSON []byte
	err := r.q.QueryRow(ctx, query).Scan(
		&config.Version,
		&config.UpdatedAt,
		&globalJSON,
		&sectorCapsJSON,
	)
	if err == pgx.ErrNoRows {
		return nil, entities.ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get risk config: %w", err)
	}

	if err := json.Unmarshal(globalJSON, &config.Global); err != nil {
		return nil, fmt.Errorf("failed to decode global params: %w", err)
	}
	if err := json.Unmarshal(sectorCapsJSON, &config.SectorCaps); err != nil {
		return nil, fmt.Errorf("failed to decode sector caps: %w", err)
	}

	return &config, nil
}

func (r *RiskConfigRepository) Put(ctx context.Context, next *entities.RiskConfig, expectedVersion int) error {
	globalJSON, err := json.Marshal(next.Global)
	if err != nil {
		return fmt.Errorf("failed to encode global params: %w", err)
	}
	sectorCapsJSON, err := json.Marshal(next.SectorCaps)
	if err != nil {
		return fmt.Errorf("failed to encode sector caps: %w", err)
	}

	if expectedVersion == 0 {
		// First write. ON CONFLICT DO NOTHING turns a concurrent insert
		// into a zero-row result rather than a constraint error.
		query := `
			INSERT INTO risk_config (id, version, updated_at, global, sector_caps)
			VALUES (1, $1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`
		tag, err := r.q.Exec(ctx, query, next.Version, next.UpdatedAt, globalJSON, sectorCapsJSON)
		if err != nil {
			return fmt.Errorf("failed to insert risk config: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrConfigVersionConflict
		}
		return nil
	}

	query := `
		UPDATE risk_config
		SET version = $1, updated_at = $2, global = $3, sector_caps = $4
		WHERE id = 1 AND version = $5
	`
	tag, err := r.q.Exec(ctx, query, next.Version, next.UpdatedAt, globalJSON, sectorCapsJSON, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update risk config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrConfigVersionConflict
	}

	return nil
}
