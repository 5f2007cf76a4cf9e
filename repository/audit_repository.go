package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"qabum/database"
	"qabum/domain/entities"
	"qabum/domain/interfaces"
)

// ConfigAuditRepository implements the ConfigAuditRepository interface against
// Postgres. The table is append-only.
type ConfigAuditRepository struct {
	q Queryable
}

// NewConfigAuditRepository creates a new config audit repository
func NewConfigAuditRepository(db *database.DB) interfaces.ConfigAuditRepository {
	return &ConfigAuditRepository{q: db.Pool}
}

// NewConfigAuditRepositoryWithTx creates a new config audit repository with a transaction
func NewConfigAuditRepositoryWithTx(tx Queryable) interfaces.ConfigAuditRepository {
	return &ConfigAuditRepository{q: tx}
}

func (r *ConfigAuditRepository) Append(ctx context.Context, entry *entities.ConfigAuditEntry) error {
	var previousJSON []byte
	if entry.Previous != nil {
		var err error
		previousJSON, err = json.Marshal(entry.Previous)
		if err != nil {
			return fmt.Errorf("failed to encode previous config: %w", err)
		}
	}
	nextJSON, err := json.Marshal(entry.Next)
	if err != nil {
		return fmt.Errorf("failed to encode next config: %w", err)
	}

	query := `
		INSERT INTO risk_config_audit (ts, actor, reason, user_agent, ip, previous, next)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = r.q.QueryRow(ctx, query,
		entry.Ts,
		entry.Actor,
		entry.Reason,
		nullableString(entry.UserAgent),
		nullableString(entry.IP),
		previousJSON,
		nextJSON,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

func (r *ConfigAuditRepository) GetRecent(ctx context.Context, limit int) ([]*entities.ConfigAuditEntry, error) {
	query := `
		SELECT id, ts, actor, reason, user_agent, ip, previous, next
		FROM risk_config_audit
		ORDER BY ts DESC, id DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.ConfigAuditEntry
	for rows.Next() {
		var entry entities.ConfigAuditEntry
		var userAgent, ip *string
		var previousJSON, nextJSON []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.Ts,
			&entry.Actor,
			&entry.Reason,
			&userAgent,
			&ip,
			&previousJSON,
			&nextJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if userAgent != nil {
			entry.UserAgent = *userAgent
		}
		if ip != nil {
			entry.IP = *ip
		}
		if previousJSON != nil {
			entry.Previous = &entities.RiskConfig{}
			if err := json.Unmarshal(previousJSON, entry.Previous); err != nil {
				return nil, fmt.Errorf("failed to decode previous config: %w", err)
			}
		}
		entry.Next = &entities.RiskConfig{}
		if err := json.Unmarshal(nextJSON, entry.Next); err != nil {
			return nil, fmt.Errorf("failed to decode next config: %w", err)
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
