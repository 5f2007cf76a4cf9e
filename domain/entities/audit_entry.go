package entities

import "time"

// ConfigAuditEntry is one append-only record of a configuration change.
// Previous is nil for the first write.
type ConfigAuditEntry struct {
	ID        int64       `db:"id"`
	Ts        time.Time   `json:"ts" db:"ts"`
	Actor     string      `json:"actor" db:"actor"`
	Reason    string      `json:"reason" db:"reason"`
	UserAgent string      `json:"userAgent,omitempty" db:"user_agent"`
	IP        string      `json:"ip,omitempty" db:"ip"`
	Previous  *RiskConfig `json:"previous" db:"previous"`
	Next      *RiskConfig `json:"next" db:"next"`
}

// UpdateMeta carries the audit metadata for a configuration write
type UpdateMeta struct {
	Actor     string
	Reason    string
	UserAgent string
	IP        string
}
