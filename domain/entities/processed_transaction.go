package entities

import "time"

// ProcessedTransaction is the persisted, audit-grade record of a computed split
type ProcessedTransaction struct {
	ID                 int64     `db:"id"`
	StoreID            string    `db:"store_id"`
	MerchantID         string    `db:"merchant_id"`
	GrossAmount        float64   `db:"gross_amount"`
	MdrAmount          float64   `db:"mdr_amount"`
	QabumMarginAmount  float64   `db:"qabum_margin_amount"`
	RepaymentAmount    float64   `db:"repayment_amount"`
	MerchantNetAmount  float64   `db:"merchant_net_amount"`
	EffectiveTakeRate  float64   `db:"effective_take_rate"`
	CapExceeded        bool      `db:"cap_exceeded"`
	FinalRepaymentRate float64   `db:"final_repayment_rate"`
	ConfigVersionUsed  int       `db:"config_version_used"`
	CreatedAt          time.Time `db:"created_at"`
}
