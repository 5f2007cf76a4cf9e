package entities

// StoreConfig is immutable per-store reference data, looked up by store id.
// The rate fields are legacy; split calculations read the current RiskConfig.
type StoreConfig struct {
	ID                    string  `db:"id"`
	Code                  string  `db:"code"`
	CountryCode           string  `db:"country_code"`
	CurrencyCode          string  `db:"currency_code"`
	TakeRateCap           float64 `db:"take_rate_cap"`
	DefaultMdr            float64 `db:"default_mdr"`
	DefaultQabumMarginCap float64 `db:"default_qabum_margin_cap"`
	DefaultRepaymentRate  float64 `db:"default_repayment_rate"`
}
