package entities

// TransactionSplitResult is the derived breakdown of a single transaction
// into processing fee, platform margin and advance repayment, under the
// sector's ethical cap. All amounts are rounded to 2 decimals; the
// effective take rate is computed from the rounded amounts for audit fidelity.
type TransactionSplitResult struct {
	GrossAmount        float64 `json:"grossAmount"`
	MdrAmount          float64 `json:"mdrAmount"`
	QabumMarginAmount  float64 `json:"qabumMarginAmount"`
	RepaymentAmount    float64 `json:"repaymentAmount"`
	MerchantNetAmount  float64 `json:"merchantNetAmount"`
	EffectiveTakeRate  float64 `json:"effectiveTakeRate"`
	CapExceeded        bool    `json:"capExceeded"`
	FinalRepaymentRate float64 `json:"finalRepaymentRate"`
}

// TotalDeductions returns the sum of the three deduction amounts
func (r *TransactionSplitResult) TotalDeductions() float64 {
	return r.MdrAmount + r.QabumMarginAmount + r.RepaymentAmount
}
