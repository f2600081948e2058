package models

// Summary carries purchase and payment totals and the outstanding balance.
type Summary struct {
	TotalPurchases float64 `json:"total_purchases"`
	TotalPayments  float64 `json:"total_payments"`
	Balance        float64 `json:"balance"`
	Negative       bool    `json:"negative"`

	TotalPurchasesText string `json:"total_purchases_text"`
	TotalPaymentsText  string `json:"total_payments_text"`
	BalanceText        string `json:"balance_text"`
}
