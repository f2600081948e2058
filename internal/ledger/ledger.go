// Package ledger reduces payment and purchase records into totals and a balance.
// Everything here is recomputed from the full record set.
package ledger

import (
	"math"
	"slices"
	"strings"

	"ledger-backend/internal/format"
	"ledger-backend/internal/models"
)

func amount(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

// TotalPayments sums payment amounts, missing ones count as zero.
func TotalPayments(payments []models.Payment) float64 {
	var sum float64
	for _, p := range payments {
		sum += amount(p.Amount)
	}
	return sum
}

// TotalPurchases sums purchase total prices, missing ones count as zero.
func TotalPurchases(purchases []models.Purchase) float64 {
	var sum float64
	for _, p := range purchases {
		sum += amount(p.TotalPrice)
	}
	return sum
}

// Balance is what the client still owes. Negative means overpaid.
func Balance(totalPurchases, totalPayments float64) float64 {
	return totalPurchases - totalPayments
}

func Summarize(payments []models.Payment, purchases []models.Purchase) models.Summary {
	return NewSummary(TotalPurchases(purchases), TotalPayments(payments))
}

// NewSummary builds a summary from precomputed totals.
func NewSummary(totalPurchases, totalPayments float64) models.Summary {
	b := Balance(totalPurchases, totalPayments)
	return models.Summary{
		TotalPurchases:     totalPurchases,
		TotalPayments:      totalPayments,
		Balance:            b,
		Negative:           b < 0,
		TotalPurchasesText: format.FormatTotal(totalPurchases),
		TotalPaymentsText:  format.FormatTotal(totalPayments),
		BalanceText:        format.FormatTotal(b),
	}
}

// compareDateDesc orders newest first with missing dates last.
func compareDateDesc(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return strings.Compare(*b, *a)
}

func SortPaymentsByDateDesc(payments []models.Payment) {
	slices.SortStableFunc(payments, func(a, b models.Payment) int {
		return compareDateDesc(a.Date, b.Date)
	})
}

func SortPurchasesByDateDesc(purchases []models.Purchase) {
	slices.SortStableFunc(purchases, func(a, b models.Purchase) int {
		return compareDateDesc(a.Date, b.Date)
	})
}
