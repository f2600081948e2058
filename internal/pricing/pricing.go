// Package pricing derives a purchase's total price from its unit price and weight.
package pricing

import (
	"strconv"

	"ledger-backend/internal/format"
)

// Derive returns the total price field after unit price or weight changed.
// When both inputs parse, the exact product wins. Otherwise a non-empty
// current total is kept as typed and an empty one stays empty.
func Derive(unitPrice, weight, currentTotal string) string {
	u, okU := format.ParseDecimal(unitPrice)
	w, okW := format.ParseDecimal(weight)
	if okU && okW {
		return strconv.FormatFloat(u*w, 'f', -1, 64)
	}
	if currentTotal != "" {
		return currentTotal
	}
	return ""
}

// Form is the price part of a purchase form.
type Form struct {
	UnitPrice string
	Weight    string
	Total     string

	overridden bool
}

// NewForm loads existing values as stored; nothing is recomputed until an input changes.
func NewForm(unitPrice, weight, total string) *Form {
	return &Form{UnitPrice: unitPrice, Weight: weight, Total: total}
}

func (f *Form) SetUnitPrice(v string) {
	f.UnitPrice = format.NormalizeDecimal(v)
	f.recompute()
}

func (f *Form) SetWeight(v string) {
	f.Weight = format.NormalizeDecimal(v)
	f.recompute()
}

// SetTotal records a direct edit. It is never rejected.
func (f *Form) SetTotal(v string) {
	f.Total = format.NormalizeDecimal(v)
	f.overridden = true
}

// Overridden reports whether the total was typed after the last unit price or
// weight change. Derive does not consult it.
func (f *Form) Overridden() bool { return f.overridden }

func (f *Form) recompute() {
	f.Total = Derive(f.UnitPrice, f.Weight, f.Total)
	f.overridden = false
}

// TotalValue parses the current total, false when the field is blank or not a number.
func (f *Form) TotalValue() (float64, bool) {
	return format.ParseDecimal(f.Total)
}
