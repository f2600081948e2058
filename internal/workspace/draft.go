package workspace

import (
	"strconv"

	"ledger-backend/internal/models"
	"ledger-backend/internal/pricing"
)

// PurchaseDraft is the purchase form being filled in.
type PurchaseDraft struct {
	Date        string
	DateUnknown bool
	Quantity    string
	Type        string
	Class       string
	Price       *pricing.Form
}

func NewPurchaseDraft() *PurchaseDraft {
	return &PurchaseDraft{Price: pricing.NewForm("", "", "")}
}

// EditDraft loads a stored purchase. The stored total is kept as is.
func EditDraft(p models.Purchase) *PurchaseDraft {
	d := &PurchaseDraft{
		Quantity: number(p.Quantity),
		Type:     p.Type,
		Class:    p.Class,
		Price:    pricing.NewForm(number(p.UnitPrice), number(p.Weight), number(p.TotalPrice)),
	}
	if p.Date == nil {
		d.DateUnknown = true
	} else {
		d.Date = *p.Date
	}
	return d
}

func (d *PurchaseDraft) Request() *models.PurchaseRequest {
	return &models.PurchaseRequest{
		Date:        d.Date,
		DateUnknown: d.DateUnknown,
		Quantity:    d.Quantity,
		Type:        d.Type,
		Class:       d.Class,
		Weight:      d.Price.Weight,
		UnitPrice:   d.Price.UnitPrice,
		TotalPrice:  d.Price.Total,
	}
}

func number(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
