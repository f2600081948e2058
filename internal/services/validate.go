package services

import (
	"strings"

	"ledger-backend/internal/format"
	"ledger-backend/internal/models"
)

// fields collects presence and numeric checks for one request.
type fields struct {
	missing []string
}

func (f *fields) text(name, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		f.missing = append(f.missing, name)
	}
	return v
}

// number requires v to be present and parseable.
func (f *fields) number(name, v string) *float64 {
	n, ok := format.ParseDecimal(v)
	if !ok {
		f.missing = append(f.missing, name)
		return nil
	}
	return &n
}

// optionalNumber accepts blank, but not garbage.
func (f *fields) optionalNumber(name, v string) *float64 {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return f.number(name, v)
}

// date returns nil for an unknown date and requires a value otherwise.
func (f *fields) date(name, v string, unknown bool) *string {
	if unknown {
		return nil
	}
	v = f.text(name, v)
	if v == "" {
		return nil
	}
	return &v
}

func (f *fields) err() error {
	if len(f.missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: f.missing}
}

// ValidateClient runs the client checks without touching a store.
func ValidateClient(req *models.CreateClientRequest) error {
	_, _, _, err := validateClient(req.FullName, req.PhoneNumber, req.Address)
	return err
}

// ValidatePayment runs the payment form checks without touching a store.
func ValidatePayment(req *models.PaymentRequest) error {
	_, err := paymentFromRequest(req)
	return err
}

// ValidatePurchase runs the purchase form checks without touching a store.
func ValidatePurchase(req *models.PurchaseRequest) error {
	_, err := purchaseFromRequest(req)
	return err
}
