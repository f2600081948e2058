package models

// PaymentType is the closed set of payment methods.
type PaymentType string

const (
	PaymentCash     PaymentType = "cash"
	PaymentCheque   PaymentType = "cheque"
	PaymentTransfer PaymentType = "virement"
	PaymentDeposit  PaymentType = "versement"
	PaymentTraite   PaymentType = "traite" // promissory note
	PaymentUnknown  PaymentType = "inconnue"
)

// PaymentTypes lists the accepted values in display order.
var PaymentTypes = []PaymentType{
	PaymentCash, PaymentCheque, PaymentTransfer, PaymentDeposit, PaymentTraite, PaymentUnknown,
}

func (t PaymentType) Valid() bool {
	for _, v := range PaymentTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Payment struct {
	ID         int         `json:"id"`
	ClientID   int         `json:"client_id"`
	ClientName string      `json:"client_name,omitempty"` // Joined from clients table
	Date       *string     `json:"date_paiement"`         // YYYY-MM-DD, nil when unknown
	Type       PaymentType `json:"type_paiement"`
	Amount     *float64    `json:"paiement"`
}

// PaymentRequest is the body for creating or updating a payment.
// Amount is raw form text, a comma decimal separator is accepted.
type PaymentRequest struct {
	Date        string      `json:"date_paiement"`
	DateUnknown bool        `json:"date_unknown"`
	Type        PaymentType `json:"type_paiement"`
	Amount      string      `json:"paiement"`
}
