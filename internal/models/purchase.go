package models

type Purchase struct {
	ID         int      `json:"id"`
	ClientID   int      `json:"client_id"`
	ClientName string   `json:"client_name,omitempty"` // Joined from clients table
	Date       *string  `json:"date_achat"`            // YYYY-MM-DD, nil when unknown
	Quantity   *float64 `json:"quantite"`
	Type       string   `json:"type"`
	Class      string   `json:"classe"`
	Weight     *float64 `json:"poids"`
	UnitPrice  *float64 `json:"prix_unitaire"`
	TotalPrice *float64 `json:"prix_total"`
}

// PurchaseRequest is the body for creating or updating a purchase.
// Numeric fields are raw form text. An empty TotalPrice is derived from
// unit price and weight.
type PurchaseRequest struct {
	Date        string `json:"date_achat"`
	DateUnknown bool   `json:"date_unknown"`
	Quantity    string `json:"quantite"`
	Type        string `json:"type"`
	Class       string `json:"classe"`
	Weight      string `json:"poids"`
	UnitPrice   string `json:"prix_unitaire"`
	TotalPrice  string `json:"prix_total"`
}
