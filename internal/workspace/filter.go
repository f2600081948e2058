package workspace

import (
	"strings"

	"golang.org/x/text/cases"

	"ledger-backend/internal/models"
)

var fold = cases.Fold()

// FilterClients keeps the clients whose name, phone or address contains query,
// ignoring case. A blank query keeps everyone.
func FilterClients(clients []models.Client, query string) []models.Client {
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return clients
	}

	var out []models.Client
	for _, c := range clients {
		if strings.Contains(fold.String(c.FullName), q) ||
			strings.Contains(fold.String(c.PhoneNumber), q) ||
			strings.Contains(fold.String(c.Address), q) {
			out = append(out, c)
		}
	}
	return out
}
