package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledger-backend/internal/models"
)

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"plain text", http.StatusNotFound, "User not found. Please check your username.\n", "User not found. Please check your username."},
		{"json error", http.StatusInternalServerError, `{"error":"Failed to delete client purchases: boom","step":"client purchases"}`, "Failed to delete client purchases: boom"},
		{"empty body", http.StatusBadGateway, "", "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "").Login(context.Background(), "x")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Status != tt.status || apiErr.Error() != tt.message {
				t.Errorf("got %d %q, want %d %q", apiErr.Status, apiErr.Error(), tt.status, tt.message)
			}
		})
	}
}

func TestRequests(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)

		switch r.URL.Path {
		case "/api/clients":
			json.NewEncoder(w).Encode([]models.Client{{ID: 1, FullName: "Alice Martin"}})
		case "/api/clients/3/purchases":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Purchase{ID: 9, ClientID: 3})
		case "/api/payments/4":
			w.WriteHeader(http.StatusNoContent)
		case "/api/clients/3/report":
			w.Header().Set("Content-Disposition", `attachment; filename="Alice_Martin_rapport.pdf"`)
			w.Write([]byte("%PDF-1.3"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok")
	ctx := context.Background()

	clients, err := c.ListClients(ctx, "alice m")
	if err != nil || len(clients) != 1 {
		t.Fatalf("ListClients = %v, %v", clients, err)
	}
	if gotAuth != "Bearer tok" || gotQuery != "q=alice+m" {
		t.Errorf("auth %q query %q", gotAuth, gotQuery)
	}

	p, err := c.CreatePurchase(ctx, 3, &models.PurchaseRequest{Type: "olive", Weight: "4"})
	if err != nil || p.ID != 9 {
		t.Fatalf("CreatePurchase = %+v, %v", p, err)
	}
	if gotBody["type"] != "olive" || gotBody["poids"] != "4" {
		t.Errorf("body = %v", gotBody)
	}

	if err := c.DeletePayment(ctx, 4); err != nil {
		t.Errorf("DeletePayment: %v", err)
	}
	if gotPath != "/api/payments/4" {
		t.Errorf("path = %q", gotPath)
	}

	name, pdf, err := c.Report(ctx, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Alice_Martin_rapport.pdf" || string(pdf) != "%PDF-1.3" || gotQuery != "archive=1" {
		t.Errorf("report %q %q query %q", name, pdf, gotQuery)
	}
}
