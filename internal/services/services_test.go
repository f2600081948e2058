package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ledger-backend/internal/models"
	"ledger-backend/internal/repositories"
)

func seedLedger() (*memClients, *memPayments, *memPurchases) {
	clients := &memClients{rows: []models.Client{
		{ID: 1, FullName: "Brahim Idrissi", PhoneNumber: "0600", Address: "Fès"},
		{ID: 2, FullName: "Salma Bennani", PhoneNumber: "0611", Address: "Rabat"},
	}, next: 2}
	payments := &memPayments{rows: []models.Payment{
		{ID: 1, ClientID: 1, Type: models.PaymentCash, Amount: ptr(100.0)},
		{ID: 2, ClientID: 1, Type: models.PaymentCheque, Amount: ptr(50.0)},
		{ID: 3, ClientID: 2, Type: models.PaymentCash, Amount: ptr(10.0)},
	}, next: 3}
	purchases := &memPurchases{rows: []models.Purchase{
		{ID: 1, ClientID: 1, Type: "olive", Class: "a", TotalPrice: ptr(300.0)},
	}, next: 1}
	return clients, payments, purchases
}

func TestDeleteClientSequential(t *testing.T) {
	ctx := context.Background()

	t.Run("removes everything in order", func(t *testing.T) {
		clients, payments, purchases := seedLedger()
		svc := NewClientService(clients, payments, purchases)

		res, err := svc.DeleteClient(ctx, 1)
		if err != nil {
			t.Fatalf("DeleteClient: %v", err)
		}
		if res.Payments != 2 || res.Purchases != 1 {
			t.Errorf("result = %+v, want 2 payments and 1 purchase", res)
		}
		if _, err := clients.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("client still present: %v", err)
		}
		if left, _ := payments.ListByClient(ctx, 2); len(left) != 1 {
			t.Errorf("other client's payments touched: %d left", len(left))
		}
	})

	t.Run("purchase failure keeps client", func(t *testing.T) {
		clients, payments, purchases := seedLedger()
		purchases.failDel = errBoom
		svc := NewClientService(clients, payments, purchases)

		res, err := svc.DeleteClient(ctx, 1)
		var pde *PartialDeleteError
		if !errors.As(err, &pde) {
			t.Fatalf("error = %v, want *PartialDeleteError", err)
		}
		if pde.Step != StepPurchases {
			t.Errorf("step = %q, want %q", pde.Step, StepPurchases)
		}
		if !errors.Is(err, errBoom) {
			t.Errorf("cause not wrapped: %v", err)
		}
		if err.Error() != "Failed to delete client purchases: boom" {
			t.Errorf("message = %q", err.Error())
		}
		if res.Payments != 2 {
			t.Errorf("payments deleted = %d, want 2", res.Payments)
		}
		if left, _ := payments.ListByClient(ctx, 1); len(left) != 0 {
			t.Errorf("payments left = %d, want 0", len(left))
		}
		if _, err := clients.Get(ctx, 1); err != nil {
			t.Errorf("client gone: %v", err)
		}
		if left, _ := purchases.ListByClient(ctx, 1); len(left) != 1 {
			t.Errorf("purchases left = %d, want 1", len(left))
		}
	})

	t.Run("payment failure stops first", func(t *testing.T) {
		clients, payments, purchases := seedLedger()
		payments.failDel = errBoom
		svc := NewClientService(clients, payments, purchases)

		_, err := svc.DeleteClient(ctx, 1)
		var pde *PartialDeleteError
		if !errors.As(err, &pde) || pde.Step != StepPayments {
			t.Fatalf("error = %v, want payments step", err)
		}
		if left, _ := purchases.ListByClient(ctx, 1); len(left) != 1 {
			t.Errorf("purchases touched after payment failure")
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		clients, payments, purchases := seedLedger()
		svc := NewClientService(clients, payments, purchases)

		_, err := svc.DeleteClient(ctx, 99)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
		var pde *PartialDeleteError
		if errors.As(err, &pde) {
			t.Errorf("unknown client reported as partial delete")
		}
	})
}

func TestDeleteClientCascade(t *testing.T) {
	ctx := context.Background()
	clients, payments, purchases := seedLedger()
	cc := &cascadeClients{memClients: clients, result: repositories.CascadeResult{Payments: 2, Purchases: 1}}
	svc := NewClientService(cc, payments, purchases)

	res, err := svc.DeleteClient(ctx, 1)
	if err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if cc.calls != 1 || res.Payments != 2 || res.Purchases != 1 {
		t.Errorf("calls=%d result=%+v", cc.calls, res)
	}
	// The sequential path was not taken.
	if left, _ := payments.ListByClient(ctx, 1); len(left) != 2 {
		t.Errorf("sequential delete ran alongside cascade")
	}

	cc.err = errBoom
	if _, err := svc.DeleteClient(ctx, 2); !errors.Is(err, errBoom) {
		t.Errorf("error = %v, want boom", err)
	}
	if _, err := clients.Get(ctx, 2); err != nil {
		t.Errorf("client removed after rollback: %v", err)
	}
}

func TestClientValidation(t *testing.T) {
	svc := NewClientService(&memClients{}, &memPayments{}, &memPurchases{})

	tests := []struct {
		name    string
		req     models.CreateClientRequest
		missing []string
	}{
		{"all present", models.CreateClientRequest{FullName: "A", PhoneNumber: "1", Address: "x"}, nil},
		{"blank name", models.CreateClientRequest{FullName: "  ", PhoneNumber: "1", Address: "x"}, []string{"full_name"}},
		{"nothing", models.CreateClientRequest{}, []string{"full_name", "phone_number", "address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.CreateClient(context.Background(), &tt.req)
			if tt.missing == nil {
				if err != nil {
					t.Fatalf("CreateClient: %v", err)
				}
				if c.ID == 0 {
					t.Errorf("no id assigned")
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("not ErrValidation")
			}
			if strings.Join(ve.Fields, ",") != strings.Join(tt.missing, ",") {
				t.Errorf("fields = %v, want %v", ve.Fields, tt.missing)
			}
		})
	}
}

func TestCreateClientTrims(t *testing.T) {
	svc := NewClientService(&memClients{}, &memPayments{}, &memPurchases{})
	c, err := svc.CreateClient(context.Background(), &models.CreateClientRequest{FullName: " Ali ", PhoneNumber: "06 ", Address: " Meknès"})
	if err != nil {
		t.Fatal(err)
	}
	if c.FullName != "Ali" || c.PhoneNumber != "06" || c.Address != "Meknès" {
		t.Errorf("got %+v", c)
	}
}

func TestPaymentFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.PaymentRequest
		wantErr bool
		amount  float64
		date    *string
	}{
		{"comma amount", models.PaymentRequest{Date: "2024-03-01", Type: models.PaymentCash, Amount: "12,5"}, false, 12.5, ptr("2024-03-01")},
		{"unknown date", models.PaymentRequest{DateUnknown: true, Type: models.PaymentTraite, Amount: "3"}, false, 3, nil},
		{"missing date", models.PaymentRequest{Type: models.PaymentCash, Amount: "3"}, true, 0, nil},
		{"bad type", models.PaymentRequest{Date: "2024-03-01", Type: "bitcoin", Amount: "3"}, true, 0, nil},
		{"garbage amount", models.PaymentRequest{Date: "2024-03-01", Type: models.PaymentCash, Amount: "abc"}, true, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := paymentFromRequest(&tt.req)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("error = %v, want validation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("paymentFromRequest: %v", err)
			}
			if *p.Amount != tt.amount {
				t.Errorf("amount = %v, want %v", *p.Amount, tt.amount)
			}
			if (p.Date == nil) != (tt.date == nil) || (p.Date != nil && *p.Date != *tt.date) {
				t.Errorf("date = %v, want %v", p.Date, tt.date)
			}
		})
	}
}

func TestPurchaseFromRequest(t *testing.T) {
	base := models.PurchaseRequest{
		Date: "2024-05-02", Quantity: "3", Type: " Olive ", Class: "EXTRA",
		Weight: "12", UnitPrice: "8,5",
	}

	t.Run("blank total is derived", func(t *testing.T) {
		p, err := purchaseFromRequest(&base)
		if err != nil {
			t.Fatal(err)
		}
		if p.TotalPrice == nil || *p.TotalPrice != 102 {
			t.Errorf("total = %v, want 102", p.TotalPrice)
		}
		if p.Type != "olive" || p.Class != "extra" {
			t.Errorf("labels = %q/%q", p.Type, p.Class)
		}
	})

	t.Run("typed total wins", func(t *testing.T) {
		req := base
		req.TotalPrice = "100"
		p, err := purchaseFromRequest(&req)
		if err != nil {
			t.Fatal(err)
		}
		if *p.TotalPrice != 100 {
			t.Errorf("total = %v, want 100", *p.TotalPrice)
		}
	})

	t.Run("missing weight", func(t *testing.T) {
		req := base
		req.Weight = ""
		_, err := purchaseFromRequest(&req)
		var ve *ValidationError
		if !errors.As(err, &ve) || !strings.Contains(ve.Error(), "poids") {
			t.Errorf("error = %v, want poids missing", err)
		}
	})
}

func TestPurchaseServiceCreate(t *testing.T) {
	repo := &memPurchases{}
	svc := NewPurchaseService(repo)
	p, err := svc.CreatePurchase(context.Background(), 7, &models.PurchaseRequest{
		Date: "2024-05-02", Quantity: "1", Type: "t", Class: "c", Weight: "2", UnitPrice: "3",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.ClientID != 7 || *p.TotalPrice != 6 {
		t.Errorf("got %+v", p)
	}
}

func TestLogin(t *testing.T) {
	users := memUsers{
		"admin": {ID: 1, Username: "admin", Name: "Admin", Type: "Admin"},
		"omar":  {ID: 2, Username: "omar", Name: "Omar", Type: "user"},
	}
	tokens := &stubTokens{}
	svc := NewAuthService(users, tokens)
	ctx := context.Background()

	resp, err := svc.Login(ctx, " admin ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Role != "admin" || resp.Token != "token-admin" || resp.Name != "Admin" {
		t.Errorf("resp = %+v", resp)
	}
	if !tokens.last.IsAdmin() {
		t.Errorf("session not admin")
	}

	resp, err = svc.Login(ctx, "omar")
	if err != nil || resp.Role != "user" {
		t.Errorf("omar: %+v %v", resp, err)
	}

	if _, err := svc.Login(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user error = %v", err)
	}
	if _, err := svc.Login(ctx, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank username error = %v", err)
	}
}

func TestHistoryPaging(t *testing.T) {
	payments := &memPayments{}
	for i := 1; i <= 10; i++ {
		payments.rows = append(payments.rows, models.Payment{ID: i})
	}
	svc := &HistoryService{Payments: payments, Purchases: &memPurchases{}, PageSize: 4}
	ctx := context.Background()

	tests := []struct {
		page      int
		wantPage  int
		wantFirst int
		wantLen   int
	}{
		{1, 1, 1, 4},
		{3, 3, 9, 2},
		{0, 1, 1, 4},
		{9, 3, 9, 2},
	}

	for _, tt := range tests {
		got, err := svc.PaymentsPage(ctx, tt.page)
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if got.Page != tt.wantPage || got.TotalPages != 3 || got.TotalCount != 10 {
			t.Errorf("page %d: got page=%d total=%d count=%d", tt.page, got.Page, got.TotalPages, got.TotalCount)
		}
		if len(got.Items) != tt.wantLen || got.Items[0].ID != tt.wantFirst {
			t.Errorf("page %d: items %v", tt.page, got.Items)
		}
	}

	empty, err := svc.PurchasesPage(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Page != 1 || empty.TotalPages != 1 || len(empty.Items) != 0 {
		t.Errorf("empty history = %+v", empty)
	}
}

func TestGlobalSummary(t *testing.T) {
	svc := NewSummaryService(&memPayments{total: 1500}, &memPurchases{total: 1234.5})
	sum, err := svc.Global(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Balance != -265.5 || !sum.Negative {
		t.Errorf("balance = %v negative=%v", sum.Balance, sum.Negative)
	}
	if sum.TotalPurchasesText != "1 234,50" || sum.BalanceText != "-265,50" {
		t.Errorf("texts = %q %q", sum.TotalPurchasesText, sum.BalanceText)
	}
}

func TestLabels(t *testing.T) {
	repo := &memLabels{}
	svc := NewLabelService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.LabelType, "  ÉCRASÉE ")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "écrasée" {
		t.Errorf("name = %q", a.Name)
	}
	b, err := svc.Create(ctx, models.LabelType, "écrasée")
	if err != nil || b.ID != a.ID {
		t.Errorf("second create = %+v %v, want same row", b, err)
	}

	if _, err := svc.Create(ctx, models.LabelClass, " "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name error = %v", err)
	}
	if _, err := svc.List(ctx, "colour"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad kind error = %v", err)
	}

	list, err := svc.List(ctx, models.LabelType)
	if err != nil || len(list) != 1 {
		t.Errorf("list = %v %v", list, err)
	}
}

func TestGenerateReport(t *testing.T) {
	clients, payments, purchases := seedLedger()
	archive := &stubArchive{}
	svc := NewClientReportService(clients, payments, purchases)
	svc.Archive = archive
	ctx := context.Background()

	doc, err := svc.Generate(ctx, 1, true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if doc.FileName != "Brahim_Idrissi_rapport.pdf" {
		t.Errorf("file name = %q", doc.FileName)
	}
	if !strings.HasPrefix(string(doc.PDF), "%PDF-") || doc.Pages < 1 {
		t.Errorf("pages=%d", doc.Pages)
	}
	if len(archive.keys) != 1 {
		t.Errorf("archived %d times, want 1", len(archive.keys))
	}

	archive.err = errBoom
	if _, err := svc.Generate(ctx, 1, true); err != nil {
		t.Errorf("archive failure surfaced: %v", err)
	}
	if _, err := svc.Generate(ctx, 1, false); err != nil || len(archive.keys) != 1 {
		t.Errorf("archive used without request")
	}

	if _, err := svc.Generate(ctx, 42, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing client error = %v", err)
	}
}

func TestGetDetail(t *testing.T) {
	clients, payments, purchases := seedLedger()
	payments.rows[0].Date = ptr("2024-01-01")
	payments.rows[1].Date = ptr("2024-06-15")
	svc := NewClientService(clients, payments, purchases)

	d, err := svc.GetDetail(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if d.Client.FullName != "Brahim Idrissi" || len(d.Payments) != 2 || len(d.Purchases) != 1 {
		t.Fatalf("detail = %+v", d)
	}
	if *d.Payments[0].Date != "2024-06-15" {
		t.Errorf("payments not newest first: %v", *d.Payments[0].Date)
	}
	if d.Summary.Balance != 150 || d.Summary.Negative {
		t.Errorf("summary = %+v", d.Summary)
	}

	if _, err := svc.GetDetail(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing client error = %v", err)
	}
}
