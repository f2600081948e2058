package workspace

import (
	"context"
	"errors"
	"fmt"

	"ledger-backend/internal/format"
	"ledger-backend/internal/models"
	"ledger-backend/internal/paging"
	"ledger-backend/internal/repositories"
)

var errStore = errors.New("store unavailable")

// fakeStore implements Store over plain slices. fail makes the next call
// return errStore; block parks CreatePayment until released.
type fakeStore struct {
	clients   []models.Client
	payments  []models.Payment
	purchases []models.Purchase
	labels    []models.Label
	seq       int

	fail    bool
	block   chan struct{}
	entered chan struct{}
	calls   int
}

func (f *fakeStore) next() int { f.seq++; return f.seq + 100 }

func (f *fakeStore) err() error {
	f.calls++
	if f.fail {
		return errStore
	}
	return nil
}

func (f *fakeStore) ListClients(context.Context, string) ([]models.Client, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.clients, nil
}

func (f *fakeStore) GetClient(_ context.Context, id int) (*models.ClientDetail, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	for _, c := range f.clients {
		if c.ID == id {
			d := &models.ClientDetail{Client: c}
			for _, p := range f.payments {
				if p.ClientID == id {
					d.Payments = append(d.Payments, p)
				}
			}
			for _, p := range f.purchases {
				if p.ClientID == id {
					d.Purchases = append(d.Purchases, p)
				}
			}
			return d, nil
		}
	}
	return nil, fmt.Errorf("client %d not found", id)
}

func (f *fakeStore) CreateClient(_ context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	c := models.Client{ID: f.next(), FullName: req.FullName, PhoneNumber: req.PhoneNumber, Address: req.Address}
	return &c, nil
}

func (f *fakeStore) UpdateClient(_ context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Client{ID: id, FullName: req.FullName, PhoneNumber: req.PhoneNumber, Address: req.Address}, nil
}

func (f *fakeStore) DeleteClient(context.Context, int) (repositories.CascadeResult, error) {
	if err := f.err(); err != nil {
		return repositories.CascadeResult{}, err
	}
	return repositories.CascadeResult{}, nil
}

func (f *fakeStore) CreatePayment(_ context.Context, clientID int, req *models.PaymentRequest) (*models.Payment, error) {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	amount := 1.0
	return &models.Payment{ID: f.next(), ClientID: clientID, Type: req.Type, Amount: &amount}, nil
}

func (f *fakeStore) UpdatePayment(_ context.Context, id int, req *models.PaymentRequest) (*models.Payment, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	amount := 2.0
	return &models.Payment{ID: id, Type: req.Type, Amount: &amount}, nil
}

func (f *fakeStore) DeletePayment(context.Context, int) error { return f.err() }

func (f *fakeStore) CreatePurchase(_ context.Context, clientID int, req *models.PurchaseRequest) (*models.Purchase, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	p := models.Purchase{ID: f.next(), ClientID: clientID, Type: req.Type, Class: req.Class}
	if v, ok := format.ParseDecimal(req.TotalPrice); ok {
		p.TotalPrice = &v
	}
	return &p, nil
}

func (f *fakeStore) UpdatePurchase(_ context.Context, id int, req *models.PurchaseRequest) (*models.Purchase, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Purchase{ID: id, Type: req.Type, Class: req.Class}, nil
}

func (f *fakeStore) DeletePurchase(context.Context, int) error { return f.err() }

func (f *fakeStore) Labels(_ context.Context, kind models.LabelKind) ([]models.Label, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	var out []models.Label
	for _, l := range f.labels {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateLabel(_ context.Context, kind models.LabelKind, name string) (*models.Label, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	l := models.Label{ID: f.next(), Kind: kind, Name: name}
	f.labels = append(f.labels, l)
	return &l, nil
}

func (f *fakeStore) PaymentsHistory(_ context.Context, page int) (*models.Page[models.Payment], error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	total := paging.TotalPages(len(f.payments), 2)
	page = paging.Clamp(page, total)
	off := paging.Offset(page, 2)
	items := f.payments[min(off, len(f.payments)):min(off+2, len(f.payments))]
	return &models.Page[models.Payment]{Items: items, Page: page, PageSize: 2, TotalPages: total, TotalCount: len(f.payments)}, nil
}

func (f *fakeStore) PurchasesHistory(context.Context, int) (*models.Page[models.Purchase], error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return &models.Page[models.Purchase]{Page: 1, TotalPages: 1}, nil
}
