package workspace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"
	"ledger-backend/internal/services"
)

// ClientDetail is one client's page: its records, the reference lists the
// purchase form draws from, and an editor for each. A failed request leaves
// every collection as it was.
type ClientDetail struct {
	store Store

	Client    models.Client
	Payments  *Collection[models.Payment]
	Purchases *Collection[models.Purchase]
	Types     *Collection[models.Label]
	Classes   *Collection[models.Label]

	busy
}

// OpenClient loads the client, its records and both label lists.
func OpenClient(ctx context.Context, store Store, id int) (*ClientDetail, error) {
	var (
		detail         *models.ClientDetail
		types, classes []models.Label
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = store.GetClient(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = store.Labels(gctx, models.LabelType)
		return err
	})
	g.Go(func() error {
		var err error
		classes, err = store.Labels(gctx, models.LabelClass)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ClientDetail{
		store:     store,
		Client:    detail.Client,
		Payments:  NewCollection(paymentID, detail.Payments),
		Purchases: NewCollection(purchaseID, detail.Purchases),
		Types:     NewCollection(labelID, types),
		Classes:   NewCollection(labelID, classes),
	}, nil
}

// Summary is recomputed from the collections on every call.
func (d *ClientDetail) Summary() models.Summary {
	return ledger.Summarize(d.Payments.Items(), d.Purchases.Items())
}

// SortedPayments returns the payments newest first, unknown dates last.
func (d *ClientDetail) SortedPayments() []models.Payment {
	p := d.Payments.Items()
	ledger.SortPaymentsByDateDesc(p)
	return p
}

func (d *ClientDetail) SortedPurchases() []models.Purchase {
	p := d.Purchases.Items()
	ledger.SortPurchasesByDateDesc(p)
	return p
}

// run wraps one editor submission in the busy guard.
func (d *ClientDetail) run(fn func() error) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()
	return fn()
}

func (d *ClientDetail) UpdateClient(ctx context.Context, req *models.UpdateClientRequest) error {
	if err := services.ValidateClient((*models.CreateClientRequest)(req)); err != nil {
		return err
	}
	return d.run(func() error {
		c, err := d.store.UpdateClient(ctx, d.Client.ID, req)
		if err != nil {
			return err
		}
		d.Client = *c
		return nil
	})
}

func (d *ClientDetail) AddPayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error) {
	if err := services.ValidatePayment(req); err != nil {
		return nil, err
	}
	var p *models.Payment
	err := d.run(func() error {
		var err error
		if p, err = d.store.CreatePayment(ctx, d.Client.ID, req); err != nil {
			return err
		}
		d.Payments.Prepend(*p)
		return nil
	})
	return p, err
}

func (d *ClientDetail) EditPayment(ctx context.Context, id int, req *models.PaymentRequest) error {
	if err := services.ValidatePayment(req); err != nil {
		return err
	}
	return d.run(func() error {
		p, err := d.store.UpdatePayment(ctx, id, req)
		if err != nil {
			return err
		}
		d.Payments.Replace(*p)
		return nil
	})
}

func (d *ClientDetail) DeletePayment(ctx context.Context, id int) error {
	return d.run(func() error {
		if err := d.store.DeletePayment(ctx, id); err != nil {
			return err
		}
		d.Payments.Remove(id)
		return nil
	})
}

func (d *ClientDetail) AddPurchase(ctx context.Context, draft *PurchaseDraft) (*models.Purchase, error) {
	req := draft.Request()
	if err := services.ValidatePurchase(req); err != nil {
		return nil, err
	}
	var p *models.Purchase
	err := d.run(func() error {
		var err error
		if p, err = d.store.CreatePurchase(ctx, d.Client.ID, req); err != nil {
			return err
		}
		d.Purchases.Prepend(*p)
		return nil
	})
	return p, err
}

func (d *ClientDetail) EditPurchase(ctx context.Context, id int, draft *PurchaseDraft) error {
	req := draft.Request()
	if err := services.ValidatePurchase(req); err != nil {
		return err
	}
	return d.run(func() error {
		p, err := d.store.UpdatePurchase(ctx, id, req)
		if err != nil {
			return err
		}
		d.Purchases.Replace(*p)
		return nil
	})
}

func (d *ClientDetail) DeletePurchase(ctx context.Context, id int) error {
	return d.run(func() error {
		if err := d.store.DeletePurchase(ctx, id); err != nil {
			return err
		}
		d.Purchases.Remove(id)
		return nil
	})
}

// CreateType adds a type label and selects it in draft.
func (d *ClientDetail) CreateType(ctx context.Context, name string, draft *PurchaseDraft) (*models.Label, error) {
	l, err := d.createLabel(ctx, models.LabelType, name, d.Types)
	if err == nil && draft != nil {
		draft.Type = l.Name
	}
	return l, err
}

// CreateClass adds a class label and selects it in draft.
func (d *ClientDetail) CreateClass(ctx context.Context, name string, draft *PurchaseDraft) (*models.Label, error) {
	l, err := d.createLabel(ctx, models.LabelClass, name, d.Classes)
	if err == nil && draft != nil {
		draft.Class = l.Name
	}
	return l, err
}

func (d *ClientDetail) createLabel(ctx context.Context, kind models.LabelKind, name string, into *Collection[models.Label]) (*models.Label, error) {
	if services.NormalizeLabel(name) == "" {
		return nil, &services.ValidationError{Fields: []string{"name"}}
	}
	var l *models.Label
	err := d.run(func() error {
		var err error
		if l, err = d.store.CreateLabel(ctx, kind, name); err != nil {
			return err
		}
		// Creating an existing name returns its row.
		if !into.Replace(*l) {
			into.Prepend(*l)
		}
		return nil
	})
	return l, err
}
