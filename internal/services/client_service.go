package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"ledger-backend/internal/cache"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/logger"
	"ledger-backend/internal/metrics"
	"ledger-backend/internal/models"
	"ledger-backend/internal/repositories"
)

type ClientService struct {
	Repo      ClientStore
	Payments  PaymentStore
	Purchases PurchaseStore
}

func NewClientService(repo ClientStore, payments PaymentStore, purchases PurchaseStore) *ClientService {
	return &ClientService{Repo: repo, Payments: payments, Purchases: purchases}
}

func validateClient(name, phone, address string) (string, string, string, error) {
	var f fields
	name = f.text("full_name", name)
	phone = f.text("phone_number", phone)
	address = f.text("address", address)
	return name, phone, address, f.err()
}

func (s *ClientService) CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	name, phone, address, err := validateClient(req.FullName, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, err
	}

	client, err := s.Repo.Create(ctx, &models.CreateClientRequest{FullName: name, PhoneNumber: phone, Address: address})
	if err != nil {
		return nil, err
	}
	cache.InvalidateClientCaches(ctx)
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int) (*models.Client, error) {
	return s.Repo.Get(ctx, id)
}

// GetDetail loads the client with all of its records, newest first, and the
// totals computed from them.
func (s *ClientService) GetDetail(ctx context.Context, id int) (*models.ClientDetail, error) {
	var d models.ClientDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.Repo.Get(gctx, id)
		if err != nil {
			return err
		}
		d.Client = *c
		return nil
	})
	g.Go(func() error {
		var err error
		d.Payments, err = s.Payments.ListByClient(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		d.Purchases, err = s.Purchases.ListByClient(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ledger.SortPaymentsByDateDesc(d.Payments)
	ledger.SortPurchasesByDateDesc(d.Purchases)
	d.Summary = ledger.Summarize(d.Payments, d.Purchases)
	return &d, nil
}

// ListClients returns every client, or those matching query on name, phone or
// address. The unfiltered list is cached.
func (s *ClientService) ListClients(ctx context.Context, query string) ([]models.Client, error) {
	if query == "" {
		var cached []models.Client
		if cache.GetJSON(ctx, cache.ClientsKey, &cached) {
			return cached, nil
		}
	}

	clients, err := s.Repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	if query == "" {
		cache.SetJSON(ctx, cache.ClientsKey, clients)
	}
	return clients, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	name, phone, address, err := validateClient(req.FullName, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, err
	}

	client, err := s.Repo.Update(ctx, id, &models.UpdateClientRequest{FullName: name, PhoneNumber: phone, Address: address})
	if err != nil {
		return nil, err
	}
	cache.InvalidateClientCaches(ctx)
	return client, nil
}

// DeleteClient removes payments, then purchases, then the client. Stores that
// implement CascadeDeleter do it in one transaction. Otherwise the steps run in
// order and a failure returns a *PartialDeleteError with earlier steps applied.
func (s *ClientService) DeleteClient(ctx context.Context, id int) (repositories.CascadeResult, error) {
	if cd, ok := s.Repo.(CascadeDeleter); ok {
		res, err := cd.DeleteCascade(ctx, id)
		if err != nil {
			metrics.ClientDeletes.WithLabelValues("rolled_back").Inc()
			logger.Log.Warnw("[Client] cascade delete rolled back", "client_id", id, "error", err)
			return res, err
		}
		s.afterDelete(ctx, id, res)
		return res, nil
	}
	return s.deleteSequential(ctx, id)
}

func (s *ClientService) deleteSequential(ctx context.Context, id int) (repositories.CascadeResult, error) {
	var res repositories.CascadeResult

	fail := func(step string, err error) (repositories.CascadeResult, error) {
		// Earlier steps may have removed rows already.
		cache.InvalidateClientCaches(ctx)
		metrics.ClientDeletes.WithLabelValues("partial").Inc()
		logger.Log.Errorw("[Client] delete aborted", "client_id", id, "step", step, "error", err)
		return res, &PartialDeleteError{Step: step, Err: err}
	}

	n, err := s.Payments.DeleteByClient(ctx, id)
	if err != nil {
		return fail(StepPayments, err)
	}
	res.Payments = n

	n, err = s.Purchases.DeleteByClient(ctx, id)
	if err != nil {
		return fail(StepPurchases, err)
	}
	res.Purchases = n

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) && res.Payments == 0 && res.Purchases == 0 {
			return res, err
		}
		return fail(StepClient, err)
	}

	s.afterDelete(ctx, id, res)
	return res, nil
}

func (s *ClientService) afterDelete(ctx context.Context, id int, res repositories.CascadeResult) {
	cache.InvalidateClientCaches(ctx)
	metrics.ClientDeletes.WithLabelValues("ok").Inc()
	logger.Log.Infow("[Client] deleted", "client_id", id, "payments", res.Payments, "purchases", res.Purchases)
}
