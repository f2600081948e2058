package services

import (
	"context"
	"strings"

	"ledger-backend/internal/cache"
	"ledger-backend/internal/models"
	"ledger-backend/internal/pricing"
)

type PurchaseService struct {
	Repo PurchaseStore
}

func NewPurchaseService(repo PurchaseStore) *PurchaseService {
	return &PurchaseService{Repo: repo}
}

// purchaseFromRequest validates the form. A blank total is derived from unit
// price and weight; a typed one is stored as entered.
func purchaseFromRequest(req *models.PurchaseRequest) (*models.Purchase, error) {
	var f fields
	p := &models.Purchase{
		Date:      f.date("date_achat", req.Date, req.DateUnknown),
		Quantity:  f.number("quantite", req.Quantity),
		Type:      NormalizeLabel(f.text("type", req.Type)),
		Class:     NormalizeLabel(f.text("classe", req.Class)),
		Weight:    f.number("poids", req.Weight),
		UnitPrice: f.number("prix_unitaire", req.UnitPrice),
	}

	total := req.TotalPrice
	if strings.TrimSpace(total) == "" {
		total = pricing.Derive(req.UnitPrice, req.Weight, "")
	}
	p.TotalPrice = f.optionalNumber("prix_total", total)

	if err := f.err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PurchaseService) CreatePurchase(ctx context.Context, clientID int, req *models.PurchaseRequest) (*models.Purchase, error) {
	p, err := purchaseFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ClientID = clientID

	created, err := s.Repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	cache.InvalidateTransactionCaches(ctx)
	return created, nil
}

func (s *PurchaseService) UpdatePurchase(ctx context.Context, id int, req *models.PurchaseRequest) (*models.Purchase, error) {
	p, err := purchaseFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id

	updated, err := s.Repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	cache.InvalidateTransactionCaches(ctx)
	return updated, nil
}

func (s *PurchaseService) DeletePurchase(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTransactionCaches(ctx)
	return nil
}

func (s *PurchaseService) ListByClient(ctx context.Context, clientID int) ([]models.Purchase, error) {
	return s.Repo.ListByClient(ctx, clientID)
}
