package services

import (
	"context"

	"ledger-backend/internal/cache"
	"ledger-backend/internal/models"
)

type PaymentService struct {
	Repo PaymentStore
}

func NewPaymentService(repo PaymentStore) *PaymentService {
	return &PaymentService{Repo: repo}
}

func paymentFromRequest(req *models.PaymentRequest) (*models.Payment, error) {
	var f fields
	p := &models.Payment{
		Date: f.date("date_paiement", req.Date, req.DateUnknown),
		Type: models.PaymentType(f.text("type_paiement", string(req.Type))),
	}
	if p.Type != "" && !p.Type.Valid() {
		f.missing = append(f.missing, "type_paiement")
	}
	p.Amount = f.number("paiement", req.Amount)
	if err := f.err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) CreatePayment(ctx context.Context, clientID int, req *models.PaymentRequest) (*models.Payment, error) {
	p, err := paymentFromRequest(req)
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

func (s *PaymentService) UpdatePayment(ctx context.Context, id int, req *models.PaymentRequest) (*models.Payment, error) {
	p, err := paymentFromRequest(req)
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

func (s *PaymentService) DeletePayment(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTransactionCaches(ctx)
	return nil
}

func (s *PaymentService) ListByClient(ctx context.Context, clientID int) ([]models.Payment, error) {
	return s.Repo.ListByClient(ctx, clientID)
}
