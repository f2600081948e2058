package services

import (
	"context"

	"ledger-backend/internal/models"
	"ledger-backend/internal/repositories"
)

// The repositories satisfy these; tests use in-memory fakes.

type ClientStore interface {
	Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error)
	Get(ctx context.Context, id int) (*models.Client, error)
	List(ctx context.Context, query string) ([]models.Client, error)
	Update(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id int) error
}

// CascadeDeleter is implemented by stores that can delete a client and its
// records atomically.
type CascadeDeleter interface {
	DeleteCascade(ctx context.Context, id int) (repositories.CascadeResult, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	Get(ctx context.Context, id int) (*models.Payment, error)
	ListByClient(ctx context.Context, clientID int) ([]models.Payment, error)
	Update(ctx context.Context, p *models.Payment) (*models.Payment, error)
	Delete(ctx context.Context, id int) error
	DeleteByClient(ctx context.Context, clientID int) (int64, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.Payment, int, error)
	Total(ctx context.Context) (float64, error)
}

type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) (*models.Purchase, error)
	Get(ctx context.Context, id int) (*models.Purchase, error)
	ListByClient(ctx context.Context, clientID int) ([]models.Purchase, error)
	Update(ctx context.Context, p *models.Purchase) (*models.Purchase, error)
	Delete(ctx context.Context, id int) error
	DeleteByClient(ctx context.Context, clientID int) (int64, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.Purchase, int, error)
	Total(ctx context.Context) (float64, error)
}

type LabelStore interface {
	List(ctx context.Context, kind models.LabelKind) ([]models.Label, error)
	Create(ctx context.Context, kind models.LabelKind, name string) (*models.Label, error)
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

var (
	_ ClientStore    = (*repositories.ClientRepository)(nil)
	_ CascadeDeleter = (*repositories.ClientRepository)(nil)
	_ PaymentStore   = (*repositories.PaymentRepository)(nil)
	_ PurchaseStore  = (*repositories.PurchaseRepository)(nil)
	_ LabelStore     = (*repositories.LabelRepository)(nil)
	_ UserStore      = (*repositories.UserRepository)(nil)
)
