package workspace

import (
	"context"
	"errors"
	"sync/atomic"

	"ledger-backend/internal/models"
	"ledger-backend/internal/repositories"
)

var (
	// ErrBusy is returned when an editor is submitted while its previous
	// request is still in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrForbidden is an admin-only action attempted by a regular session.
	ErrForbidden = errors.New("this action requires an admin session")
)

// Store is the remote side of the workspace; *apiclient.Client implements it.
type Store interface {
	ListClients(ctx context.Context, query string) ([]models.Client, error)
	GetClient(ctx context.Context, id int) (*models.ClientDetail, error)
	CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error)
	UpdateClient(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, id int) (repositories.CascadeResult, error)

	CreatePayment(ctx context.Context, clientID int, req *models.PaymentRequest) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id int, req *models.PaymentRequest) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int) error

	CreatePurchase(ctx context.Context, clientID int, req *models.PurchaseRequest) (*models.Purchase, error)
	UpdatePurchase(ctx context.Context, id int, req *models.PurchaseRequest) (*models.Purchase, error)
	DeletePurchase(ctx context.Context, id int) error

	Labels(ctx context.Context, kind models.LabelKind) ([]models.Label, error)
	CreateLabel(ctx context.Context, kind models.LabelKind, name string) (*models.Label, error)

	PaymentsHistory(ctx context.Context, page int) (*models.Page[models.Payment], error)
	PurchasesHistory(ctx context.Context, page int) (*models.Page[models.Purchase], error)
}

// busy guards one editor against double submission.
type busy struct{ flag atomic.Bool }

func (b *busy) enter() error {
	if !b.flag.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (b *busy) leave() { b.flag.Store(false) }

// Busy reports whether a request is in flight.
func (b *busy) Busy() bool { return b.flag.Load() }
