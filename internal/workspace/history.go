package workspace

import (
	"context"

	"ledger-backend/internal/models"
	"ledger-backend/internal/paging"
)

// History is one paginated transaction table.
type History[T any] struct {
	fetch   func(ctx context.Context, page int) (*models.Page[T], error)
	current *models.Page[T]

	busy
}

func NewPaymentHistory(store Store) *History[models.Payment] {
	return &History[models.Payment]{fetch: store.PaymentsHistory}
}

func NewPurchaseHistory(store Store) *History[models.Purchase] {
	return &History[models.Purchase]{fetch: store.PurchasesHistory}
}

// Load fetches the first page.
func (h *History[T]) Load(ctx context.Context) error {
	return h.load(ctx, 1)
}

// Go moves to page. A page outside [1, total pages] is ignored and nothing is
// requested.
func (h *History[T]) Go(ctx context.Context, page int) error {
	if h.current == nil {
		return h.load(ctx, page)
	}
	if !paging.Valid(page, h.current.TotalPages) || page == h.current.Page {
		return nil
	}
	return h.load(ctx, page)
}

func (h *History[T]) Next(ctx context.Context) error { return h.Go(ctx, h.PageNumber()+1) }

func (h *History[T]) Prev(ctx context.Context) error { return h.Go(ctx, h.PageNumber()-1) }

func (h *History[T]) load(ctx context.Context, page int) error {
	if err := h.enter(); err != nil {
		return err
	}
	defer h.leave()

	p, err := h.fetch(ctx, page)
	if err != nil {
		return err
	}
	h.current = p
	return nil
}

// Page is the last page loaded, nil before Load.
func (h *History[T]) Page() *models.Page[T] { return h.current }

func (h *History[T]) PageNumber() int {
	if h.current == nil {
		return 0
	}
	return h.current.Page
}

// Controls describes the navigation bar, false with a single page.
func (h *History[T]) Controls() (paging.Controls, bool) {
	if h.current == nil {
		return paging.Controls{}, false
	}
	return paging.NewControls(h.current.Page, h.current.TotalPages)
}
