package services

import (
	"context"

	"ledger-backend/internal/models"
	"ledger-backend/internal/paging"
)

// HistoryService pages through all payments and all purchases independently.
type HistoryService struct {
	Payments  PaymentStore
	Purchases PurchaseStore
	PageSize  int
}

func NewHistoryService(payments PaymentStore, purchases PurchaseStore) *HistoryService {
	return &HistoryService{Payments: payments, Purchases: purchases, PageSize: paging.PageSize}
}

func (s *HistoryService) PaymentsPage(ctx context.Context, page int) (*models.Page[models.Payment], error) {
	return fetchPage(ctx, s.Payments.ListPage, page, s.size())
}

func (s *HistoryService) PurchasesPage(ctx context.Context, page int) (*models.Page[models.Purchase], error) {
	return fetchPage(ctx, s.Purchases.ListPage, page, s.size())
}

func (s *HistoryService) size() int {
	if s.PageSize <= 0 {
		return paging.PageSize
	}
	return s.PageSize
}

// fetchPage clamps page into range. fetch returns one window of rows and the
// total row count; a page past the end is refetched as the last page.
func fetchPage[T any](ctx context.Context, fetch func(context.Context, int, int) ([]T, int, error), page, size int) (*models.Page[T], error) {
	page = max(page, 1)

	items, count, err := fetch(ctx, paging.Offset(page, size), size)
	if err != nil {
		return nil, err
	}

	totalPages := paging.TotalPages(count, size)
	if page > totalPages {
		page = totalPages
		if items, count, err = fetch(ctx, paging.Offset(page, size), size); err != nil {
			return nil, err
		}
		totalPages = paging.TotalPages(count, size)
	}

	return &models.Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalCount: count,
		Window:     paging.Window(page, totalPages),
	}, nil
}
