package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ledger-backend/internal/cache"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/metrics"
	"ledger-backend/internal/models"
)

// TotalStore sums one table.
type TotalStore interface {
	Total(ctx context.Context) (float64, error)
}

// SummaryService computes the dashboard totals over every client.
type SummaryService struct {
	Payments  TotalStore
	Purchases TotalStore
}

func NewSummaryService(payments, purchases TotalStore) *SummaryService {
	return &SummaryService{Payments: payments, Purchases: purchases}
}

// Global returns the cached totals when present, otherwise recomputes them.
func (s *SummaryService) Global(ctx context.Context) (models.Summary, error) {
	var sum models.Summary
	if cache.GetJSON(ctx, cache.SummaryKey, &sum) {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return sum, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	var paid, bought float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		paid, err = s.Payments.Total(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bought, err = s.Purchases.Total(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Summary{}, err
	}

	sum = ledger.NewSummary(bought, paid)
	cache.SetJSON(ctx, cache.SummaryKey, sum)
	return sum, nil
}

// ForClient totals one client's records.
func (s *SummaryService) ForClient(payments []models.Payment, purchases []models.Purchase) models.Summary {
	return ledger.Summarize(payments, purchases)
}
