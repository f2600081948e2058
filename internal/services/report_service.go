package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"ledger-backend/internal/logger"
	"ledger-backend/internal/metrics"
	"ledger-backend/internal/report"
)

// Archiver stores a copy of a generated report.
type Archiver interface {
	Put(ctx context.Context, clientID int, fileName string, pdf []byte) (string, error)
}

// ClientReportService builds the per-client PDF from a full snapshot.
type ClientReportService struct {
	Clients   ClientStore
	Payments  PaymentStore
	Purchases PurchaseStore
	Archive   Archiver // optional
}

func NewClientReportService(clients ClientStore, payments PaymentStore, purchases PurchaseStore) *ClientReportService {
	return &ClientReportService{Clients: clients, Payments: payments, Purchases: purchases}
}

// Snapshot loads the client and every payment and purchase concurrently.
func (s *ClientReportService) Snapshot(ctx context.Context, clientID int) (report.Snapshot, error) {
	var snap report.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.Clients.Get(gctx, clientID)
		if err != nil {
			return err
		}
		snap.Client = *c
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Payments, err = s.Payments.ListByClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Purchases, err = s.Purchases.ListByClient(gctx, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.Snapshot{}, err
	}
	return snap, nil
}

// Generate renders the report. With archive set and an Archiver configured the
// PDF is also uploaded; an upload failure is logged only.
func (s *ClientReportService) Generate(ctx context.Context, clientID int, archive bool) (*report.Document, error) {
	start := time.Now()

	snap, err := s.Snapshot(ctx, clientID)
	if err != nil {
		metrics.ReportsGenerated.WithLabelValues("error").Inc()
		return nil, err
	}

	doc, err := report.Build(snap)
	if err != nil {
		metrics.ReportsGenerated.WithLabelValues("error").Inc()
		logger.Log.Errorw("[Report] build failed", "client_id", clientID, "error", err)
		return nil, err
	}
	metrics.ReportsGenerated.WithLabelValues("ok").Inc()
	metrics.ReportPages.Observe(float64(doc.Pages))

	if archive && s.Archive != nil {
		key, err := s.Archive.Put(ctx, clientID, doc.FileName, doc.PDF)
		if err != nil {
			logger.Log.Warnw("[Report] archive failed", "client_id", clientID, "error", err)
		} else {
			logger.Log.Infow("[Report] archived", "client_id", clientID, "key", key)
		}
	}

	logger.Log.Infow("[Report] generated", "client_id", clientID, "pages", doc.Pages, "took", time.Since(start))
	return doc, nil
}
