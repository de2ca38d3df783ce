package services

import (
	"context"
	"time"
)

// StartOverdueSweep runs the overdue sweep once at startup and then on
// every tick until the context is cancelled. The sweep flips open
// invoices past their due date to overdue; invoices already settled are
// never touched.
func (s *InvoiceService) StartOverdueSweep(ctx context.Context, interval time.Duration) {
	go func() {
		s.SweepOverdue(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOverdue(ctx)
			}
		}
	}()
}

// SweepOverdue reconciles every open invoice whose due date has passed.
// Each invoice runs in its own transaction so one conflict does not
// abort the sweep.
func (s *InvoiceService) SweepOverdue(ctx context.Context) {
	today := startOfDay(s.now())
	ids, err := s.store.ListOpenInvoicesPastDue(s.db, today)
	if err != nil {
		s.log.Error().Err(err).Msg("overdue sweep query failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	flipped := 0
	for _, id := range ids {
		if _, err := s.Recompute(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("invoice_id", id).Msg("overdue sweep skipped invoice")
			continue
		}
		flipped++
	}
	s.log.Info().Int("checked", len(ids)).Int("updated", flipped).Msg("overdue sweep complete")
}
