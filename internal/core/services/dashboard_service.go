package services

import (
	"context"
	"time"

	"credit-admin/internal/core/domain"
)

// Stats derives the dashboard aggregate from the current collection
func (l *LoanLedger) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	l.mu.Lock()
	now := l.now()
	loans, err := l.loans.All(ctx)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return ComputeStats(loans, now), nil
}

// ComputeStats aggregates loans into totals and trailing monthly series.
// The last series index is the calendar month containing now.
func ComputeStats(loans []*domain.LoanApplication, now time.Time) *domain.DashboardStats {
	stats := &domain.DashboardStats{
		Months:           monthLabels(now),
		Applications:     make([]int, domain.MonthsInSeries),
		LoansReleased:    make([]int, domain.MonthsInSeries),
		OutstandingLoans: make([]int, domain.MonthsInSeries),
	}

	borrowers := make(map[string]struct{})
	for _, loan := range loans {
		stats.TotalLoans++
		borrowers[loan.UserID] = struct{}{}

		if i := monthIndex(loan.CreatedAt, now); i >= 0 {
			stats.Applications[i]++
		}

		switch loan.Status {
		case domain.LoanPending:
			stats.PendingLoans++
		case domain.LoanVerified:
			stats.VerifiedLoans++
		case domain.LoanApproved:
			stats.ApprovedLoans++
			stats.CashDisbursed += loan.Amount
			if i := monthIndex(loan.UpdatedAt, now); i >= 0 {
				stats.LoansReleased[i]++
			}
		case domain.LoanRejected:
			stats.RejectedLoans++
		}

		if loan.Status == domain.LoanPending || loan.Status == domain.LoanVerified {
			stats.PendingAmount += loan.Amount
			if i := monthIndex(loan.CreatedAt, now); i >= 0 {
				stats.OutstandingLoans[i]++
			}
		}
	}
	stats.TotalBorrowers = len(borrowers)

	return stats
}

// monthIndex maps t onto the trailing window ending at now, or -1 when t
// falls outside it
func monthIndex(t, now time.Time) int {
	t = t.In(now.Location())
	diff := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
	if diff < 0 || diff >= domain.MonthsInSeries {
		return -1
	}
	return domain.MonthsInSeries - 1 - diff
}

func monthLabels(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	labels := make([]string, domain.MonthsInSeries)
	for i := range labels {
		m := first.AddDate(0, i-(domain.MonthsInSeries-1), 0)
		labels[i] = m.Format("Jan 2006")
	}
	return labels
}
