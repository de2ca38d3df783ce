package database

import "oakridge-academy/app/models"

// GetDashboardStats aggregates the headline numbers shown on the admin
// dashboard. Billing figures only count completed payments, matching the
// reconciliation rules.
func GetDashboardStats(q Queryer) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := q.QueryRow(`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM teachers),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM invoices WHERE status NOT IN ('paid', 'waived')),
			(SELECT COUNT(*) FROM invoices WHERE status = 'overdue'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM invoices),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed'),
			(SELECT COALESCE(SUM(total_amount - amount_paid), 0) FROM invoices WHERE status NOT IN ('paid', 'waived'))`,
	).Scan(
		&stats.TotalStudents, &stats.TotalTeachers, &stats.TotalClasses,
		&stats.OpenInvoices, &stats.OverdueInvoices,
		&stats.TotalBilled, &stats.TotalCollected, &stats.OutstandingBalance,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return stats, nil
}
