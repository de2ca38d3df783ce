package models

import "github.com/shopspring/decimal"

// DashboardStats aggregates the headline numbers for the admin dashboard.
type DashboardStats struct {
	TotalStudents      int             `json:"total_students"`
	TotalTeachers      int             `json:"total_teachers"`
	TotalClasses       int             `json:"total_classes"`
	OpenInvoices       int             `json:"open_invoices"`
	OverdueInvoices    int             `json:"overdue_invoices"`
	TotalBilled        decimal.Decimal `json:"total_billed"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// InvoiceSummary is the list-view projection of an invoice with the
// student and parent names joined in.
type InvoiceSummary struct {
	Invoice
	StudentName string `json:"student_name"`
	ParentName  string `json:"parent_name"`
}

// MarkWithDetails extends Mark with display fields for result listings.
type MarkWithDetails struct {
	Mark
	StudentName string `json:"student_name"`
	ExamName    string `json:"exam_name"`
	SubjectName string `json:"subject_name"`
	MaxMarks    int    `json:"max_marks"`
}
