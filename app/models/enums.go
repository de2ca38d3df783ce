package models

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Excused AttendanceStatus = "excused"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// RelationshipType defines the relationship of a parent/guardian to a student.
type RelationshipType string

const (
	Father   RelationshipType = "father"
	Mother   RelationshipType = "mother"
	Guardian RelationshipType = "guardian"
	OtherRel RelationshipType = "other"
)

// PaymentStatus defines the status of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// InvoiceStatus defines the lifecycle status of an invoice.
type InvoiceStatus string

const (
	InvoiceOutstanding   InvoiceStatus = "outstanding"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceWaived        InvoiceStatus = "waived"
)

// Settled reports whether an invoice in this status accepts no further payments.
func (s InvoiceStatus) Settled() bool {
	return s == InvoicePaid || s == InvoiceWaived
}

// EnrollmentStatus defines the status of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// NoticeAudience defines who a notice is published to.
type NoticeAudience string

const (
	AudienceAll      NoticeAudience = "all"
	AudienceStudents NoticeAudience = "students"
	AudienceTeachers NoticeAudience = "teachers"
	AudienceParents  NoticeAudience = "parents"
)

// Role names seeded at migration time.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)
