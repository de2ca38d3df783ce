package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oakridge-academy/app/models"
)

var (
	admin   = Caller{UserID: "u1", Roles: []string{models.RoleAdmin}}
	teacher = Caller{UserID: "u2", Roles: []string{models.RoleTeacher}, TeacherID: "t1"}
	student = Caller{UserID: "u3", Roles: []string{models.RoleStudent}, StudentID: "s1"}
	parent  = Caller{UserID: "u4", Roles: []string{models.RoleParent}, ParentID: "p1", ChildIDs: []string{"s1", "s2"}}
)

func TestCanViewStudent(t *testing.T) {
	assert.True(t, admin.CanViewStudent("s9"))
	assert.True(t, teacher.CanViewStudent("s9"))

	assert.True(t, student.CanViewStudent("s1"))
	assert.False(t, student.CanViewStudent("s2"))

	assert.True(t, parent.CanViewStudent("s1"))
	assert.True(t, parent.CanViewStudent("s2"))
	assert.False(t, parent.CanViewStudent("s9"))
}

func TestCanViewInvoice(t *testing.T) {
	inv := &models.Invoice{StudentID: "s1", ParentID: "p1"}
	other := &models.Invoice{StudentID: "s9", ParentID: "p9"}

	assert.True(t, admin.CanViewInvoice(inv))
	assert.True(t, parent.CanViewInvoice(inv))
	assert.True(t, student.CanViewInvoice(inv))

	assert.False(t, parent.CanViewInvoice(other))
	assert.False(t, student.CanViewInvoice(other))
	assert.False(t, teacher.CanViewInvoice(inv))
}

func TestCanPayInvoice(t *testing.T) {
	inv := &models.Invoice{StudentID: "s1", ParentID: "p1"}

	assert.True(t, admin.CanPayInvoice(inv))
	assert.True(t, parent.CanPayInvoice(inv))

	// Students see their invoices but never record payments.
	assert.False(t, student.CanPayInvoice(inv))
	assert.False(t, teacher.CanPayInvoice(inv))
	assert.False(t, parent.CanPayInvoice(&models.Invoice{ParentID: "p9"}))
}

func TestCanViewPayment(t *testing.T) {
	payment := &models.Payment{StudentID: "s1", ParentID: "p1"}

	assert.True(t, admin.CanViewPayment(payment))
	assert.True(t, parent.CanViewPayment(payment))
	assert.True(t, student.CanViewPayment(payment))
	assert.False(t, teacher.CanViewPayment(payment))
}

func TestCanMarkAttendance(t *testing.T) {
	assert.True(t, admin.CanMarkAttendance(false))
	assert.True(t, teacher.CanMarkAttendance(true))
	assert.False(t, teacher.CanMarkAttendance(false))
	assert.False(t, student.CanMarkAttendance(true))
	assert.False(t, parent.CanMarkAttendance(true))
}

func TestCanViewParentAndTeacher(t *testing.T) {
	assert.True(t, parent.CanViewParent("p1"))
	assert.False(t, parent.CanViewParent("p9"))
	assert.True(t, admin.CanViewParent("p9"))

	assert.True(t, teacher.CanViewTeacher("t1"))
	assert.False(t, teacher.CanViewTeacher("t9"))
	assert.True(t, admin.CanViewTeacher("t9"))
}

func TestNoticeAudience(t *testing.T) {
	assert.Equal(t, models.NoticeAudience(""), admin.NoticeAudience())
	assert.Equal(t, models.AudienceTeachers, teacher.NoticeAudience())
	assert.Equal(t, models.AudienceStudents, student.NoticeAudience())
	assert.Equal(t, models.AudienceParents, parent.NoticeAudience())
}

func TestMultiRoleCaller(t *testing.T) {
	both := Caller{Roles: []string{models.RoleTeacher, models.RoleParent}, TeacherID: "t1", ParentID: "p1", ChildIDs: []string{"s3"}}
	assert.True(t, both.IsStaff())
	assert.True(t, both.CanViewStudent("s3"))
	assert.True(t, both.CanPayInvoice(&models.Invoice{ParentID: "p1"}))
}
