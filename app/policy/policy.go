package policy

import "oakridge-academy/app/models"

// Caller is the authenticated principal with its role set and resolved
// profile links. Profile ids are empty when the caller has no profile of
// that kind; ChildIDs lists the students linked to a parent caller.
type Caller struct {
	UserID    string
	Roles     []string
	StudentID string
	TeacherID string
	ParentID  string
	ChildIDs  []string
}

// Is reports whether the caller holds the given role.
func (c Caller) Is(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Is(models.RoleAdmin) }

// IsStaff reports whether the caller is admin or teacher.
func (c Caller) IsStaff() bool { return c.IsAdmin() || c.Is(models.RoleTeacher) }

func (c Caller) hasChild(studentID string) bool {
	for _, id := range c.ChildIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// CanViewStudent allows staff over any student, a student over their own
// record, and a parent over linked children.
func (c Caller) CanViewStudent(studentID string) bool {
	if c.IsStaff() {
		return true
	}
	if c.Is(models.RoleStudent) && c.StudentID == studentID {
		return true
	}
	return c.Is(models.RoleParent) && c.hasChild(studentID)
}

// CanViewStudentRecords covers attendance, marks and enrollments, which
// share the visibility rules of the student record itself.
func (c Caller) CanViewStudentRecords(studentID string) bool {
	return c.CanViewStudent(studentID)
}

// CanViewInvoice allows admin over any invoice, the billed parent, and
// the billed student.
func (c Caller) CanViewInvoice(inv *models.Invoice) bool {
	if c.IsAdmin() {
		return true
	}
	if c.Is(models.RoleParent) && c.ParentID == inv.ParentID {
		return true
	}
	return c.Is(models.RoleStudent) && c.StudentID == inv.StudentID
}

// CanPayInvoice allows admin to record payments on any invoice and a
// parent to pay their own family's invoices. Students and teachers
// never record payments.
func (c Caller) CanPayInvoice(inv *models.Invoice) bool {
	if c.IsAdmin() {
		return true
	}
	return c.Is(models.RoleParent) && c.ParentID == inv.ParentID
}

// CanViewPayment mirrors invoice visibility for standalone payment rows.
func (c Caller) CanViewPayment(p *models.Payment) bool {
	if c.IsAdmin() {
		return true
	}
	if c.Is(models.RoleParent) && c.ParentID == p.ParentID {
		return true
	}
	return c.Is(models.RoleStudent) && c.StudentID == p.StudentID
}

// CanMarkAttendance allows admin anywhere and a teacher only for classes
// they are assigned to. The assignment is resolved by the caller.
func (c Caller) CanMarkAttendance(assigned bool) bool {
	if c.IsAdmin() {
		return true
	}
	return c.Is(models.RoleTeacher) && assigned
}

// CanRecordMarks follows the attendance rule: admin anywhere, a teacher
// only for their assigned class and subject.
func (c Caller) CanRecordMarks(assigned bool) bool {
	return c.CanMarkAttendance(assigned)
}

// CanViewParent allows staff over any parent and a parent over their own
// record.
func (c Caller) CanViewParent(parentID string) bool {
	if c.IsStaff() {
		return true
	}
	return c.Is(models.RoleParent) && c.ParentID == parentID
}

// CanViewTeacher allows staff over any teacher record and a teacher over
// their own.
func (c Caller) CanViewTeacher(teacherID string) bool {
	if c.IsStaff() {
		return true
	}
	return c.Is(models.RoleTeacher) && c.TeacherID == teacherID
}

// NoticeAudience returns the audience filter for notice listings. Admin
// gets the empty filter and sees everything; other callers see general
// notices plus the audience of their role.
func (c Caller) NoticeAudience() models.NoticeAudience {
	switch {
	case c.IsAdmin():
		return ""
	case c.Is(models.RoleTeacher):
		return models.AudienceTeachers
	case c.Is(models.RoleStudent):
		return models.AudienceStudents
	case c.Is(models.RoleParent):
		return models.AudienceParents
	}
	return models.AudienceAll
}
