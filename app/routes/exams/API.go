package exams

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

func GetExamsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.ExamFilters{
		ClassID:   c.Query("class_id"),
		SubjectID: c.Query("subject_id"),
		TeacherID: c.Query("teacher_id"),
	}
	exams, err := database.ListExams(db, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": exams, "count": len(exams)})
}

func GetExamByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	exam, err := database.GetExamByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": exam})
}

type examRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	ExamDate    string  `json:"exam_date" validate:"required,datetime=2006-01-02"`
	ClassID     string  `json:"class_id" validate:"required,uuid"`
	SubjectID   string  `json:"subject_id" validate:"required,uuid"`
	MaxMarks    int     `json:"max_marks" validate:"omitempty,gt=0"`
}

// CreateExamAPI schedules an exam. A teacher must be assigned to the
// class and subject; admin supplies teacher_id explicitly.
func CreateExamAPI(c *fiber.Ctx, db *sql.DB) error {
	type createExamRequest struct {
		Name        string  `json:"name" validate:"required"`
		Description *string `json:"description"`
		ExamDate    string  `json:"exam_date" validate:"required,datetime=2006-01-02"`
		ClassID     string  `json:"class_id" validate:"required,uuid"`
		SubjectID   string  `json:"subject_id" validate:"required,uuid"`
		MaxMarks    int     `json:"max_marks" validate:"omitempty,gt=0"`
		TeacherID   string  `json:"teacher_id" validate:"omitempty,uuid"`
	}
	var req createExamRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	caller := auth.CallerFrom(c)
	teacherID := req.TeacherID
	if !caller.IsAdmin() {
		teacherID = caller.TeacherID
	}
	if teacherID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "teacher_id is required")
	}

	assigned, err := database.TeacherAssigned(db, teacherID, req.ClassID, req.SubjectID)
	if err != nil {
		return err
	}
	if !caller.CanRecordMarks(assigned) {
		return fiber.NewError(fiber.StatusForbidden, "not assigned to this class and subject")
	}

	examDate, _ := time.Parse("2006-01-02", req.ExamDate)
	exam := &models.Exam{
		Name:        req.Name,
		Description: req.Description,
		ExamDate:    examDate,
		ClassID:     req.ClassID,
		SubjectID:   req.SubjectID,
		TeacherID:   teacherID,
		MaxMarks:    req.MaxMarks,
	}
	if err := database.CreateExam(db, exam); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": exam})
}

func UpdateExamAPI(c *fiber.Ctx, db *sql.DB) error {
	var req examRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	exam, err := database.GetExamByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := requireExamAccess(c, db, exam); err != nil {
		return err
	}

	exam.Name = req.Name
	exam.Description = req.Description
	if date, err := time.Parse("2006-01-02", req.ExamDate); err == nil {
		exam.ExamDate = date
	}
	if req.MaxMarks > 0 {
		exam.MaxMarks = req.MaxMarks
	}
	if err := database.UpdateExam(db, exam); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": exam})
}

func DeleteExamAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteExam(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "exam deleted"})
}

// RecordMarksAPI upserts marks for an exam. Marks above the exam's
// maximum are rejected. Re-entering a student's mark replaces it.
func RecordMarksAPI(c *fiber.Ctx, db *sql.DB) error {
	type markEntry struct {
		StudentID     string `json:"student_id" validate:"required,uuid"`
		MarksObtained int    `json:"marks_obtained" validate:"gte=0"`
	}
	var req struct {
		Entries []markEntry `json:"entries" validate:"required,min=1,dive"`
	}
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	exam, err := database.GetExamByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := requireExamAccess(c, db, exam); err != nil {
		return err
	}
	for _, entry := range req.Entries {
		if entry.MarksObtained > exam.MaxMarks {
			return fiber.NewError(fiber.StatusBadRequest, "marks exceed the exam maximum")
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	marks := make([]*models.Mark, 0, len(req.Entries))
	for _, entry := range req.Entries {
		mark := &models.Mark{
			ExamID:        exam.ID,
			StudentID:     entry.StudentID,
			SubjectID:     &exam.SubjectID,
			ClassID:       &exam.ClassID,
			MarksObtained: entry.MarksObtained,
		}
		if err := database.RecordMark(tx, mark); err != nil {
			return err
		}
		marks = append(marks, mark)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": marks, "count": len(marks)})
}

func GetMarksAPI(c *fiber.Ctx, db *sql.DB) error {
	examID := c.Params("id")
	studentID := c.Query("student_id")

	caller := auth.CallerFrom(c)
	if !caller.IsStaff() {
		if studentID == "" || !caller.CanViewStudentRecords(studentID) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
	}

	marks, err := database.ListMarks(db, examID, studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": marks, "count": len(marks)})
}

// GetStudentMarksAPI returns a student's marks across exams.
func GetStudentMarksAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("studentId")
	if !auth.CallerFrom(c).CanViewStudentRecords(studentID) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	marks, err := database.ListMarks(db, "", studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": marks, "count": len(marks)})
}

func DeleteMarkAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteMark(db, c.Params("markId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "mark deleted"})
}

// requireExamAccess lets admin through and teachers only when assigned
// to the exam's class and subject.
func requireExamAccess(c *fiber.Ctx, db *sql.DB, exam *models.Exam) error {
	caller := auth.CallerFrom(c)
	assigned := false
	if caller.TeacherID != "" {
		var err error
		if assigned, err = database.TeacherAssigned(db, caller.TeacherID, exam.ClassID, exam.SubjectID); err != nil {
			return err
		}
	}
	if !caller.CanRecordMarks(assigned) {
		return fiber.NewError(fiber.StatusForbidden, "not assigned to this class and subject")
	}
	return nil
}
