package attendance

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

func GetAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	caller := auth.CallerFrom(c)
	filters := database.AttendanceFilters{
		StudentID: c.Query("student_id"),
		ClassID:   c.Query("class_id"),
		SubjectID: c.Query("subject_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	}

	// Students and parents only see their own family's attendance.
	if !caller.IsStaff() {
		if filters.StudentID == "" || !caller.CanViewStudentRecords(filters.StudentID) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
	}

	records, err := database.ListAttendance(db, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": records, "count": len(records)})
}

type markRequest struct {
	ClassID   string `json:"class_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Entries   []struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
		Status    string `json:"status" validate:"required,oneof=present absent late excused"`
	} `json:"entries" validate:"required,min=1,dive"`
}

// MarkAttendanceAPI upserts attendance for a lesson. A teacher must be
// assigned to the class and subject; admin can mark anywhere. Re-marking
// a student for the same lesson replaces the earlier status.
func MarkAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	var req markRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	caller := auth.CallerFrom(c)
	assigned := false
	if caller.TeacherID != "" {
		var err error
		if assigned, err = database.TeacherAssigned(db, caller.TeacherID, req.ClassID, req.SubjectID); err != nil {
			return err
		}
	}
	if !caller.CanMarkAttendance(assigned) {
		return fiber.NewError(fiber.StatusForbidden, "not assigned to this class and subject")
	}

	date := time.Now()
	if req.Date != "" {
		if parsed, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = parsed
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	records := make([]*models.Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		record := &models.Attendance{
			StudentID:      entry.StudentID,
			ClassID:        req.ClassID,
			SubjectID:      req.SubjectID,
			AttendanceDate: date,
			Status:         models.AttendanceStatus(entry.Status),
		}
		if err := database.MarkAttendance(tx, record); err != nil {
			return err
		}
		records = append(records, record)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": records, "count": len(records)})
}

func DeleteAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteAttendance(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "attendance record deleted"})
}
