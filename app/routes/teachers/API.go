package teachers

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

func GetTeachersAPI(c *fiber.Ctx, db *sql.DB) error {
	teachers, err := database.ListTeachers(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": teachers, "count": len(teachers)})
}

func GetTeacherByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if !auth.CallerFrom(c).CanViewTeacher(id) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	teacher, err := database.GetTeacherByID(db, id)
	if err != nil {
		return err
	}
	if teacher.Assignments, err = database.GetTeacherAssignments(db, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": teacher})
}

type teacherRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	DateOfJoining *string `json:"date_of_joining" validate:"omitempty,datetime=2006-01-02"`
	Password      string  `json:"password" validate:"omitempty,min=8"`
}

func (r *teacherRequest) toModel() *models.Teacher {
	t := &models.Teacher{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
	}
	if r.DateOfJoining != nil {
		if doj, err := time.Parse("2006-01-02", *r.DateOfJoining); err == nil {
			t.DateOfJoining = doj
		}
	}
	return t
}

// CreateTeacherAPI registers a teacher and, when a password is supplied,
// a login identity carrying the teacher role, in one transaction.
func CreateTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req teacherRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	teacher := req.toModel()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if req.Password != "" {
		user := &models.User{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		if err := database.CreateUser(tx, user, models.RoleTeacher); err != nil {
			return err
		}
		teacher.UserID = &user.ID
	}
	if err := database.CreateTeacher(tx, teacher); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": teacher})
}

func UpdateTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req teacherRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	teacher := req.toModel()
	teacher.ID = c.Params("id")

	if err := database.UpdateTeacher(db, teacher); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": teacher})
}

func DeleteTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteTeacher(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "teacher deleted"})
}

// AssignTeacherAPI gives a teacher a class/subject assignment. The
// assignment gates attendance and mark entry for that class.
func AssignTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	type assignRequest struct {
		ClassID   string `json:"class_id" validate:"required,uuid"`
		SubjectID string `json:"subject_id" validate:"required,uuid"`
	}
	var req assignRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	assignment := &models.TeacherClassSubject{
		TeacherID: c.Params("id"),
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
	}
	if err := database.AssignTeacher(db, assignment); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": assignment})
}

func UnassignTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.UnassignTeacher(db, c.Params("assignmentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "assignment removed"})
}
