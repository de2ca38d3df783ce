package students

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.StudentFilters{
		Search:  c.Query("search"),
		ClassID: c.Query("class_id"),
		Gender:  c.Query("gender"),
		Limit:   c.QueryInt("limit", 0),
		Offset:  c.QueryInt("offset", 0),
	}
	students, err := database.ListStudents(db, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": students, "count": len(students)})
}

func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if !auth.CallerFrom(c).CanViewStudent(id) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	student, err := database.GetStudentByID(db, id)
	if err != nil {
		return err
	}
	if student.Parents, err = database.GetStudentParents(db, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

type studentRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	AdmissionDate *string `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
	ClassID       *string `json:"class_id" validate:"omitempty,uuid"`
	Password      string  `json:"password" validate:"omitempty,min=8"`
}

func (r *studentRequest) toModel() *models.Student {
	s := &models.Student{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		ClassID:   r.ClassID,
	}
	if r.Gender != nil {
		g := models.Gender(*r.Gender)
		s.Gender = &g
	}
	if r.DateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *r.DateOfBirth); err == nil {
			s.DateOfBirth = &dob
		}
	}
	if r.AdmissionDate != nil {
		if adm, err := time.Parse("2006-01-02", *r.AdmissionDate); err == nil {
			s.AdmissionDate = adm
		}
	}
	return s
}

// CreateStudentAPI registers a student and, when a password is supplied,
// a login identity carrying the student role, in one transaction.
func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req studentRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	student := req.toModel()

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
		if err := database.CreateUser(tx, user, models.RoleStudent); err != nil {
			return err
		}
		student.UserID = &user.ID
	}
	if err := database.CreateStudent(tx, student); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": student})
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req studentRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	student := req.toModel()
	student.ID = c.Params("id")

	if err := database.UpdateStudent(db, student); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteStudent(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "student deleted"})
}

func LinkParentAPI(c *fiber.Ctx, db *sql.DB) error {
	type linkRequest struct {
		ParentID     string `json:"parent_id" validate:"required,uuid"`
		Relationship string `json:"relationship" validate:"omitempty,oneof=father mother guardian"`
	}
	var req linkRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	link := &models.StudentParent{
		StudentID:    c.Params("id"),
		ParentID:     req.ParentID,
		Relationship: models.RelationshipType(req.Relationship),
	}
	if err := database.LinkParent(db, link); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": link})
}

func UnlinkParentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.UnlinkParent(db, c.Params("id"), c.Params("parentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "parent unlinked"})
}
