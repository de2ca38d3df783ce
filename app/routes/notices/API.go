package notices

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

// GetNoticesAPI lists notices visible to the caller's audience. Admin
// sees everything including expired and future-dated notices.
func GetNoticesAPI(c *fiber.Ctx, db *sql.DB) error {
	caller := auth.CallerFrom(c)

	activeOn := time.Now()
	if caller.IsAdmin() {
		activeOn = time.Time{}
	}

	notices, err := database.ListNotices(db, caller.NoticeAudience(), activeOn)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": notices, "count": len(notices)})
}

func GetNoticeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	notice, err := database.GetNoticeByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": notice})
}

type noticeRequest struct {
	Title       string  `json:"title" validate:"required"`
	Content     string  `json:"content" validate:"required"`
	PublishDate string  `json:"publish_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate  *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Audience    string  `json:"audience" validate:"omitempty,oneof=all teachers students parents"`
}

func (r *noticeRequest) toModel() *models.Notice {
	n := &models.Notice{
		Title:    r.Title,
		Content:  r.Content,
		Audience: models.NoticeAudience(r.Audience),
	}
	if r.PublishDate != "" {
		if date, err := time.Parse("2006-01-02", r.PublishDate); err == nil {
			n.PublishDate = date
		}
	}
	if r.ExpiryDate != nil {
		if date, err := time.Parse("2006-01-02", *r.ExpiryDate); err == nil {
			n.ExpiryDate = &date
		}
	}
	return n
}

func CreateNoticeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req noticeRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	notice := req.toModel()
	if err := database.CreateNotice(db, notice); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": notice})
}

func UpdateNoticeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req noticeRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	notice := req.toModel()
	notice.ID = c.Params("id")
	if notice.Audience == "" {
		notice.Audience = models.AudienceAll
	}
	if notice.PublishDate.IsZero() {
		notice.PublishDate = time.Now()
	}
	if err := database.UpdateNotice(db, notice); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": notice})
}

func DeleteNoticeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteNotice(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "notice deleted"})
}

// --- Holidays ---

func GetHolidaysAPI(c *fiber.Ctx, db *sql.DB) error {
	holidays, err := database.ListHolidays(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": holidays, "count": len(holidays)})
}

type holidayRequest struct {
	Title       string  `json:"title" validate:"required"`
	HolidayDate string  `json:"holiday_date" validate:"required,datetime=2006-01-02"`
	Description *string `json:"description"`
}

func CreateHolidayAPI(c *fiber.Ctx, db *sql.DB) error {
	var req holidayRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	date, _ := time.Parse("2006-01-02", req.HolidayDate)
	holiday := &models.Holiday{Title: req.Title, HolidayDate: date, Description: req.Description}
	if err := database.CreateHoliday(db, holiday); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": holiday})
}

func UpdateHolidayAPI(c *fiber.Ctx, db *sql.DB) error {
	var req holidayRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	date, _ := time.Parse("2006-01-02", req.HolidayDate)
	holiday := &models.Holiday{
		ID:          c.Params("id"),
		Title:       req.Title,
		HolidayDate: date,
		Description: req.Description,
	}
	if err := database.UpdateHoliday(db, holiday); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": holiday})
}

func DeleteHolidayAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteHoliday(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "holiday deleted"})
}
