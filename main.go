package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"oakridge-academy/app/config"
	"oakridge-academy/app/database"
	"oakridge-academy/app/routes/attendance"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/classes"
	"oakridge-academy/app/routes/dashboard"
	"oakridge-academy/app/routes/enrollments"
	"oakridge-academy/app/routes/exams"
	"oakridge-academy/app/routes/fees"
	"oakridge-academy/app/routes/invoices"
	"oakridge-academy/app/routes/notices"
	"oakridge-academy/app/routes/parents"
	"oakridge-academy/app/routes/students"
	"oakridge-academy/app/routes/subjects"
	"oakridge-academy/app/routes/teachers"
	"oakridge-academy/app/routes/users"
	"oakridge-academy/app/services"
)

// errorHandler maps domain errors onto HTTP statuses so handlers can
// return them untranslated.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	var validationErr *database.ValidationError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.As(err, &validationErr):
		code = fiber.StatusBadRequest
	case errors.Is(err, database.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, database.ErrConflict),
		errors.Is(err, database.ErrInvoiceSettled),
		errors.Is(err, database.ErrInUse):
		code = fiber.StatusConflict
	default:
		logger := config.GetLogger()
		logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func main() {
	if err := config.Init(); err != nil {
		panic(err)
	}
	log := config.GetLogger()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	engine := services.NewInvoiceService(config.GetDB(), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.StartOverdueSweep(ctx, 24*time.Hour)

	app := fiber.New(fiber.Config{
		AppName:      "oakridge-academy",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app)
	users.SetupUserRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentRoutes(app)
	teachers.SetupTeacherRoutes(app)
	parents.SetupParentRoutes(app)
	classes.SetupClassRoutes(app)
	subjects.SetupSubjectRoutes(app)
	enrollments.SetupEnrollmentRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	exams.SetupExamRoutes(app)
	fees.SetupFeeRoutes(app)
	invoices.SetupInvoiceRoutes(app, engine)
	notices.SetupNoticeRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "not found")
	})

	addr := config.AppConfig.ListenAddr
	log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
