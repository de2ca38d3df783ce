// Command seed bootstraps the first admin login. Safe to re-run; it
// exits cleanly when the admin already exists.
package main

import (
	"errors"
	"os"

	"oakridge-academy/app/config"
	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
)

func main() {
	if err := config.Init(); err != nil {
		panic(err)
	}
	log := config.GetLogger()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	email := envOr("ADMIN_EMAIL", "admin@oakridge.local")
	password := envOr("ADMIN_PASSWORD", "changeme123")

	if _, err := database.GetUserByEmail(config.GetDB(), email); err == nil {
		log.Info().Str("email", email).Msg("admin already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}

	admin := &models.User{
		Email:     email,
		Password:  password,
		FirstName: "System",
		LastName:  "Administrator",
	}
	if err := database.CreateUser(config.GetDB(), admin, models.RoleAdmin); err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}
	log.Info().Str("email", email).Msg("admin created")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
