// Command migrate applies the database schema and exits. The server also
// runs migrations at startup; this exists for deploy pipelines that
// migrate before rolling the new binary.
package main

import (
	"oakridge-academy/app/config"
	"oakridge-academy/app/database"
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
	log.Info().Msg("migrations applied")
}
