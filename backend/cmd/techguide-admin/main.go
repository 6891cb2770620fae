// Command techguide-admin runs maintenance tasks against the TechGuide
// database: schema migration, privileged account creation and catalog
// seeding.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"techguide/backend/config"
	"techguide/backend/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	logger := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, Debug: cfg.IsDevelopment()})

	open := func() (*gorm.DB, error) { return utils.InitDB(cfg) }
	if err := newRootCmd(cfg, open).ExecuteContext(logger.WithContext(ctx)); err != nil {
		os.Exit(1)
	}
}
