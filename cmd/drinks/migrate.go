package main

import (
	"github.com/deppfellow/drinks/internal/config"
	"github.com/deppfellow/drinks/internal/database"
	"github.com/deppfellow/drinks/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		log := logger.NewLogger(cfg.Observability, nil)
		return database.Migrate(cmd.Context(), &log, cfg)
	},
}
