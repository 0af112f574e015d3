package main

import (
	"github.com/deppfellow/drinks/internal/config"
	"github.com/deppfellow/drinks/internal/handler"
	"github.com/deppfellow/drinks/internal/lib/utils"
	"github.com/deppfellow/drinks/internal/logger"
	"github.com/deppfellow/drinks/internal/metrics"
	"github.com/deppfellow/drinks/internal/repository"
	"github.com/deppfellow/drinks/internal/router"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/deppfellow/drinks/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		cfg.Drinks.Store = config.StoreMemory

		nop := zerolog.Nop()
		srv := &server.Server{
			Config:        cfg,
			Logger:        &nop,
			LoggerService: &logger.LoggerService{},
			Metrics:       metrics.New(),
		}

		services, err := service.NewService(srv, repository.NewRepositories(srv))
		if err != nil {
			return err
		}

		r, err := router.NewRouter(srv, handler.NewHandlers(srv, services))
		if err != nil {
			return err
		}

		return utils.PrintJSON(cmd.OutOrStdout(), r.Routes())
	},
}
