package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fsmkit/pkg/config"
	"github.com/dmitrymomot/fsmkit/pkg/pg"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres store migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadAppConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(cmd.Context(), pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		return pg.Migrate(cmd.Context(), pool, store.Migrations, pgCfg, log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
