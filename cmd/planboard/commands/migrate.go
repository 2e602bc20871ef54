package commands

import (
	"fmt"

	"github.com/monocle-dev/planboard/db"
	"github.com/monocle-dev/planboard/internal/config"
	"github.com/monocle-dev/planboard/internal/logs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log, err := logs.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		database, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close(database)

		if err := db.MigrateDatabase(database); err != nil {
			return err
		}

		log.WithField("driver", cfg.DBDriver).Info("database migrated")
		return nil
	},
}
