package commands

import (
	"fmt"
	"os"

	"github.com/monocle-dev/planboard/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "planboard",
		Short: "Project planning API: issues, sprints, releases and documentation",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./planboard.yaml)")
	rootCmd.PersistentFlags().String("db-driver", "", "database driver: postgres or sqlite")
	rootCmd.PersistentFlags().String("database-url", "", "database connection string")
	rootCmd.PersistentFlags().String("log-level", "", "log level")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	viper.BindPFlag(config.KeyDBDriver, rootCmd.PersistentFlags().Lookup("db-driver"))
	viper.BindPFlag(config.KeyDatabaseURL, rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads .env, the config file and environment variables.
func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("planboard")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		os.Exit(1)
	}
}
