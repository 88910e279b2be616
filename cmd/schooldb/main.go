package main

import (
	"context"
	"os"

	"schooldb/internal/config"
	"schooldb/internal/schoolsapi"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg config.Cfg

var rootCmd = &cobra.Command{
	Use:   "schooldb",
	Short: "Browse the public school registry",
	Long: `schooldb lists schools from the public school registry API.

Subcommands:
  serve      - Serve list sessions over HTTP for a UI
  schools    - Print one or more pages of schools
  regions    - Print the region filter values
  districts  - Print the federal district filter values`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		setupLogging(cfg.App)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, schoolsCmd, regionsCmd, districtsCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setupLogging(app config.AppCfg) {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil || app.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if app.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newClient() *schoolsapi.Client {
	return schoolsapi.New(schoolsapi.NewHTTPClient(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.TimeoutSec))
}
