package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Tovoson/multiStats/internal/app"
	"github.com/Tovoson/multiStats/internal/config"
	"github.com/Tovoson/multiStats/internal/middleware"
	"github.com/Tovoson/multiStats/pkg/logger"
)

var (
	envFile string

	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "statsctl",
	Short: "Administrative tasks for the multiStats server",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
		if err := godotenv.Load(envFile); err != nil {
			logger.Debug("No env file loaded", map[string]interface{}{"file": envFile})
		}
	},
	SilenceUsage: true,
}

// tokenCmd signs a bearer token accepted by the /api/v1/admin routes.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed admin token",
	RunE:  runToken,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the kpi_daily and stats_period tables",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading config")

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", middleware.RoleAdmin, "Role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenTTL <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	cfg := config.New()
	token, err := middleware.IssueToken(cfg.JWTSecret, tokenSubject, tokenRole, tokenTTL)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.New()

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := app.Migrate(db); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
