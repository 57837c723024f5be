package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/podradio/internal/database"
	"github.com/killallgit/podradio/internal/models"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the registry database schema.

Available subcommands:
  up      - Create or update the registry tables
  down    - Drop the registry tables
  status  - Show which tables exist and their row counts`,
}

// migrateUpCmd applies migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the registry tables",
	RunE:  runMigrateUp,
}

// migrateDownCmd drops the registry tables
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the registry tables",
	Long: `Drop every registry table. Imported feeds and singles are lost.

You are asked for confirmation unless --yes is given.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateDownCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		fmt.Fprintf(out, "Would migrate %d models in %s\n", len(models.AllModels()), appConfig.Database.Path)
		return nil
	}

	db, err := database.InitializeWithMigrations(appConfig.Database.Path, appConfig.Database.Verbose)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseMigration, "migration failed")
	}
	defer db.Close()

	fmt.Fprintf(out, "Migrated %d models in %s\n", len(models.AllModels()), appConfig.Database.Path)
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		fmt.Fprintf(out, "Would drop %d tables in %s\n", len(models.AllModels()), appConfig.Database.Path)
		return nil
	}

	// Confirmation prompt for destructive action
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprintf(out, "WARNING: This will drop all registry tables in %s. Continue? (y/N): ", appConfig.Database.Path)
		var response string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Rollback cancelled")
			return nil
		}
	}

	db, err := openExisting()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DropAll(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseMigration, "rollback failed")
	}
	fmt.Fprintln(out, "Registry tables dropped")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	db, err := openExisting()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := db.Status()
	if err != nil {
		return apperrors.DatabaseError("status", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Database: %s\n\n", appConfig.Database.Path)
	for _, s := range status {
		state := "missing"
		if s.Exists {
			state = fmt.Sprintf("present (%d rows)", s.Rows)
		}
		fmt.Fprintf(out, "  %-20s %s\n", s.Table, state)
	}
	return nil
}

// openExisting opens the configured database without migrating it
func openExisting() (*database.DB, error) {
	if appConfig.Database.Path == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfigRequired, "database.path is not configured")
	}
	db, err := database.Initialize(appConfig.Database.Path, appConfig.Database.Verbose)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "cannot open database")
	}
	return db, nil
}
