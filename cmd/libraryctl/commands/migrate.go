package commands

import (
	"fmt"

	"github.com/librarycatalog/backend/internal/database"
	"github.com/spf13/cobra"
)

var steps int

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
	Long: `Manage the embedded schema migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateUp(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations.

Examples:
  libraryctl migrate down              # Roll back the last migration
  libraryctl migrate down --steps 3    # Roll back three migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateDown(db, steps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, dirty, err := database.Version(db)
		if err != nil {
			return err
		}
		if dirty {
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty)\n", version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
}
