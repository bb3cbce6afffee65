// Package commands implements the libraryctl maintenance CLI
package commands

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/librarycatalog/backend/internal/database"
	"github.com/librarycatalog/backend/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbPath   string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "libraryctl",
	Short: "Maintenance tool for the library catalog database",
	Long: `libraryctl runs maintenance tasks against the library catalog SQLite database
without starting the HTTP server.

The database path defaults to DB_PATH from the environment or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()

	defaultDB := os.Getenv("DB_PATH")
	if defaultDB == "" {
		defaultDB = filepath.Join("data", "library.db")
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "Path to the SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// openDB connects to the database named by the --db flag
func openDB() (*sql.DB, error) {
	db, err := database.Connect(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
