package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/librarycatalog/backend/internal/database"
	"github.com/librarycatalog/backend/internal/logger"
	"github.com/librarycatalog/backend/internal/repositories"
	"github.com/librarycatalog/backend/internal/services"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
	userSearch    string
	userPage      int
	userLimit     int
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an administrator account if no user with the same username exists.

The password may also be given through ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			adminPassword = os.Getenv("ADMIN_PASSWORD")
		}
		if adminPassword == "" {
			return fmt.Errorf("--password or ADMIN_PASSWORD is required")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateUp(db); err != nil {
			return err
		}

		// The CLI never issues tokens
		authService := services.NewAuthService(repositories.NewUserRepository(db, logger.Logger), nil, logger.Logger)
		created, err := authService.EnsureAdmin(cmd.Context(), adminUsername, adminEmail, adminPassword)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(cmd.OutOrStdout(), "user %q already exists\n", adminUsername)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", adminUsername)
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List and moderate users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		adminService := services.NewAdminService(repositories.NewUserRepository(db, logger.Logger), logger.Logger)
		resp, err := adminService.ListUsers(cmd.Context(), userSearch, userPage, userLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tBANNED\tCREATED")
		for _, u := range resp.Users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.Username, u.Email, u.Role, u.IsBanned, u.CreatedAt)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		p := resp.Pagination
		fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d users)\n", p.Page, p.TotalPages, p.Total)
		return nil
	},
}

func banCommand(use, short string, banned bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil || userID <= 0 {
				return fmt.Errorf("invalid user ID %q", args[0])
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			adminService := services.NewAdminService(repositories.NewUserRepository(db, logger.Logger), logger.Logger)
			if err := adminService.SetBanned(cmd.Context(), userID, banned); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d updated\n", userID)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(createAdminCmd, usersCmd)
	usersCmd.AddCommand(
		usersListCmd,
		banCommand("ban", "Ban a user", true),
		banCommand("unban", "Lift a user's ban", false),
	)

	createAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "Admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@example.com", "Admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")

	usersListCmd.Flags().StringVar(&userSearch, "search", "", "Username or email substring")
	usersListCmd.Flags().IntVar(&userPage, "page", 1, "Page number")
	usersListCmd.Flags().IntVar(&userLimit, "limit", 20, "Page size")
}
