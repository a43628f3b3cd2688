package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lab-website/cmd/server"
	"lab-website/config"
	"lab-website/internal/global/database"
	"lab-website/internal/global/response"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "labsite",
	Short: "Research lab website",
	Long: `labsite serves the public pages of the research lab website
together with the session-authenticated admin area.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		server.Init()
		server.Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	Run: func(cmd *cobra.Command, args []string) {
		server.Migrate()
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var (
	adminUsername string
	adminPassword string
)

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	Long:  "Create an admin account. Fails when the username is already taken.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Init()
		admin := config.Get().Admin
		if adminUsername != "" {
			admin.Username = adminUsername
		}
		if adminPassword != "" {
			admin.Password = adminPassword
		}
		if admin.Username == "" || admin.Password == "" {
			return fmt.Errorf("username and password are required")
		}
		database.Init()
		if err := server.CreateAdmin(context.Background(), admin); err != nil {
			var e *response.Error
			if errors.As(err, &e) && e.Fields["username"] != "" {
				return fmt.Errorf("admin %q: %s", admin.Username, e.Fields["username"])
			}
			return err
		}
		fmt.Printf("admin %q created\n", admin.Username)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username (defaults to config)")
	adminCreateCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password (defaults to config)")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
