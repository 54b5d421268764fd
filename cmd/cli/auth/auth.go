package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crucial707/blogapi/cmd/cli/client"
	"github.com/crucial707/blogapi/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), registerCmd(), logoutCmd())
}

// ==========================
// Login
// ==========================

// loginCmd logs in and stores the JWT token locally.
func loginCmd() *cobra.Command {
	var email, password, name string
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the blog API",
		Long:  "Authenticate with the blog API and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			// Optionally register the user first
			if register {
				if err := registerUser(email, password, name); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
			}

			var loginResp struct {
				Token string `json:"token"`
			}
			if err := client.Call(http.MethodPost, "/auth/login", "", map[string]string{
				"email":    email,
				"password": password,
			}, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return errors.New("login succeeded but no token returned")
			}

			if err := config.SaveToken(loginResp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&name, "name", "", "Display name (with --register)")
	cmd.Flags().BoolVar(&register, "register", false, "Register the account before logging in")

	return cmd
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			if err := registerUser(email, password, name); err != nil {
				return err
			}
			fmt.Println("User registered successfully! You can now login.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (8-72 characters)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}

func registerUser(email, password, name string) error {
	payload := map[string]string{"email": email, "password": password}
	if name != "" {
		payload["name"] = name
	}
	return client.Call(http.MethodPost, "/auth/register", "", payload, nil)
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.ClearToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println("No user logged in.")
				return nil
			}
			fmt.Println("Logged out successfully.")
			return nil
		},
	}
}
