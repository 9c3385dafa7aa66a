package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/config"
	"github.com/custodia-labs/ideapad/internal/core/domain"
)

var loginToken bool

var loginCmd = &cobra.Command{
	Use:   "login [user-id]",
	Short: "Set the user the app acts for",
	Long: `Store the user id sent with every backend call.

Use --token to also store a bearer token for the backend; it is read from
the terminal without echo.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored user",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().BoolVar(&loginToken, "token", false, "prompt for a backend bearer token")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if identityService == nil {
		return errIdentityNotConfigured
	}

	if err := identityService.Login(args[0]); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if loginToken {
		if configStore == nil {
			return errConfigNotConfigured
		}
		token, err := readSecret(cmd, "Backend token: ")
		if err != nil {
			return err
		}
		if err := configStore.Set(config.KeyBackendToken, token); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}
	}

	cmd.Printf("Logged in as %s.\n", identityService.Current().UserID)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if identityService == nil {
		return errIdentityNotConfigured
	}
	if err := identityService.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if identityService == nil {
		return errIdentityNotConfigured
	}
	id := identityService.Current()
	if id.IsZero() {
		cmd.Println(domain.NoSessionMessage)
		return nil
	}
	cmd.Printf("Logged in as %s.\n", id.UserID)
	return nil
}
