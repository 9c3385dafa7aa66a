package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show the resolved settings or change a value in the config file.

Settings are read from built-in defaults, then ~/.ideapad/config.toml, then
IDEAPAD_* environment variables (for example IDEAPAD_BACKEND_URL).`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a value in the config file",
	Long: `Set a value in the config file. Known keys:

  backend.url            backend root URL
  backend.token          bearer token sent to the backend
  backend.timeout        request timeout, e.g. 10s (0 disables)
  serve.addr             development backend listen address
  serve.data_dir         development backend data directory
  serve.memory           keep development backend data in memory
  serve.rate_limit       requests per second (0 disables)
  serve.burst            rate limiter burst
  serve.allowed_origins  comma-separated CORS origins
  echo.addr              echo relay listen address`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a value from the config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()

	if configStore != nil {
		cmd.Printf("Config file: %s\n\n", configStore.Path())
	}
	cmd.Println("Backend:")
	cmd.Printf("  URL:      %s\n", cfg.BackendURL)
	cmd.Printf("  Token:    %s\n", maskSecret(cfg.BackendToken))
	cmd.Printf("  Timeout:  %s\n", cfg.BackendTimeout)
	cmd.Println()
	cmd.Println("Development backend:")
	cmd.Printf("  Address:  %s\n", cfg.ServeAddr)
	if cfg.ServeMemory {
		cmd.Println("  Storage:  memory")
	} else {
		dir := cfg.ServeDataDir
		if dir == "" {
			dir = "~/.ideapad/data"
		}
		cmd.Printf("  Storage:  %s\n", dir)
	}
	cmd.Printf("  Rate:     %g/s (burst %d)\n", cfg.RateLimit, cfg.Burst)
	cmd.Printf("  Origins:  %s\n", strings.Join(cfg.AllowedOrigins, ", "))
	cmd.Println()
	cmd.Printf("Echo relay: %s\n", cfg.EchoAddr)

	if identityService != nil {
		cmd.Println()
		if id := identityService.Current(); !id.IsZero() {
			cmd.Printf("User: %s\n", id.UserID)
		} else {
			cmd.Println("User: (not logged in)")
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errConfigNotConfigured
	}

	key, raw := args[0], args[1]
	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	cmd.Printf("%s updated.\n", key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errConfigNotConfigured
	}
	if err := configStore.Delete(args[0]); err != nil {
		return fmt.Errorf("removing %s: %w", args[0], err)
	}
	cmd.Printf("%s removed.\n", args[0])
	return nil
}

// parseConfigValue converts raw into the type stored for key.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case config.KeyBackendURL, config.KeyBackendToken, config.KeyBackendTimeout,
		config.KeyServeAddr, config.KeyServeDataDir, config.KeyEchoAddr:
		return raw, nil
	case config.KeyServeMemory:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false", key)
		}
		return b, nil
	case config.KeyServeRateLimit:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%s: expected a non-negative number", key)
		}
		return f, nil
	case config.KeyServeBurst:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: expected a non-negative integer", key)
		}
		return int64(n), nil
	case config.KeyServeOrigins:
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins, nil
	default:
		return nil, fmt.Errorf("unknown config key %q", key)
	}
}

// maskSecret shows only the last four characters of s.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
