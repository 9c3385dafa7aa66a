// Package cli implements the ideapad command line. Commands are plain cobra
// commands registered on rootCmd; their dependencies are injected by the
// composition root through the Set* functions before Execute runs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/config"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// version is set by the composition root, usually from build flags.
var version = "dev"

var (
	verbose bool
	logFile string
	logOut  *os.File
)

// Injected dependencies.
var (
	ideaService     driving.IdeaService
	pageService     driving.PageService
	tagService      driving.TagService
	identityService driving.IdentityService
	configStore     driven.ConfigStore
	runtimeConfig   *config.Config
)

// Services groups the driving ports used by the commands.
type Services struct {
	Ideas    driving.IdeaService
	Pages    driving.PageService
	Tags     driving.TagService
	Identity driving.IdentityService
}

var rootCmd = &cobra.Command{
	Use:   "ideapad",
	Short: "Capture quick ideas and write hashtag-linked pages",
	Long: `ideapad captures short ideas, keeps rich-text pages and links both
through #hashtags.

Run "ideapad tui" for the three-pane interface, or use the idea, page and
tag commands directly. "ideapad serve" starts a local development backend.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write verbose logs to this file instead of stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	ideaService = s.Ideas
	pageService = s.Pages
	tagService = s.Tags
	identityService = s.Identity
}

// SetConfig injects the resolved configuration and the store it came from.
func SetConfig(cfg *config.Config, store driven.ConfigStore) {
	runtimeConfig = cfg
	configStore = store
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logOut = f
	logger.SetOutput(f)
	return nil
}

func closeLog() {
	if logOut == nil {
		return
	}
	logger.SetOutput(os.Stderr)
	_ = logOut.Close()
	logOut = nil
}

// currentConfig returns the injected configuration or the defaults.
func currentConfig() *config.Config {
	if runtimeConfig != nil {
		return runtimeConfig
	}
	return config.Defaults()
}

// userFailure carries the user-facing text of a failed operation while
// keeping the underlying error for errors.Is checks.
type userFailure struct {
	msg string
	err error
}

func (e *userFailure) Error() string { return e.msg }

func (e *userFailure) Unwrap() error { return e.err }

// failed logs err and converts it into the text f prescribes.
func failed(f domain.Failure, err error) error {
	if err == nil {
		return nil
	}
	logger.Warn("%v", err)
	return &userFailure{msg: f.Message(err), err: err}
}

var (
	errIdeasNotConfigured    = errors.New("idea service not configured")
	errPagesNotConfigured    = errors.New("page service not configured")
	errTagsNotConfigured     = errors.New("tag service not configured")
	errIdentityNotConfigured = errors.New("identity service not configured")
	errConfigNotConfigured   = errors.New("config store not configured")
)
