package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Ideas    driving.IdeaService
	Pages    driving.PageService
	Tags     driving.TagService
	Identity driving.IdentityService
	Session  driving.DocumentSession

	// Changes signals that the stored identity changed outside the TUI.
	Changes <-chan struct{}
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var errNotTerminal = errors.New("the TUI needs an interactive terminal")

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the three-pane terminal interface.

The left pane lists "Capture Quick Ideas", "Hashtag Messages" and your
pages. The center pane shows the selection and the right pane shows the
ideas or messages of a hashtag.

Controls:
  Tab        - Next pane
  ↑/k, ↓/j   - Navigate
  Enter      - Open / Save
  Ctrl+N     - New page
  Ctrl+B     - Collapse navigation
  Ctrl+W     - Close center pane
  Ctrl+X     - Close detail pane
  F1         - Help
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
		return errNotTerminal
	}

	ports := &tui.Ports{}
	if tuiConfig != nil {
		ports.Ideas = tuiConfig.Ideas
		ports.Pages = tuiConfig.Pages
		ports.Tags = tuiConfig.Tags
		ports.Identity = tuiConfig.Identity
		ports.Session = tuiConfig.Session
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// Log lines on stderr would tear the alternate screen.
	if logFile == "" {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if tuiConfig != nil && tuiConfig.Changes != nil {
		go forwardChanges(p, tuiConfig.Changes)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// forwardChanges relays identity changes into the running program until
// changes is closed.
func forwardChanges(p *tea.Program, changes <-chan struct{}) {
	for range changes {
		p.Send(messages.IdentityChanged{})
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
