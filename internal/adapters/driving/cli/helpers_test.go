package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/ideapad/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ideapad/internal/core/services"
)

// fixture wires the commands to the real services over an in-memory
// backend.
type fixture struct {
	backend  *memory.Backend
	identity *memory.IdentityStore
}

func newFixture(t *testing.T, userID string) *fixture {
	t.Helper()
	f := &fixture{
		backend:  memory.NewBackend(),
		identity: memory.NewIdentityStore(userID),
	}
	SetServices(Services{
		Ideas:    services.NewIdeaService(f.backend.IdeaStore(), f.identity),
		Pages:    services.NewPageService(f.backend.PageStore(), f.identity),
		Tags:     services.NewTagService(f.backend.HashtagStore(), f.identity),
		Identity: services.NewIdentityService(f.identity),
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return f
}

// execute runs the root command with args, feeding stdin to prompts.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default
// so package-level flag variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func commandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}
