package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ideapad/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

var (
	serveAddr    string
	serveDataDir string
	serveMemory  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local development backend",
	Long: `Run a development backend speaking the same endpoints as the hosted
service, under /project2025/.

Data is kept in SQLite under --data-dir (default ~/.ideapad/data). Use
--memory for a throwaway in-memory store. Prometheus metrics are served on
/metrics and a liveness probe on /healthz.

Example:
  ideapad serve --addr :8888
  IDEAPAD_BACKEND_URL=http://localhost:8888/project2025 ideapad tui`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from serve.addr)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "SQLite data directory (default from serve.data_dir)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "keep data in memory only")
	rootCmd.AddCommand(serveCmd)
}

// backendStores is the storage behind the development backend.
type backendStores interface {
	IdeaStore() driven.IdeaStore
	PageStore() driven.PageStore
	HashtagStore() driven.HashtagStore
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	addr := cfg.ServeAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	dataDir := cfg.ServeDataDir
	if serveDataDir != "" {
		dataDir = serveDataDir
	}
	inMemory := cfg.ServeMemory || serveMemory

	var stores backendStores
	if inMemory {
		stores = memory.NewBackend()
		cmd.Println("Using in-memory storage.")
	} else {
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()
		stores = store
		cmd.Printf("Using SQLite storage at %s.\n", store.Path())
	}

	server := httpapi.NewServer(httpapi.Options{
		Ideas:          stores.IdeaStore(),
		Pages:          stores.PageStore(),
		Hashtags:       stores.HashtagStore(),
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		Burst:          cfg.Burst,
	})

	cmd.Printf("Backend listening on http://localhost%s%s\n", addr, httpapi.BasePath)
	return server.ListenAndServe(cmd.Context(), addr)
}
