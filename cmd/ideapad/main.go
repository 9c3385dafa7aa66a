// Command ideapad is the composition root: it resolves configuration, wires
// the backend client into the core services and hands them to the CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/ideapad/internal/adapters/driven/backend/rest"
	"github.com/custodia-labs/ideapad/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/cli"
	"github.com/custodia-labs/ideapad/internal/config"
	"github.com/custodia-labs/ideapad/internal/core/services"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := file.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	cfg, err := config.Load(store)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	identity := file.NewIdentityStore(store)
	client := rest.NewClient(rest.Options{
		BaseURL:   cfg.BackendURL,
		Token:     cfg.BackendToken,
		Timeout:   cfg.BackendTimeout,
		UserAgent: "ideapad/" + version,
	})

	ideas := services.NewIdeaService(client.IdeaStore(), identity)
	pages := services.NewPageService(client.PageStore(), identity)
	tags := services.NewTagService(client.HashtagStore(), identity)
	identitySvc := services.NewIdentityService(identity)
	session := services.NewDocumentSession(client.PageStore(), identity)

	// Logins from another terminal rewrite config.toml; the TUI hears
	// about it through changes.
	changes := make(chan struct{}, 1)
	watcher := file.NewWatcher(store, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()

	cli.SetVersion(version)
	cli.SetConfig(cfg, store)
	cli.SetServices(cli.Services{
		Ideas:    ideas,
		Pages:    pages,
		Tags:     tags,
		Identity: identitySvc,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		Ideas:    ideas,
		Pages:    pages,
		Tags:     tags,
		Identity: identitySvc,
		Session:  session,
		Changes:  changes,
	})

	return cli.Execute(ctx)
}
