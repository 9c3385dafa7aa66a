package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/mcp"
)

var mcpAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose ideas and hashtags to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server for the signed-in user.

Tools: capture_idea, list_ideas, list_hashtags, hashtag_messages,
suggest_hashtags. Resources: ideapad://hashtags, ideapad://pages and
ideapad://hashtags/{tag}/messages.

The server speaks JSON-RPC on stdio unless --addr is given, in which case
it serves the streamable HTTP transport:

  ideapad mcp serve
  ideapad mcp serve --addr :7070`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpAddr, "addr", "", "serve HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if ideaService == nil {
		return errIdeasNotConfigured
	}
	if tagService == nil {
		return errTagsNotConfigured
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Ideas: ideaService,
		Tags:  tagService,
		Pages: pageService,
	})
	if err != nil {
		return err
	}

	if mcpAddr != "" {
		cmd.Printf("MCP server listening on http://localhost%s\n", mcpAddr)
		return server.RunHTTP(cmd.Context(), mcpAddr)
	}
	return server.Run(cmd.Context())
}
