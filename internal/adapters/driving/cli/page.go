package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/core/codec"
	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// DeletePageQuestion is asked before a page is deleted.
const DeletePageQuestion = "Do you really want to delete this page?"

var (
	pageListJSON  bool
	pageDeleteYes bool
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage rich-text pages",
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your pages",
	Args:  cobra.NoArgs,
	RunE:  runPageList,
}

var pageNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty page",
	Long:  `Create a new empty page titled "Untitled Page". Edit it in the TUI.`,
	Args:  cobra.NoArgs,
	RunE:  runPageNew,
}

var pageShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a page as plain text",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageShow,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageDelete,
}

func init() {
	pageListCmd.Flags().BoolVar(&pageListJSON, "json", false, "output pages as JSON")
	pageDeleteCmd.Flags().BoolVarP(&pageDeleteYes, "yes", "y", false, "delete without asking")
	pageCmd.AddCommand(pageListCmd)
	pageCmd.AddCommand(pageNewCmd)
	pageCmd.AddCommand(pageShowCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageList(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errPagesNotConfigured
	}

	pages, err := pageService.List(cmd.Context())
	if err != nil {
		return failed(domain.LoadPagesFailure, err)
	}

	if pageListJSON {
		type pageJSON struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		out := make([]pageJSON, len(pages))
		for i, p := range pages {
			out[i] = pageJSON{ID: p.ID, Title: p.DisplayTitle()}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal pages: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(pages) == 0 {
		cmd.Println("No pages yet.")
		return nil
	}
	for _, p := range pages {
		cmd.Printf("  [%s] %s\n", p.ID, p.DisplayTitle())
	}
	return nil
}

func runPageNew(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errPagesNotConfigured
	}

	page, err := pageService.Create(cmd.Context())
	if err != nil {
		return failed(domain.SavePageFailure, err)
	}
	cmd.Printf("Created %q (id %s).\n", page.DisplayTitle(), page.ID)
	return nil
}

func runPageShow(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errPagesNotConfigured
	}

	pages, err := pageService.List(cmd.Context())
	if err != nil {
		return failed(domain.LoadPagesFailure, err)
	}
	for _, p := range pages {
		if p.ID != args[0] {
			continue
		}
		res := codec.Decode(p.StoredContent)
		cmd.Println(p.DisplayTitle())
		cmd.Println(strings.Repeat("=", len([]rune(p.DisplayTitle()))))
		if text := renderPlain(res.Content); text != "" {
			cmd.Println(text)
		}
		return nil
	}
	return fmt.Errorf("page %s: %w", args[0], domain.ErrNotFound)
}

// renderPlain prints content with a marker per block type.
func renderPlain(c domain.StructuredContent) string {
	lines := make([]string, 0, len(c.Blocks))
	n := 0
	for _, b := range c.Blocks {
		if b.Type == domain.BlockOrderedListItem {
			n++
		} else {
			n = 0
		}
		indent := strings.Repeat("  ", b.Depth)
		switch b.Type {
		case domain.BlockHeaderOne:
			lines = append(lines, "# "+b.Text)
		case domain.BlockHeaderTwo:
			lines = append(lines, "## "+b.Text)
		case domain.BlockHeaderThree:
			lines = append(lines, "### "+b.Text)
		case domain.BlockQuote:
			lines = append(lines, "> "+b.Text)
		case domain.BlockUnorderedListItem:
			lines = append(lines, indent+"- "+b.Text)
		case domain.BlockOrderedListItem:
			lines = append(lines, fmt.Sprintf("%s%d. %s", indent, n, b.Text))
		case domain.BlockCode:
			lines = append(lines, "    "+b.Text)
		default:
			lines = append(lines, b.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errPagesNotConfigured
	}

	if !pageDeleteYes {
		ok, err := confirm(cmd, DeletePageQuestion)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := pageService.Delete(cmd.Context(), args[0]); err != nil {
		return failed(domain.DeletePageFailure, err)
	}
	cmd.Println("Page deleted.")
	return nil
}
