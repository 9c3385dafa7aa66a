package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// DeleteIdeaQuestion is asked before an idea is deleted.
const DeleteIdeaQuestion = "Do you really want to delete this Idea Capture?"

var (
	ideaListHashtag string
	ideaListJSON    bool
	ideaDeleteYes   bool
)

var ideaCmd = &cobra.Command{
	Use:   "idea",
	Short: "Capture and manage quick ideas",
}

var ideaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your ideas",
	Long: `List your captured ideas, oldest first.

Use --hashtag to show only the ideas mentioning a tag.`,
	Args: cobra.NoArgs,
	RunE: runIdeaList,
}

var ideaAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Capture a new idea",
	Long: `Capture a new idea. Every #tag in the text is attached to the idea.

Example:
  ideapad idea add "Ship the beta #launch #q3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdeaAdd,
}

var ideaDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an idea",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeaDelete,
}

func init() {
	ideaListCmd.Flags().StringVar(&ideaListHashtag, "hashtag", "", "only list ideas mentioning this hashtag")
	ideaListCmd.Flags().BoolVar(&ideaListJSON, "json", false, "output ideas as JSON")
	ideaDeleteCmd.Flags().BoolVarP(&ideaDeleteYes, "yes", "y", false, "delete without asking")
	ideaCmd.AddCommand(ideaListCmd)
	ideaCmd.AddCommand(ideaAddCmd)
	ideaCmd.AddCommand(ideaDeleteCmd)
	rootCmd.AddCommand(ideaCmd)
}

func runIdeaList(cmd *cobra.Command, _ []string) error {
	if ideaService == nil {
		return errIdeasNotConfigured
	}

	var (
		ideas []domain.Idea
		err   error
	)
	if tag := strings.TrimPrefix(strings.TrimSpace(ideaListHashtag), "#"); tag != "" {
		ideas, err = ideaService.ByHashtag(cmd.Context(), tag)
	} else {
		ideas, err = ideaService.List(cmd.Context())
	}
	if err != nil {
		return failed(domain.LoadIdeasFailure, err)
	}

	if ideaListJSON {
		return outputIdeasJSON(cmd, ideas)
	}
	if len(ideas) == 0 {
		cmd.Println("No ideas yet.")
		return nil
	}
	for _, idea := range ideas {
		cmd.Printf("  [%s] %s\n", idea.ID, idea.Text)
		if !idea.CreatedAt.IsZero() {
			cmd.Printf("      %s\n", idea.CreatedAt.Format(time.DateTime))
		}
	}
	return nil
}

type ideaJSON struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Hashtags  []string `json:"hashtags"`
	CreatedAt string   `json:"created_at,omitempty"`
}

func outputIdeasJSON(cmd *cobra.Command, ideas []domain.Idea) error {
	out := make([]ideaJSON, len(ideas))
	for i, idea := range ideas {
		out[i] = ideaJSON{ID: idea.ID, Text: idea.Text, Hashtags: idea.Hashtags()}
		if !idea.CreatedAt.IsZero() {
			out[i].CreatedAt = idea.CreatedAt.Format(time.RFC3339)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ideas: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runIdeaAdd(cmd *cobra.Command, args []string) error {
	if ideaService == nil {
		return errIdeasNotConfigured
	}

	idea, err := ideaService.Capture(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return failed(domain.SaveIdeaFailure, err)
	}

	if idea.ID != "" {
		cmd.Printf("Idea saved (id %s).\n", idea.ID)
	} else {
		cmd.Println("Idea saved.")
	}
	if tags := idea.Hashtags(); len(tags) > 0 {
		cmd.Printf("Hashtags: %s\n", domain.JoinHashtags(tags))
	}
	return nil
}

func runIdeaDelete(cmd *cobra.Command, args []string) error {
	if ideaService == nil {
		return errIdeasNotConfigured
	}

	if !ideaDeleteYes {
		ok, err := confirm(cmd, DeleteIdeaQuestion)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := ideaService.Delete(cmd.Context(), args[0]); err != nil {
		return failed(domain.DeleteIdeaFailure, err)
	}
	cmd.Println("Idea deleted.")
	return nil
}
