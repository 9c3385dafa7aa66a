package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Work with hashtags",
}

var tagSuggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Suggest hashtags matching a query",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagSuggest,
}

var tagCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagCreate,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every hashtag with its usage count",
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

var tagMessagesCmd = &cobra.Command{
	Use:   "messages [tag]",
	Short: "Show the messages mentioning a hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagMessages,
}

func init() {
	tagCmd.AddCommand(tagSuggestCmd)
	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagMessagesCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagSuggest(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errTagsNotConfigured
	}

	s, err := tagService.Suggest(cmd.Context(), args[0])
	if err != nil {
		return failed(domain.SuggestTagsFailure, err)
	}
	if len(s.Tags) == 0 {
		cmd.Println("No matching hashtags.")
	}
	for _, t := range s.Tags {
		cmd.Printf("  #%s\n", t)
	}
	if s.Query != "" && !s.ExactMatch {
		cmd.Printf("Create it with: ideapad tag create %s\n", s.Query)
	}
	return nil
}

func runTagCreate(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errTagsNotConfigured
	}

	if err := tagService.Create(cmd.Context(), args[0]); err != nil {
		return failed(domain.CreateTagFailure, err)
	}
	cmd.Println("Hashtag created.")
	return nil
}

func runTagList(cmd *cobra.Command, _ []string) error {
	if tagService == nil {
		return errTagsNotConfigured
	}

	tags, err := tagService.ListAll(cmd.Context())
	if err != nil {
		return failed(domain.LoadTagsFailure, err)
	}
	if len(tags) == 0 {
		cmd.Println("No hashtags yet.")
		return nil
	}
	for _, t := range tags {
		cmd.Printf("  #%-24s %d\n", t.Name, t.UsageCount)
	}
	return nil
}

func runTagMessages(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errTagsNotConfigured
	}

	msgs, err := tagService.Messages(cmd.Context(), args[0])
	if err != nil {
		return failed(domain.LoadMessagesFailure, err)
	}
	if len(msgs) == 0 {
		cmd.Println("No messages for this hashtag.")
		return nil
	}
	for _, m := range msgs {
		if m.CreatedAt.IsZero() {
			cmd.Printf("  %s\n", m.Text)
			continue
		}
		cmd.Printf("  %s  %s\n", m.CreatedAt.Format(time.DateTime), m.Text)
	}
	return nil
}
