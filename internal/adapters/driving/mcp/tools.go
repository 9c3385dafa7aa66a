package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// CaptureIdeaInput is the input schema for the capture_idea tool.
type CaptureIdeaInput struct {
	Text string `json:"text" jsonschema:"the idea text; #tags inside it are indexed"`
}

// IdeaOutput describes a stored idea.
type IdeaOutput struct {
	ID        string   `json:"id,omitempty"`
	Text      string   `json:"text"`
	Hashtags  []string `json:"hashtags"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// ListIdeasInput is the input schema for the list_ideas tool.
type ListIdeasInput struct {
	Hashtag string `json:"hashtag,omitempty" jsonschema:"only return ideas mentioning this tag"`
}

// IdeasOutput is the output schema for the list_ideas tool.
type IdeasOutput struct {
	Ideas []IdeaOutput `json:"ideas"`
	Count int          `json:"count"`
}

// TagOutput is a tag with its usage count.
type TagOutput struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagsOutput is the output schema for the list_hashtags tool.
type TagsOutput struct {
	Tags []TagOutput `json:"tags"`
}

// HashtagInput names a tag.
type HashtagInput struct {
	Hashtag string `json:"hashtag" jsonschema:"the tag name, with or without a leading #"`
}

// MessagesOutput is the output schema for the hashtag_messages tool.
type MessagesOutput struct {
	Messages []IdeaOutput `json:"messages"`
}

// SuggestInput is the input schema for the suggest_hashtags tool.
type SuggestInput struct {
	Query string `json:"query" jsonschema:"partial tag name to complete"`
}

// SuggestOutput is the output schema for the suggest_hashtags tool.
type SuggestOutput struct {
	Tags       []string `json:"tags"`
	ExactMatch bool     `json:"exact_match"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "capture_idea",
		Description: "Capture a quick idea. Hashtags in the text are indexed.",
	}, s.handleCaptureIdea)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_ideas",
		Description: "List the user's captured ideas, optionally filtered by hashtag",
	}, s.handleListIdeas)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_hashtags",
		Description: "List every hashtag with its usage count",
	}, s.handleListHashtags)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hashtag_messages",
		Description: "List the messages that mention a hashtag",
	}, s.handleHashtagMessages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_hashtags",
		Description: "Suggest existing hashtags matching a partial name",
	}, s.handleSuggestHashtags)
}

func ideaOutput(idea domain.Idea) IdeaOutput {
	return IdeaOutput{
		ID:        idea.ID,
		Text:      idea.Text,
		Hashtags:  idea.Hashtags(),
		CreatedAt: formatTime(idea.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func (s *Server) handleCaptureIdea(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CaptureIdeaInput,
) (*mcp.CallToolResult, IdeaOutput, error) {
	idea, err := s.ports.Ideas.Capture(ctx, input.Text)
	if err != nil {
		return nil, IdeaOutput{}, err
	}
	return nil, ideaOutput(*idea), nil
}

func (s *Server) handleListIdeas(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListIdeasInput,
) (*mcp.CallToolResult, IdeasOutput, error) {
	var ideas []domain.Idea
	var err error
	if input.Hashtag != "" {
		ideas, err = s.ports.Ideas.ByHashtag(ctx, input.Hashtag)
	} else {
		ideas, err = s.ports.Ideas.List(ctx)
	}
	if err != nil {
		return nil, IdeasOutput{}, err
	}

	output := IdeasOutput{Ideas: make([]IdeaOutput, len(ideas)), Count: len(ideas)}
	for i := range ideas {
		output.Ideas[i] = ideaOutput(ideas[i])
	}
	return nil, output, nil
}

func (s *Server) handleListHashtags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, TagsOutput, error) {
	tags, err := s.ports.Tags.ListAll(ctx)
	if err != nil {
		return nil, TagsOutput{}, err
	}

	output := TagsOutput{Tags: make([]TagOutput, len(tags))}
	for i, t := range tags {
		output.Tags[i] = TagOutput{Name: t.Name, Count: t.UsageCount}
	}
	return nil, output, nil
}

func (s *Server) handleHashtagMessages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HashtagInput,
) (*mcp.CallToolResult, MessagesOutput, error) {
	msgs, err := s.ports.Tags.Messages(ctx, input.Hashtag)
	if err != nil {
		return nil, MessagesOutput{}, err
	}

	output := MessagesOutput{Messages: make([]IdeaOutput, len(msgs))}
	for i, m := range msgs {
		output.Messages[i] = ideaOutput(domain.Idea{ID: m.ID, Text: m.Text, CreatedAt: m.CreatedAt})
	}
	return nil, output, nil
}

func (s *Server) handleSuggestHashtags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	sugg, err := s.ports.Tags.Suggest(ctx, input.Query)
	if err != nil {
		return nil, SuggestOutput{}, err
	}
	return nil, SuggestOutput{Tags: sugg.Tags, ExactMatch: sugg.ExactMatch}, nil
}
