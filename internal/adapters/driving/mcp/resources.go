package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ideapad resources.
	uriScheme = "ideapad://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "hashtags",
		Name:        "hashtags",
		Description: "Every hashtag with its usage count",
		MIMEType:    "application/json",
	}, s.handleHashtagsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "hashtags/{tag}/messages",
		Name:        "hashtag-messages",
		Description: "Messages mentioning a hashtag",
		MIMEType:    "application/json",
	}, s.handleHashtagMessagesResource)

	if s.ports.Pages != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "pages",
			Name:        "pages",
			Description: "Titles of the user's rich-text pages",
			MIMEType:    "application/json",
		}, s.handlePagesResource)
	}
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleHashtagsResource returns every tag with its count.
func (s *Server) handleHashtagsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tags, err := s.ports.Tags.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hashtags: %w", err)
	}

	infos := make([]TagOutput, len(tags))
	for i, t := range tags {
		infos[i] = TagOutput{Name: t.Name, Count: t.UsageCount}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleHashtagMessagesResource returns the messages for one tag.
func (s *Server) handleHashtagMessagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tag := extractTag(req.Params.URI)
	if tag == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	msgs, err := s.ports.Tags.Messages(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("listing messages for %s: %w", tag, err)
	}

	type messageInfo struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at,omitempty"`
	}
	infos := make([]messageInfo, len(msgs))
	for i, m := range msgs {
		infos[i] = messageInfo{ID: m.ID, Text: m.Text, CreatedAt: formatTime(m.CreatedAt)}
	}
	return jsonResult(req.Params.URI, infos)
}

// handlePagesResource returns the page directory.
func (s *Server) handlePagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	pages, err := s.ports.Pages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	type pageInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	infos := make([]pageInfo, len(pages))
	for i, p := range pages {
		infos[i] = pageInfo{ID: p.ID, Title: p.DisplayTitle()}
	}
	return jsonResult(req.Params.URI, infos)
}

// extractTag extracts the tag from a URI like ideapad://hashtags/{tag}/messages.
func extractTag(uri string) string {
	const prefix = uriScheme + "hashtags/"
	const suffix = "/messages"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	tag := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if unescaped, err := url.PathUnescape(tag); err == nil {
		tag = unescaped
	}
	return strings.TrimPrefix(tag, "#")
}
