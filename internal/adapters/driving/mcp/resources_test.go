package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestExtractTag(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid messages URI", uri: "ideapad://hashtags/work/messages", expected: "work"},
		{name: "escaped hash", uri: "ideapad://hashtags/%23work/messages", expected: "work"},
		{name: "invalid prefix", uri: "file://hashtags/work/messages", expected: ""},
		{name: "missing suffix", uri: "ideapad://hashtags/work", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTag(tt.uri))
		})
	}
}

func TestServer_handleHashtagsResource(t *testing.T) {
	tags := &mockTagService{tags: []domain.Tag{{Name: "go", UsageCount: 2}, {Name: "tui", UsageCount: 1}}}
	server := newTestServer(t, &mockIdeaService{}, tags)

	res, err := server.handleHashtagsResource(context.Background(), makeReadResourceRequest("ideapad://hashtags"))
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var got []TagOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &got))
	assert.Equal(t, []TagOutput{{Name: "go", Count: 2}, {Name: "tui", Count: 1}}, got)
}

func TestServer_handleHashtagMessagesResource(t *testing.T) {
	ctx := context.Background()
	tags := &mockTagService{messages: []domain.TagMessage{{ID: "1", Text: "#work done"}}}
	server := newTestServer(t, &mockIdeaService{}, tags)

	t.Run("returns messages", func(t *testing.T) {
		res, err := server.handleHashtagMessagesResource(ctx, makeReadResourceRequest("ideapad://hashtags/work/messages"))
		require.NoError(t, err)
		assert.Contains(t, res.Contents[0].Text, "#work done")
		assert.Equal(t, "work", tags.tag)
	})

	t.Run("bad URI is not found", func(t *testing.T) {
		_, err := server.handleHashtagMessagesResource(ctx, makeReadResourceRequest("ideapad://hashtags"))
		assert.Error(t, err)
	})

	t.Run("service error", func(t *testing.T) {
		tags.err = errors.New("boom")
		_, err := server.handleHashtagMessagesResource(ctx, makeReadResourceRequest("ideapad://hashtags/x/messages"))
		assert.Error(t, err)
	})
}

func TestServer_handlePagesResource(t *testing.T) {
	pages := &mockPageService{pages: []domain.Page{{ID: "1", Title: ""}, {ID: "2", Title: "Plan"}}}
	server, err := NewServer(&Ports{Ideas: &mockIdeaService{}, Tags: &mockTagService{}, Pages: pages})
	require.NoError(t, err)

	res, err := server.handlePagesResource(context.Background(), makeReadResourceRequest("ideapad://pages"))
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, domain.DefaultTitle)
	assert.Contains(t, res.Contents[0].Text, "Plan")
}
