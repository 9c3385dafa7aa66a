// Package rest implements the backend store ports against the remote
// REST-style service. Every response carries a success flag; a missing or
// false flag is reported as *domain.BackendError and network or decoding
// failures as *domain.TransportError. Nothing is retried.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// DefaultBaseURL is the backend location used when none is configured.
const DefaultBaseURL = "http://localhost:8888/project2025"

// Endpoint paths relative to the base URL.
const (
	PathListIdeas       = "/get_user_ideas.php"
	PathCaptureIdea     = "/capture_idea.php"
	PathDeleteIdea      = "/delete_idea.php"
	PathIdeasByHashtag  = "/get_ideas_by_hashtag.php"
	PathListPages       = "/left_pane_dynamic_menu_fetch.php"
	PathSavePage        = "/save_dynamic_page.php"
	PathDeletePage      = "/delete_dynamic_page.php"
	PathSuggestHashtags = "/pophashtagwindow.php"
	PathCreateHashtag   = "/create_new_hashtag_from_pop_window.php"
	PathListHashtags    = "/fetch_all_hashtag_messages.php"
	PathHashtagMessages = "/fetch_messages_by_hashtag.php"
)

// RequestIDHeader carries a per-request identifier for backend logs.
const RequestIDHeader = "X-Request-ID"

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root. Defaults to DefaultBaseURL.
	BaseURL string

	// Token is sent as a bearer token when set.
	Token string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// UserAgent identifies the client.
	UserAgent string
}

// Client talks to the backend.
type Client struct {
	http *resty.Client
	base string
}

// NewClient creates a backend client.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var c *resty.Client
	if opts.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		c = resty.NewWithClient(oauth2.NewClient(context.Background(), src))
	} else {
		c = resty.New()
	}

	c.SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(opts.Timeout).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader(RequestIDHeader, uuid.NewString())
			return nil
		})
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{http: c, base: base}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.base
}

// IdeaStore returns an IdeaStore backed by this client.
func (c *Client) IdeaStore() driven.IdeaStore {
	return &ideaStore{c: c}
}

// PageStore returns a PageStore backed by this client.
func (c *Client) PageStore() driven.PageStore {
	return &pageStore{c: c}
}

// HashtagStore returns a HashtagStore backed by this client.
func (c *Client) HashtagStore() driven.HashtagStore {
	return &hashtagStore{c: c}
}

// envelope holds the fields common to every response.
type envelope struct {
	Success flexBool `json:"success"`
	Message string   `json:"message"`
}

// get issues a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, op, path string, query map[string]string, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return c.do(op, req, http.MethodGet, path, out)
}

// post issues a JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	return c.do(op, req, http.MethodPost, path, out)
}

func (c *Client) do(op string, req *resty.Request, method, path string, out any) error {
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		logger.Warn("backend: %s %s failed: %v", method, path, err)
		return &domain.TransportError{Op: op, Err: err}
	}
	logger.Debug("backend: %s %s -> %d in %s", method, path, resp.StatusCode(), time.Since(start))

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &domain.TransportError{
			Op:  op,
			Err: fmt.Errorf("decoding response (status %d): %w", resp.StatusCode(), err),
		}
	}
	if !env.Success {
		return &domain.BackendError{Op: op, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decoding payload: %w", err)}
	}
	return nil
}

// flexID accepts identifiers sent as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier %s: %w", data, err)
	}
	*f = flexID(n.String())
	return nil
}

// flexBool accepts true/false, 1/0 and their string forms.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// flexInt accepts counts sent as JSON numbers or numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("count %s: %w", data, err)
	}
	*f = flexInt(n)
	return nil
}

// timeLayouts are the timestamp formats accepted from the backend.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime reads a backend timestamp. Unknown formats yield the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if s != "" {
		logger.Debug("backend: unrecognised timestamp %q", s)
	}
	return time.Time{}
}
