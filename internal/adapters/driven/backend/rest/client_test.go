package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

var user = domain.NewIdentity("42")

// newTestClient serves handler under the backend paths.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: 5 * time.Second, UserAgent: "ideapad/test"})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient(Options{}).BaseURL())
	assert.Equal(t, "http://example.test/api", NewClient(Options{BaseURL: "http://example.test/api/"}).BaseURL())
}

func TestClient_SendsHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, "ideapad/test", r.Header.Get("User-Agent"))
		writeJSON(t, w, map[string]any{"success": true, "ideas": []any{}})
	})
	_, err := c.IdeaStore().List(context.Background(), user)
	require.NoError(t, err)
}

func TestClient_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]any{"success": true, "pages": []any{}})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Token: "s3cret"})
	_, err := c.PageStore().List(context.Background(), user)
	require.NoError(t, err)
}

func TestIdeaStore_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathListIdeas, r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		writeJSON(t, w, map[string]any{
			"success": true,
			"ideas": []map[string]any{
				{"id": 7, "idea": "ship #v1", "created_at": "2024-03-01 10:20:30"},
				{"id": "8", "idea": "plain", "created_at": "garbage"},
			},
		})
	})

	ideas, err := c.IdeaStore().List(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "7", ideas[0].ID)
	assert.Equal(t, "ship #v1", ideas[0].Text)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), ideas[0].CreatedAt)
	assert.Equal(t, "8", ideas[1].ID)
	assert.True(t, ideas[1].CreatedAt.IsZero())
}

func TestIdeaStore_Create(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathCaptureIdea, r.URL.Path)
		assert.Equal(t, map[string]any{"message": "plan #a #b", "hashtags": "#a, #b", "user_id": "42"}, decodeBody(t, r))
		writeJSON(t, w, map[string]any{"success": true, "id": 11})
	})

	idea, err := c.IdeaStore().Create(context.Background(), user, "plan #a #b", "#a, #b")
	require.NoError(t, err)
	assert.Equal(t, "11", idea.ID)
	assert.Equal(t, "plan #a #b", idea.Text)
}

func TestIdeaStore_CreateRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"success": false, "message": "Database unavailable"})
	})

	_, err := c.IdeaStore().Create(context.Background(), user, "x", "")
	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "Database unavailable", backendErr.Message)
	assert.Equal(t, "Database unavailable", domain.SaveIdeaFailure.Message(err))
}

func TestIdeaStore_RequiresIdentity(t *testing.T) {
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected without identity")
	})
	_, err := c.IdeaStore().List(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestIdeaStore_DeleteAndByHashtag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathDeleteIdea:
			assert.Equal(t, map[string]any{"user_id": "42", "id": "3"}, decodeBody(t, r))
			writeJSON(t, w, map[string]any{"success": true})
		case PathIdeasByHashtag:
			assert.Equal(t, "go", r.URL.Query().Get("hashtag"))
			writeJSON(t, w, map[string]any{"success": true, "ideas": []map[string]any{{"id": 1, "idea": "#go"}}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	require.NoError(t, c.IdeaStore().Delete(ctx, user, "3"))
	ideas, err := c.IdeaStore().ListByHashtag(ctx, user, "go")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "#go", ideas[0].Text)
}

func TestPageStore_ListKeepsRawContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"success": true,
			"pages": []map[string]any{
				{"id": 1, "title": "One", "content": `{"blocks":[],"entityMap":{}}`},
				{"id": 2, "title": "Two", "content": nil},
				{"id": 3, "title": "Three", "content": 5},
			},
		})
	})

	pages, err := c.PageStore().List(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, `{"blocks":[],"entityMap":{}}`, pages[0].StoredContent)
	assert.Nil(t, pages[1].StoredContent)
	assert.Equal(t, float64(5), pages[2].StoredContent)
}

func TestPageStore_SaveCreateAndUpdate(t *testing.T) {
	var bodies []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSavePage, r.URL.Path)
		body := decodeBody(t, r)
		bodies = append(bodies, body)
		if _, ok := body["id"]; ok {
			writeJSON(t, w, map[string]any{"success": true})
			return
		}
		writeJSON(t, w, map[string]any{"success": true, "page_id": 99})
	})
	ctx := context.Background()

	id, err := c.PageStore().Save(ctx, user, driven.PageWrite{Title: "T", Content: "{}"})
	require.NoError(t, err)
	assert.Equal(t, "99", id)

	id, err = c.PageStore().Save(ctx, user, driven.PageWrite{ID: "99", Title: "T2", Content: "{}"})
	require.NoError(t, err)
	assert.Equal(t, "99", id)

	require.Len(t, bodies, 2)
	assert.NotContains(t, bodies[0], "id")
	assert.Equal(t, "99", bodies[1]["id"])
	assert.Equal(t, "42", bodies[1]["user_id"])
}

func TestPageStore_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, map[string]any{"id": "5"}, decodeBody(t, r))
		writeJSON(t, w, map[string]any{"success": "1"})
	})
	require.NoError(t, c.PageStore().Delete(context.Background(), domain.Identity{}, "5"))
}

func TestHashtagStore(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathSuggestHashtags:
			assert.Equal(t, "pro", r.URL.Query().Get("query"))
			writeJSON(t, w, map[string]any{"success": true, "hashtags": []map[string]any{{"hashtag": "project"}, {"hashtag": "prod"}}})
		case PathCreateHashtag:
			assert.Equal(t, map[string]any{"hashtag": "fresh"}, decodeBody(t, r))
			writeJSON(t, w, map[string]any{"success": true})
		case PathListHashtags:
			writeJSON(t, w, map[string]any{"success": true, "messages": []map[string]any{{"hashtag": "go", "count": "3"}}})
		case PathHashtagMessages:
			assert.Equal(t, "go", r.URL.Query().Get("hashtag"))
			writeJSON(t, w, map[string]any{"success": true, "messages": []map[string]any{
				{"id": 4, "content_text": "learn #go", "created_at": "2024-01-02T03:04:05Z"},
			}})
		default:
			http.NotFound(w, r)
		}
	})
	store := c.HashtagStore()
	ctx := context.Background()

	names, err := store.Suggest(ctx, "pro")
	require.NoError(t, err)
	assert.Equal(t, []string{"project", "prod"}, names)

	require.NoError(t, store.Create(ctx, "fresh"))

	tags, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{Name: "go", UsageCount: 3}}, tags)

	msgs, err := store.Messages(ctx, "go")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "4", msgs[0].ID)
	assert.Equal(t, "learn #go", msgs[0].Text)
	assert.Equal(t, 2024, msgs[0].CreatedAt.Year())
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("non-json body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>fatal error</html>"))
		})
		_, err := c.HashtagStore().List(context.Background())
		var transportErr *domain.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, "Error while loading hashtags.", domain.LoadTagsFailure.Message(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(Options{BaseURL: url, Timeout: time.Second})
		_, err := c.HashtagStore().Suggest(context.Background(), "x")
		var transportErr *domain.TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("missing success flag", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{"pages": []any{}})
		})
		_, err := c.PageStore().List(context.Background(), user)
		var backendErr *domain.BackendError
		require.ErrorAs(t, err, &backendErr)
	})
}
