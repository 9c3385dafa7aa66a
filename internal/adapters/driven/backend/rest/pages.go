package rest

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

// pageJSON is the wire form of a stored page. Content is kept as the raw
// value so the codec can classify whatever the backend holds.
type pageJSON struct {
	ID      flexID          `json:"id"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// storedContent unwraps the content field. Strings are returned as-is, null
// or missing values as nil, anything else as the decoded value.
func (j pageJSON) storedContent() any {
	if len(j.Content) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(j.Content, &v); err != nil {
		return nil
	}
	return v
}

type pageStore struct {
	c *Client
}

var _ driven.PageStore = (*pageStore)(nil)

func (s *pageStore) List(ctx context.Context, id domain.Identity) ([]domain.Page, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	var out struct {
		Pages []pageJSON `json:"pages"`
	}
	if err := s.c.get(ctx, "list pages", PathListPages, map[string]string{"user_id": id.UserID}, &out); err != nil {
		return nil, err
	}
	pages := make([]domain.Page, 0, len(out.Pages))
	for _, p := range out.Pages {
		pages = append(pages, domain.Page{ID: string(p.ID), Title: p.Title, StoredContent: p.storedContent()})
	}
	return pages, nil
}

func (s *pageStore) Save(ctx context.Context, id domain.Identity, w driven.PageWrite) (string, error) {
	if err := id.Require(); err != nil {
		return "", err
	}
	body := struct {
		UserID  string `json:"user_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
		ID      string `json:"id,omitempty"`
	}{UserID: id.UserID, Title: w.Title, Content: w.Content, ID: w.ID}

	op := "update page"
	if w.ID == "" {
		op = "save page"
	}
	var out struct {
		PageID flexID `json:"page_id"`
	}
	if err := s.c.post(ctx, op, PathSavePage, body, &out); err != nil {
		return "", err
	}
	if out.PageID == "" {
		return w.ID, nil
	}
	return string(out.PageID), nil
}

func (s *pageStore) Delete(ctx context.Context, _ domain.Identity, pageID string) error {
	body := struct {
		ID string `json:"id"`
	}{ID: pageID}
	return s.c.post(ctx, "delete page", PathDeletePage, body, nil)
}
