package rest

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

// ideaJSON is the wire form of a captured idea.
type ideaJSON struct {
	ID        flexID `json:"id"`
	Idea      string `json:"idea"`
	CreatedAt string `json:"created_at"`
}

func (j ideaJSON) toDomain() domain.Idea {
	return domain.Idea{ID: string(j.ID), Text: j.Idea, CreatedAt: parseTime(j.CreatedAt)}
}

func toIdeas(in []ideaJSON) []domain.Idea {
	ideas := make([]domain.Idea, 0, len(in))
	for _, j := range in {
		ideas = append(ideas, j.toDomain())
	}
	return ideas
}

type ideaStore struct {
	c *Client
}

var _ driven.IdeaStore = (*ideaStore)(nil)

func (s *ideaStore) List(ctx context.Context, id domain.Identity) ([]domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	var out struct {
		Ideas []ideaJSON `json:"ideas"`
	}
	err := s.c.get(ctx, "list ideas", PathListIdeas, map[string]string{"user_id": id.UserID}, &out)
	if err != nil {
		return nil, err
	}
	return toIdeas(out.Ideas), nil
}

func (s *ideaStore) Create(ctx context.Context, id domain.Identity, text, hashtags string) (*domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	body := struct {
		Message  string `json:"message"`
		Hashtags string `json:"hashtags"`
		UserID   string `json:"user_id"`
	}{Message: text, Hashtags: hashtags, UserID: id.UserID}

	// The backend may echo the stored idea, its id, or nothing at all.
	var out struct {
		ID   flexID    `json:"id"`
		Idea *ideaJSON `json:"idea"`
	}
	if err := s.c.post(ctx, "capture idea", PathCaptureIdea, body, &out); err != nil {
		return nil, err
	}
	idea := domain.Idea{ID: string(out.ID), Text: text}
	if out.Idea != nil {
		idea = out.Idea.toDomain()
	}
	return &idea, nil
}

func (s *ideaStore) Delete(ctx context.Context, id domain.Identity, ideaID string) error {
	if err := id.Require(); err != nil {
		return err
	}
	body := struct {
		UserID string `json:"user_id"`
		ID     string `json:"id"`
	}{UserID: id.UserID, ID: ideaID}
	return s.c.post(ctx, "delete idea", PathDeleteIdea, body, nil)
}

func (s *ideaStore) ListByHashtag(ctx context.Context, id domain.Identity, tag string) ([]domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	var out struct {
		Ideas []ideaJSON `json:"ideas"`
	}
	query := map[string]string{"hashtag": tag, "user_id": id.UserID}
	if err := s.c.get(ctx, "list ideas by hashtag", PathIdeasByHashtag, query, &out); err != nil {
		return nil, err
	}
	return toIdeas(out.Ideas), nil
}
