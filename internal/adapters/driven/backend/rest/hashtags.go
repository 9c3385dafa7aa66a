package rest

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

type hashtagStore struct {
	c *Client
}

var _ driven.HashtagStore = (*hashtagStore)(nil)

func (s *hashtagStore) Suggest(ctx context.Context, query string) ([]string, error) {
	var out struct {
		Hashtags []struct {
			Hashtag string `json:"hashtag"`
		} `json:"hashtags"`
	}
	if err := s.c.get(ctx, "suggest hashtags", PathSuggestHashtags, map[string]string{"query": query}, &out); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out.Hashtags))
	for _, h := range out.Hashtags {
		if h.Hashtag != "" {
			names = append(names, h.Hashtag)
		}
	}
	return names, nil
}

func (s *hashtagStore) Create(ctx context.Context, name string) error {
	body := struct {
		Hashtag string `json:"hashtag"`
	}{Hashtag: name}
	return s.c.post(ctx, "create hashtag", PathCreateHashtag, body, nil)
}

func (s *hashtagStore) List(ctx context.Context) ([]domain.Tag, error) {
	var out struct {
		Messages []struct {
			Hashtag string  `json:"hashtag"`
			Count   flexInt `json:"count"`
		} `json:"messages"`
	}
	if err := s.c.get(ctx, "list hashtags", PathListHashtags, nil, &out); err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(out.Messages))
	for _, m := range out.Messages {
		tags = append(tags, domain.Tag{Name: m.Hashtag, UsageCount: int(m.Count)})
	}
	return tags, nil
}

func (s *hashtagStore) Messages(ctx context.Context, tag string) ([]domain.TagMessage, error) {
	var out struct {
		Messages []struct {
			ID          flexID `json:"id"`
			ContentText string `json:"content_text"`
			CreatedAt   string `json:"created_at"`
		} `json:"messages"`
	}
	if err := s.c.get(ctx, "hashtag messages", PathHashtagMessages, map[string]string{"hashtag": tag}, &out); err != nil {
		return nil, err
	}
	msgs := make([]domain.TagMessage, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, domain.TagMessage{ID: string(m.ID), Text: m.ContentText, CreatedAt: parseTime(m.CreatedAt)})
	}
	return msgs, nil
}
