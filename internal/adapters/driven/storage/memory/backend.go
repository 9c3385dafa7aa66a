// Package memory provides in-memory implementations of the backend store
// ports. It backs `ideapad serve --memory` and the service tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

type ideaRecord struct {
	userID   string
	idea     domain.Idea
	hashtags string
}

type pageRecord struct {
	userID string
	page   domain.Page
}

// Backend holds ideas, pages and tags for every user.
type Backend struct {
	mu       sync.RWMutex
	nextID   int
	ideas    map[string]ideaRecord
	pages    map[string]pageRecord
	hashtags map[string]string
	now      func() time.Time
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{
		ideas:    make(map[string]ideaRecord),
		pages:    make(map[string]pageRecord),
		hashtags: make(map[string]string),
		now:      time.Now,
	}
}

// IdeaStore returns an IdeaStore backed by this backend.
func (b *Backend) IdeaStore() driven.IdeaStore {
	return &ideaStore{b: b}
}

// PageStore returns a PageStore backed by this backend.
func (b *Backend) PageStore() driven.PageStore {
	return &pageStore{b: b}
}

// HashtagStore returns a HashtagStore backed by this backend.
func (b *Backend) HashtagStore() driven.HashtagStore {
	return &hashtagStore{b: b}
}

// newID returns the next numeric identifier (caller must hold lock).
func (b *Backend) newID() string {
	b.nextID++
	return strconv.Itoa(b.nextID)
}

// ==================== Idea Store ====================

type ideaStore struct {
	b *Backend
}

var _ driven.IdeaStore = (*ideaStore)(nil)

func (s *ideaStore) List(_ context.Context, id domain.Identity) ([]domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	return s.b.userIdeas(id.UserID, ""), nil
}

func (s *ideaStore) Create(_ context.Context, id domain.Identity, text, hashtags string) (*domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyIdea
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	idea := domain.Idea{ID: s.b.newID(), Text: text, CreatedAt: s.b.now().UTC()}
	s.b.ideas[idea.ID] = ideaRecord{userID: id.UserID, idea: idea, hashtags: hashtags}
	return &idea, nil
}

func (s *ideaStore) Delete(_ context.Context, id domain.Identity, ideaID string) error {
	if err := id.Require(); err != nil {
		return err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	rec, ok := s.b.ideas[ideaID]
	if !ok || rec.userID != id.UserID {
		return domain.ErrNotFound
	}
	delete(s.b.ideas, ideaID)
	return nil
}

func (s *ideaStore) ListByHashtag(_ context.Context, id domain.Identity, tag string) ([]domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	return s.b.userIdeas(id.UserID, tag), nil
}

// userIdeas returns a user's ideas oldest first, optionally filtered by tag
// (caller must hold lock).
func (b *Backend) userIdeas(userID, tag string) []domain.Idea {
	ideas := make([]domain.Idea, 0)
	for _, rec := range b.ideas {
		if rec.userID != userID {
			continue
		}
		if tag != "" && !domain.MentionsTag(rec.idea.Text, tag) {
			continue
		}
		ideas = append(ideas, rec.idea)
	}
	sortIdeas(ideas)
	return ideas
}

func sortIdeas(ideas []domain.Idea) {
	sort.Slice(ideas, func(i, j int) bool {
		a, _ := strconv.Atoi(ideas[i].ID)
		b, _ := strconv.Atoi(ideas[j].ID)
		return a < b
	})
}

// ==================== Page Store ====================

type pageStore struct {
	b *Backend
}

var _ driven.PageStore = (*pageStore)(nil)

func (s *pageStore) List(_ context.Context, id domain.Identity) ([]domain.Page, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	pages := make([]domain.Page, 0)
	for _, rec := range s.b.pages {
		if rec.userID == id.UserID {
			pages = append(pages, rec.page)
		}
	}
	sort.Slice(pages, func(i, j int) bool {
		a, _ := strconv.Atoi(pages[i].ID)
		b, _ := strconv.Atoi(pages[j].ID)
		return a < b
	})
	return pages, nil
}

func (s *pageStore) Save(_ context.Context, id domain.Identity, w driven.PageWrite) (string, error) {
	if err := id.Require(); err != nil {
		return "", err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	pageID := w.ID
	if pageID == "" {
		pageID = s.b.newID()
	} else if rec, ok := s.b.pages[pageID]; !ok || rec.userID != id.UserID {
		return "", domain.ErrNotFound
	}

	s.b.pages[pageID] = pageRecord{
		userID: id.UserID,
		page:   domain.Page{ID: pageID, Title: w.Title, StoredContent: w.Content},
	}
	return pageID, nil
}

func (s *pageStore) Delete(_ context.Context, id domain.Identity, pageID string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	rec, ok := s.b.pages[pageID]
	if !ok || (!id.IsZero() && rec.userID != id.UserID) {
		return domain.ErrNotFound
	}
	delete(s.b.pages, pageID)
	return nil
}

// ==================== Hashtag Store ====================

type hashtagStore struct {
	b *Backend
}

var _ driven.HashtagStore = (*hashtagStore)(nil)

// suggestLimit caps the number of suggestions returned.
const suggestLimit = 10

func (s *hashtagStore) Suggest(_ context.Context, query string) ([]string, error) {
	query = strings.ToLower(strings.TrimPrefix(query, "#"))
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		key := strings.ToLower(name)
		if seen[key] || !strings.Contains(key, query) {
			return
		}
		seen[key] = true
		names = append(names, name)
	}
	for _, name := range s.b.hashtags {
		add(name)
	}
	for _, t := range domain.CountTags(s.b.ideaTexts("")) {
		add(t.Name)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	if len(names) > suggestLimit {
		names = names[:suggestLimit]
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *hashtagStore) Create(_ context.Context, name string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	if !domain.IsValidTagName(name) {
		return domain.ErrInvalidInput
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := s.b.hashtags[key]; !ok {
		s.b.hashtags[key] = name
	}
	return nil
}

func (s *hashtagStore) List(_ context.Context) ([]domain.Tag, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	return domain.CountTags(s.b.ideaTexts("")), nil
}

func (s *hashtagStore) Messages(_ context.Context, tag string) ([]domain.TagMessage, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var ideas []domain.Idea
	for _, rec := range s.b.ideas {
		if domain.MentionsTag(rec.idea.Text, tag) {
			ideas = append(ideas, rec.idea)
		}
	}
	sortIdeas(ideas)

	msgs := make([]domain.TagMessage, 0, len(ideas))
	for i := len(ideas) - 1; i >= 0; i-- {
		msgs = append(msgs, domain.TagMessage{ID: ideas[i].ID, Text: ideas[i].Text, CreatedAt: ideas[i].CreatedAt})
	}
	return msgs, nil
}

// ideaTexts returns idea texts in creation order, for every user when
// userID is empty (caller must hold lock).
func (b *Backend) ideaTexts(userID string) []string {
	var ideas []domain.Idea
	for _, rec := range b.ideas {
		if userID == "" || rec.userID == userID {
			ideas = append(ideas, rec.idea)
		}
	}
	sortIdeas(ideas)
	texts := make([]string, len(ideas))
	for i, idea := range ideas {
		texts[i] = idea.Text
	}
	return texts
}
