package domain

import "time"

// Idea is a short captured note. Its text may embed #tag tokens.
// Ideas are created and deleted, never updated in place.
type Idea struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// Hashtags returns the tags embedded in the idea text.
func (i Idea) Hashtags() []string {
	return ExtractHashtags(i.Text)
}

// RemoveIdea returns ideas without the entry matching id. The order of the
// remaining entries is preserved and the input slice is not modified.
func RemoveIdea(ideas []Idea, id string) []Idea {
	out := make([]Idea, 0, len(ideas))
	for _, idea := range ideas {
		if idea.ID != id {
			out = append(out, idea)
		}
	}
	return out
}
