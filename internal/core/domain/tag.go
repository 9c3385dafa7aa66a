package domain

import (
	"sort"
	"strings"
	"time"
)

// Tag is a label aggregated by the backend from #token occurrences.
type Tag struct {
	Name       string
	UsageCount int
}

// TagMessage is a piece of text that mentions a tag.
type TagMessage struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// CountTags aggregates the tag occurrences in texts. Tags are matched
// case-insensitively and reported with the first casing seen, ordered by
// descending count then name.
func CountTags(texts []string) []Tag {
	counts := make(map[string]*Tag)
	var order []string
	for _, text := range texts {
		for _, name := range ExtractHashtags(text) {
			key := strings.ToLower(name)
			t, ok := counts[key]
			if !ok {
				t = &Tag{Name: name}
				counts[key] = t
				order = append(order, key)
			}
			t.UsageCount++
		}
	}

	tags := make([]Tag, 0, len(order))
	for _, key := range order {
		tags = append(tags, *counts[key])
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].UsageCount != tags[j].UsageCount {
			return tags[i].UsageCount > tags[j].UsageCount
		}
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
	return tags
}

// MentionsTag reports whether text contains tag, ignoring case.
func MentionsTag(text, tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	for _, name := range ExtractHashtags(text) {
		if strings.EqualFold(name, tag) {
			return true
		}
	}
	return false
}
