package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// hashtagPattern matches a '#' followed by ASCII letters, digits or underscores.
var hashtagPattern = regexp.MustCompile(`#[A-Za-z0-9_]+`)

// ExtractHashtags returns the tag names in text without the leading '#',
// in order of appearance and with duplicates kept.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	tags := make([]string, len(matches))
	for i, m := range matches {
		tags[i] = m[1:]
	}
	return tags
}

// JoinHashtags renders tags in the comma-joined wire form, e.g. "#a, #b".
func JoinHashtags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, ", ")
}

// Segment is a run of text that is either plain or a single tag token.
type Segment struct {
	Text string
	// Tag is the tag name without '#' when the segment is a tag token.
	Tag string
}

// IsTag reports whether the segment is a tag token.
func (s Segment) IsTag() bool {
	return s.Tag != ""
}

// SplitHashtags splits text into alternating plain and tag segments.
// Concatenating the segment texts reproduces the input.
func SplitHashtags(text string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range hashtagPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		token := text[loc[0]:loc[1]]
		segments = append(segments, Segment{Text: token, Tag: token[1:]})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// TagQuery describes the tag being typed at the end of an input value.
type TagQuery struct {
	// Active is true while a '#' has been typed and not yet terminated.
	Active bool

	// Start is the byte offset of the triggering '#'.
	Start int

	// Query is the text typed after the '#'.
	Query string
}

// FindTagQuery applies the suggestion trigger rule to value: a query
// starts at the most recent '#' and lasts until whitespace follows it.
func FindTagQuery(value string) TagQuery {
	idx := strings.LastIndex(value, "#")
	if idx < 0 {
		return TagQuery{}
	}
	query := value[idx+1:]
	if strings.IndexFunc(query, unicode.IsSpace) >= 0 {
		return TagQuery{}
	}
	return TagQuery{Active: true, Start: idx, Query: query}
}

// CompleteTag replaces the active query in value with the chosen tag and a
// trailing space, which ends the query. Values without an active query get
// the tag appended.
func CompleteTag(value, tag string) string {
	tag = strings.TrimPrefix(tag, "#")
	q := FindTagQuery(value)
	if !q.Active {
		if value != "" && !strings.HasSuffix(value, " ") {
			value += " "
		}
		return value + "#" + tag + " "
	}
	return value[:q.Start] + "#" + tag + " "
}

// IsValidTagName reports whether name (without '#') is a complete tag token.
func IsValidTagName(name string) bool {
	if name == "" {
		return false
	}
	m := hashtagPattern.FindString("#" + name)
	return len(m) == len(name)+1
}
