package domain

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// BlockType tags the kind of a content block.
type BlockType string

// Supported block types. Values match the serialized form.
const (
	BlockUnstyled          BlockType = "unstyled"
	BlockHeaderOne         BlockType = "header-one"
	BlockHeaderTwo         BlockType = "header-two"
	BlockHeaderThree       BlockType = "header-three"
	BlockQuote             BlockType = "blockquote"
	BlockUnorderedListItem BlockType = "unordered-list-item"
	BlockOrderedListItem   BlockType = "ordered-list-item"
	BlockCode              BlockType = "code-block"
)

// BlockTypes lists every supported block type.
var BlockTypes = []BlockType{
	BlockUnstyled,
	BlockHeaderOne,
	BlockHeaderTwo,
	BlockHeaderThree,
	BlockQuote,
	BlockUnorderedListItem,
	BlockOrderedListItem,
	BlockCode,
}

// IsValid reports whether t is a known block type.
func (t BlockType) IsValid() bool {
	for _, bt := range BlockTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// Label returns a human-readable name for the block type.
func (t BlockType) Label() string {
	switch t {
	case BlockUnstyled:
		return "Text"
	case BlockHeaderOne:
		return "Heading 1"
	case BlockHeaderTwo:
		return "Heading 2"
	case BlockHeaderThree:
		return "Heading 3"
	case BlockQuote:
		return "Quote"
	case BlockUnorderedListItem:
		return "Bulleted List"
	case BlockOrderedListItem:
		return "Numbered List"
	case BlockCode:
		return "Code Block"
	default:
		return string(t)
	}
}

// InlineStyle names a character style applied to a span of block text.
type InlineStyle string

// Inline styles.
const (
	StyleBold      InlineStyle = "BOLD"
	StyleItalic    InlineStyle = "ITALIC"
	StyleUnderline InlineStyle = "UNDERLINE"
	StyleCode      InlineStyle = "CODE"
)

// EntityLink is the entity type for hyperlinks. Its data holds a "url".
const EntityLink = "LINK"

// Entity mutability values.
const (
	MutabilityMutable   = "MUTABLE"
	MutabilityImmutable = "IMMUTABLE"
	MutabilitySegmented = "SEGMENTED"
)

// StyleRange applies Style to Length characters starting at Offset.
// Offsets and lengths count runes.
type StyleRange struct {
	Offset int
	Length int
	Style  InlineStyle
}

// EntityRange annotates a span of text with the entity identified by Key.
type EntityRange struct {
	Offset int
	Length int
	Key    int
}

// Entity is a rich annotation stored in the content's entity table.
type Entity struct {
	Type       string
	Mutability string
	Data       map[string]any
}

// Block is one paragraph-level unit of structured content.
type Block struct {
	// Key uniquely identifies the block within its content.
	Key string

	// Type is the block kind (paragraph, heading, list item, ...).
	Type BlockType

	// Text is the plain text of the block.
	Text string

	// Depth is the nesting level for list items.
	Depth int

	// Styles holds the inline style spans.
	Styles []StyleRange

	// EntityRanges holds spans referencing entries in the entity table.
	EntityRanges []EntityRange

	// Data holds arbitrary block metadata.
	Data map[string]any
}

// Len returns the text length in runes.
func (b Block) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// StructuredContent is the in-memory block-based rich-text document.
// A value with no blocks is the canonical empty document.
type StructuredContent struct {
	Blocks   []Block
	Entities map[int]Entity
}

// EmptyContent returns the canonical empty document.
func EmptyContent() StructuredContent {
	return StructuredContent{Entities: map[int]Entity{}}
}

// IsEmpty reports whether the content has no blocks.
func (c StructuredContent) IsEmpty() bool {
	return len(c.Blocks) == 0
}

// Clone returns a deep copy of the content.
func (c StructuredContent) Clone() StructuredContent {
	out := StructuredContent{Entities: make(map[int]Entity, len(c.Entities))}
	if c.Blocks != nil {
		out.Blocks = make([]Block, len(c.Blocks))
	}
	for i, b := range c.Blocks {
		nb := b
		nb.Styles = append([]StyleRange(nil), b.Styles...)
		nb.EntityRanges = append([]EntityRange(nil), b.EntityRanges...)
		nb.Data = cloneData(b.Data)
		out.Blocks[i] = nb
	}
	for k, e := range c.Entities {
		e.Data = cloneData(e.Data)
		out.Entities[k] = e
	}
	return out
}

func cloneData(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate checks that every entity reference resolves and that all
// ranges lie inside their block text.
func (c StructuredContent) Validate() error {
	seen := make(map[string]bool, len(c.Blocks))
	for _, b := range c.Blocks {
		if b.Key == "" {
			return fmt.Errorf("%w: block without key", ErrInvalidContent)
		}
		if seen[b.Key] {
			return fmt.Errorf("%w: duplicate block key %q", ErrInvalidContent, b.Key)
		}
		seen[b.Key] = true

		n := b.Len()
		for _, r := range b.Styles {
			if !rangeWithin(r.Offset, r.Length, n) {
				return fmt.Errorf("%w: style range out of bounds in block %q", ErrInvalidContent, b.Key)
			}
		}
		for _, r := range b.EntityRanges {
			if _, ok := c.Entities[r.Key]; !ok {
				return fmt.Errorf("%w: block %q references missing entity %d", ErrInvalidContent, b.Key, r.Key)
			}
			if !rangeWithin(r.Offset, r.Length, n) {
				return fmt.Errorf("%w: entity range out of bounds in block %q", ErrInvalidContent, b.Key)
			}
		}
	}
	return nil
}

func rangeWithin(offset, length, n int) bool {
	return offset >= 0 && length >= 0 && offset+length <= n
}

// PlainText joins all block texts with newlines.
func (c StructuredContent) PlainText() string {
	texts := make([]string, len(c.Blocks))
	for i, b := range c.Blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, "\n")
}

// BlockIndex returns the position of the block with key, or -1.
func (c StructuredContent) BlockIndex(key string) int {
	for i, b := range c.Blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// InsertBlock inserts an empty block of type t at index, clamped to the
// valid range, and returns its position.
func (c *StructuredContent) InsertBlock(index int, key string, t BlockType) int {
	if index < 0 {
		index = 0
	}
	if index > len(c.Blocks) {
		index = len(c.Blocks)
	}
	if !t.IsValid() {
		t = BlockUnstyled
	}
	b := Block{Key: key, Type: t}
	c.Blocks = append(c.Blocks, Block{})
	copy(c.Blocks[index+1:], c.Blocks[index:])
	c.Blocks[index] = b
	return index
}

// RemoveBlock deletes the block with key and drops entities that are no
// longer referenced.
func (c *StructuredContent) RemoveBlock(key string) error {
	i := c.BlockIndex(key)
	if i < 0 {
		return fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	c.Blocks = append(c.Blocks[:i], c.Blocks[i+1:]...)
	c.pruneEntities()
	return nil
}

// MoveBlock shifts the block with key by delta positions, clamped to the
// document bounds. It returns the new index.
func (c *StructuredContent) MoveBlock(key string, delta int) (int, error) {
	i := c.BlockIndex(key)
	if i < 0 {
		return -1, fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	j := i + delta
	if j < 0 {
		j = 0
	}
	if j >= len(c.Blocks) {
		j = len(c.Blocks) - 1
	}
	b := c.Blocks[i]
	if j < i {
		copy(c.Blocks[j+1:i+1], c.Blocks[j:i])
	} else {
		copy(c.Blocks[i:j], c.Blocks[i+1:j+1])
	}
	c.Blocks[j] = b
	return j, nil
}

// SetBlockText replaces the text of a block. Ranges are clipped to the
// new length and empty ranges are dropped.
func (c *StructuredContent) SetBlockText(key, text string) error {
	i := c.BlockIndex(key)
	if i < 0 {
		return fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	b := &c.Blocks[i]
	b.Text = text
	n := b.Len()

	styles := b.Styles[:0]
	for _, r := range b.Styles {
		if r.Offset >= n {
			continue
		}
		if r.Offset+r.Length > n {
			r.Length = n - r.Offset
		}
		styles = append(styles, r)
	}
	b.Styles = styles

	ranges := b.EntityRanges[:0]
	for _, r := range b.EntityRanges {
		if r.Offset >= n {
			continue
		}
		if r.Offset+r.Length > n {
			r.Length = n - r.Offset
		}
		ranges = append(ranges, r)
	}
	b.EntityRanges = ranges
	c.pruneEntities()
	return nil
}

// SetBlockType changes the type of a block.
func (c *StructuredContent) SetBlockType(key string, t BlockType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: block type %q", ErrInvalidInput, t)
	}
	i := c.BlockIndex(key)
	if i < 0 {
		return fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	c.Blocks[i].Type = t
	return nil
}

// ToggleBlockType sets the block to t, or back to unstyled if it already is t.
func (c *StructuredContent) ToggleBlockType(key string, t BlockType) error {
	i := c.BlockIndex(key)
	if i < 0 {
		return fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	if c.Blocks[i].Type == t {
		t = BlockUnstyled
	}
	return c.SetBlockType(key, t)
}

// ToggleStyle applies style over the whole block text, or removes it if
// the block is already entirely covered by that style.
func (c *StructuredContent) ToggleStyle(key string, style InlineStyle) error {
	i := c.BlockIndex(key)
	if i < 0 {
		return fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	b := &c.Blocks[i]
	n := b.Len()

	kept := make([]StyleRange, 0, len(b.Styles))
	covered := false
	for _, r := range b.Styles {
		if r.Style == style {
			if r.Offset == 0 && r.Length == n {
				covered = true
			}
			continue
		}
		kept = append(kept, r)
	}
	if !covered && n > 0 {
		kept = append(kept, StyleRange{Offset: 0, Length: n, Style: style})
	}
	b.Styles = kept
	return nil
}

// AddEntity stores e in the entity table and returns its key.
func (c *StructuredContent) AddEntity(e Entity) int {
	if c.Entities == nil {
		c.Entities = map[int]Entity{}
	}
	next := 0
	for k := range c.Entities {
		if k >= next {
			next = k + 1
		}
	}
	c.Entities[next] = e
	return next
}

// Link annotates a span of a block with a new LINK entity.
func (c *StructuredContent) Link(key string, offset, length int, url string) error {
	i := c.BlockIndex(key)
	if i < 0 {
		return fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	if url == "" || length == 0 || !rangeWithin(offset, length, c.Blocks[i].Len()) {
		return fmt.Errorf("%w: link range", ErrInvalidInput)
	}
	ek := c.AddEntity(Entity{
		Type:       EntityLink,
		Mutability: MutabilityMutable,
		Data:       map[string]any{"url": url},
	})
	c.Blocks[i].EntityRanges = append(c.Blocks[i].EntityRanges, EntityRange{Offset: offset, Length: length, Key: ek})
	return nil
}

// pruneEntities drops entity table entries no block references.
func (c *StructuredContent) pruneEntities() {
	used := make(map[int]bool)
	for _, b := range c.Blocks {
		for _, r := range b.EntityRanges {
			used[r.Key] = true
		}
	}
	for k := range c.Entities {
		if !used[k] {
			delete(c.Entities, k)
		}
	}
}

// EntityKeys returns the entity table keys in ascending order.
func (c StructuredContent) EntityKeys() []int {
	keys := make([]int, 0, len(c.Entities))
	for k := range c.Entities {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
