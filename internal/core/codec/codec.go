// Package codec converts structured content to and from its serialized
// transport form, a JSON object of the shape {"blocks": [...], "entityMap": {...}}.
//
// Decoding is lenient: a stored value that is not an object with an array
// of blocks degrades to the canonical empty document and a warning is
// logged. Inside a readable document a mistyped field falls back to its
// zero value without losing the rest of its block; each repair is logged
// and listed in Result.Repairs. Callers tell the outcomes apart through
// Result.Kind.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// Kind tags the outcome of a decode.
type Kind int

const (
	// KindEmpty means the input was unusable and the empty document was returned.
	KindEmpty Kind = iota
	// KindDecoded means the input was read as structured content.
	KindDecoded
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindDecoded:
		return "decoded"
	default:
		return "unknown"
	}
}

// Result is the outcome of Decode.
type Result struct {
	Kind    Kind
	Content domain.StructuredContent
	// Reason explains why the input degraded to empty content.
	Reason string
	// Repairs lists the field-level problems corrected while decoding.
	Repairs []string
}

// SerializedContent is the wire form of structured content.
type SerializedContent struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

// RawBlock is the wire form of a block.
type RawBlock struct {
	Key               string           `json:"key"`
	Type              string           `json:"type"`
	Text              string           `json:"text"`
	Depth             int              `json:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges"`
	Data              map[string]any   `json:"data"`
}

// RawStyleRange is the wire form of an inline style span.
type RawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// RawEntityRange is the wire form of an entity span.
type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// RawEntity is the wire form of an entity table entry.
type RawEntity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// Encode converts content into its serialized form.
func Encode(content domain.StructuredContent) SerializedContent {
	out := SerializedContent{
		Blocks:    make([]RawBlock, 0, len(content.Blocks)),
		EntityMap: make(map[string]RawEntity, len(content.Entities)),
	}

	for _, b := range content.Blocks {
		rb := RawBlock{
			Key:               b.Key,
			Type:              string(b.Type),
			Text:              b.Text,
			Depth:             b.Depth,
			InlineStyleRanges: make([]RawStyleRange, 0, len(b.Styles)),
			EntityRanges:      make([]RawEntityRange, 0, len(b.EntityRanges)),
			Data:              copyData(b.Data),
		}
		for _, s := range b.Styles {
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawStyleRange{
				Offset: s.Offset, Length: s.Length, Style: string(s.Style),
			})
		}
		for _, r := range b.EntityRanges {
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{
				Offset: r.Offset, Length: r.Length, Key: r.Key,
			})
		}
		out.Blocks = append(out.Blocks, rb)
	}

	for k, e := range content.Entities {
		out.EntityMap[strconv.Itoa(k)] = RawEntity{
			Type:       e.Type,
			Mutability: e.Mutability,
			Data:       copyData(e.Data),
		}
	}
	return out
}

// Marshal encodes content into the JSON string stored by the backend.
func Marshal(content domain.StructuredContent) (string, error) {
	data, err := json.Marshal(Encode(content))
	if err != nil {
		return "", fmt.Errorf("marshalling content: %w", err)
	}
	return string(data), nil
}

// EmptySerialized is the stored form of an empty document.
const EmptySerialized = `{"blocks":[],"entityMap":{}}`

// Decode reads stored content. raw may be nil, a string holding the JSON
// form, or any other value; everything that is not a string containing a
// JSON object with an array-valued "blocks" field yields empty content.
func Decode(raw any) Result {
	switch v := raw.(type) {
	case nil:
		return empty("absent")
	case string:
		return DecodeString(v)
	case *string:
		if v == nil {
			return empty("absent")
		}
		return DecodeString(*v)
	default:
		return empty(fmt.Sprintf("not a string (%T)", raw))
	}
}

// DecodeString reads content from its JSON string form.
func DecodeString(s string) Result {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) == 0 || string(trimmed) == "undefined" || string(trimmed) == "null" {
		return empty("absent")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return empty("not a JSON object: " + err.Error())
	}

	blocksRaw, ok := obj["blocks"]
	if !ok {
		return empty("missing blocks")
	}
	blocksRaw = bytes.TrimSpace(blocksRaw)
	if len(blocksRaw) == 0 || blocksRaw[0] != '[' {
		return empty("blocks is not an array")
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(blocksRaw, &blocks); err != nil {
		return empty("blocks is not an array: " + err.Error())
	}

	d := &decoder{}
	content := domain.EmptyContent()
	if entRaw, ok := obj["entityMap"]; ok {
		content.Entities = d.entities(entRaw)
	}

	content.Blocks = make([]domain.Block, 0, len(blocks))
	for i, br := range blocks {
		b, ok := d.block(br, i)
		if !ok {
			continue
		}
		content.Blocks = append(content.Blocks, b)
	}
	d.assignKeys(content.Blocks)
	d.dropDanglingRanges(&content)

	return Result{Kind: KindDecoded, Content: content, Repairs: d.repairs}
}

func empty(reason string) Result {
	if reason != "absent" {
		logger.Warn("codec: stored content unreadable, using empty document: %s", reason)
	}
	return Result{Kind: KindEmpty, Content: domain.EmptyContent(), Reason: reason}
}

// decoder reads one document field by field. A field of the wrong type
// falls back to its zero value; the rest of the block is kept.
type decoder struct {
	repairs []string
}

func (d *decoder) repair(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn("codec: %s", msg)
	d.repairs = append(d.repairs, msg)
}

func (d *decoder) block(raw json.RawMessage, index int) (domain.Block, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		d.repair("block %d: not an object, skipped", index)
		return domain.Block{}, false
	}

	b := domain.Block{Type: domain.BlockUnstyled, Data: map[string]any{}}
	if v, ok := fields["key"]; ok {
		if key, ok := readString(v); ok {
			b.Key = key
		} else {
			d.repair("block %d: key is not a string", index)
		}
	}
	if v, ok := fields["type"]; ok {
		if t, ok := readString(v); ok && t != "" {
			b.Type = domain.BlockType(t)
		} else if !ok {
			d.repair("block %d: type is not a string", index)
		}
	}
	if v, ok := fields["text"]; ok {
		if text, ok := readString(v); ok {
			b.Text = text
		} else {
			d.repair("block %d: text is not a string", index)
		}
	}
	if v, ok := fields["depth"]; ok {
		if depth, ok := readInt(v); ok && depth >= 0 {
			b.Depth = depth
		} else {
			d.repair("block %d: depth is not a number", index)
		}
	}
	if v, ok := fields["data"]; ok && !isNull(v) {
		var data map[string]any
		if err := json.Unmarshal(v, &data); err == nil && data != nil {
			b.Data = data
		} else {
			d.repair("block %d: data is not an object", index)
		}
	}

	n := b.Len()
	b.Styles = make([]domain.StyleRange, 0)
	for j, r := range d.list(fields["inlineStyleRanges"], index, "inlineStyleRanges") {
		offset, length, ok := d.span(r)
		style, styleOK := readString(r["style"])
		if !ok || !styleOK || offset+length > n {
			d.repair("block %d: style range %d dropped", index, j)
			continue
		}
		b.Styles = append(b.Styles, domain.StyleRange{
			Offset: offset, Length: length, Style: domain.InlineStyle(style),
		})
	}
	b.EntityRanges = make([]domain.EntityRange, 0)
	for j, r := range d.list(fields["entityRanges"], index, "entityRanges") {
		offset, length, ok := d.span(r)
		key, keyOK := readInt(r["key"])
		if !ok || !keyOK || offset+length > n {
			d.repair("block %d: entity range %d dropped", index, j)
			continue
		}
		b.EntityRanges = append(b.EntityRanges, domain.EntityRange{
			Offset: offset, Length: length, Key: key,
		})
	}
	return b, true
}

// list reads an array of range objects. Elements that are not objects are
// returned as nil maps so their index is kept for reporting.
func (d *decoder) list(raw json.RawMessage, index int, field string) []map[string]json.RawMessage {
	if raw == nil || isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.repair("block %d: %s is not an array", index, field)
		return nil
	}
	out := make([]map[string]json.RawMessage, len(items))
	for i, item := range items {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(item, &m); err == nil {
			out[i] = m
		}
	}
	return out
}

func (d *decoder) span(r map[string]json.RawMessage) (offset, length int, ok bool) {
	if r == nil {
		return 0, 0, false
	}
	offset, okOffset := readInt(r["offset"])
	length, okLength := readInt(r["length"])
	if !okOffset || !okLength || offset < 0 || length < 0 {
		return 0, 0, false
	}
	return offset, length, true
}

func (d *decoder) entities(raw json.RawMessage) map[int]domain.Entity {
	out := map[int]domain.Entity{}
	if isNull(raw) {
		return out
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		d.repair("entityMap is not an object, ignored")
		return out
	}
	for k, v := range m {
		key, err := strconv.Atoi(k)
		if err != nil {
			d.repair("entity %q: key is not numeric, ignored", k)
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(v, &fields); err != nil || fields == nil {
			d.repair("entity %q: not an object, ignored", k)
			continue
		}
		e := domain.Entity{Data: map[string]any{}}
		e.Type, _ = readString(fields["type"])
		e.Mutability, _ = readString(fields["mutability"])
		if dv, ok := fields["data"]; ok && !isNull(dv) {
			var data map[string]any
			if err := json.Unmarshal(dv, &data); err == nil && data != nil {
				e.Data = data
			} else {
				d.repair("entity %q: data is not an object", k)
			}
		}
		out[key] = e
	}
	return out
}

// assignKeys gives blocks without a usable key one that no other block
// holds. The first block holding a key keeps it.
func (d *decoder) assignKeys(blocks []domain.Block) {
	taken := make(map[string]bool, len(blocks))
	owner := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if b.Key == "" {
			continue
		}
		if _, ok := owner[b.Key]; !ok {
			owner[b.Key] = i
			taken[b.Key] = true
		}
	}
	for i := range blocks {
		b := &blocks[i]
		if b.Key != "" && owner[b.Key] == i {
			continue
		}
		if b.Key != "" {
			d.repair("block %d: duplicate key %q replaced", i, b.Key)
		}
		key := "block-" + strconv.Itoa(i)
		for n := 2; taken[key]; n++ {
			key = "block-" + strconv.Itoa(i) + "-" + strconv.Itoa(n)
		}
		taken[key] = true
		b.Key = key
	}
}

// dropDanglingRanges removes entity ranges whose key is not in the table,
// restoring the entity reference invariant.
func (d *decoder) dropDanglingRanges(c *domain.StructuredContent) {
	for i := range c.Blocks {
		b := &c.Blocks[i]
		kept := b.EntityRanges[:0]
		for _, r := range b.EntityRanges {
			if _, ok := c.Entities[r.Key]; ok {
				kept = append(kept, r)
				continue
			}
			d.repair("block %q: reference to missing entity %d dropped", b.Key, r.Key)
		}
		b.EntityRanges = kept
	}
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func readString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// readInt accepts a JSON number with no fraction or a string holding one.
func readInt(raw json.RawMessage) (int, bool) {
	if raw == nil {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func copyData(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
