package domain

import "strings"

// BlockOption is an entry of the slash block menu.
type BlockOption struct {
	Label string
	Type  BlockType
}

// BlockOptions is the slash menu in display order.
var BlockOptions = []BlockOption{
	{Label: "Text Block", Type: BlockUnstyled},
	{Label: "Heading 1", Type: BlockHeaderOne},
	{Label: "Heading 2", Type: BlockHeaderTwo},
	{Label: "Heading 3", Type: BlockHeaderThree},
	{Label: "Bulleted List", Type: BlockUnorderedListItem},
	{Label: "Numbered List", Type: BlockOrderedListItem},
	{Label: "Quote", Type: BlockQuote},
	{Label: "Code Block", Type: BlockCode},
}

// FilterBlockOptions returns the options whose label contains filter,
// ignoring case. An empty filter returns every option.
func FilterBlockOptions(filter string) []BlockOption {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return append([]BlockOption(nil), BlockOptions...)
	}
	var out []BlockOption
	for _, o := range BlockOptions {
		if strings.Contains(strings.ToLower(o.Label), filter) {
			out = append(out, o)
		}
	}
	return out
}
