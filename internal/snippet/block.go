package snippet

// Block is a fenced code block found in a Markdown document.
type Block struct {
	Lang      string
	Meta      Meta
	Code      []byte
	StartLine int
	EndLine   int
}

// Blocks lists fenced code blocks in document order.
type Blocks []*Block

// First returns the first block accepted by filter, or nil.
func (b Blocks) First(filter Filter) *Block {
	for _, block := range b {
		if filter == nil || filter(block.Lang, block.Meta) {
			return block
		}
	}

	return nil
}
