package render

// BlockKind names the visual role of a block. The layout engine maps kinds
// to fonts and spacing; the renderer never computes positions itself.
type BlockKind string

const (
	BlockTitle      BlockKind = "title"
	BlockContact    BlockKind = "contact"
	BlockHeading    BlockKind = "heading"
	BlockSubheading BlockKind = "subheading"
	BlockParagraph  BlockKind = "paragraph"
	BlockLabel      BlockKind = "label"
	BlockBullet     BlockKind = "bullet"
	BlockSpacer     BlockKind = "spacer"
)

// Block is one presentational unit in the ordered document sequence.
type Block struct {
	Kind BlockKind
	Text string
}

// Document is the ordered block sequence handed to the layout engine.
type Document struct {
	Title  string
	Blocks []Block
}

func (d *Document) add(kind BlockKind, text string) {
	d.Blocks = append(d.Blocks, Block{Kind: kind, Text: text})
}
