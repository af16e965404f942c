package pipeline

import "strings"

// Kind identifies the variant of a Block.
type Kind int

// Block kinds.
const (
	KindParagraph Kind = iota
	KindHeading
	KindBulletItem
	KindNumberedItem
	KindPageBreak
)

// String returns the kind name used in logs and test failures.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBulletItem:
		return "bullet"
	case KindNumberedItem:
		return "numbered"
	case KindPageBreak:
		return "page-break"
	default:
		return "unknown"
	}
}

// Alignment is the horizontal alignment of a block.
type Alignment int

// Alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Spacing holds paragraph spacing in twips (1/20 pt).
type Spacing struct {
	Before int
	After  int
}

// Run is a span of text sharing one set of character properties.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Block is one formatted unit of the generated document.
// Sizes are in half-points, the unit used by WordprocessingML.
type Block struct {
	Kind            Kind
	Runs            []Run
	Heading         int // 1 or 2 for KindHeading, 0 otherwise
	Size            int
	Bold            bool
	Align           Alignment
	Spacing         Spacing
	Indent          int  // left indentation in twips
	PageBreakBefore bool // start the block on a new page
	Number          int  // 1-based ordinal for KindNumberedItem
}

// Text returns the concatenated text of all runs.
func (b Block) Text() string {
	if len(b.Runs) == 1 {
		return b.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
