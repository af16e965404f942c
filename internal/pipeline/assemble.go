package pipeline

import (
	"strings"
	"unicode"
)

// Fields carries the validated request values the template is parameterized by.
type Fields struct {
	Title            string
	ProblemStatement string
	Objectives       []string
	Requirements     []string
	ManualSteps      []string
	AutomationIdeas  string
}

// Assembler builds the fixed Process Definition Document layout.
type Assembler struct {
	inline InlineRenderer
}

// NewAssembler creates an Assembler. A nil renderer means PlainText.
func NewAssembler(inline InlineRenderer) *Assembler {
	if inline == nil {
		inline = PlainText{}
	}
	return &Assembler{inline: inline}
}

// Assemble maps fields to the ordered block sequence of the template.
// It has no side effects and is safe for concurrent use.
func (a *Assembler) Assemble(f Fields) []Block {
	blocks := make([]Block, 0, 32+len(TableOfContents)+len(f.Objectives)+len(f.Requirements)+len(f.ManualSteps))

	// Front matter
	blocks = append(blocks,
		footer(false, 400),
		meta(ProcessLabel, 100),
		meta(ProjectNamePrefix+f.Title, 100),
		meta(DateLabel, 600),
		Block{
			Kind:    KindHeading,
			Runs:    plain(DocumentTitle),
			Heading: 1,
			Size:    sizeTitle,
			Bold:    true,
			Align:   AlignCenter,
			Spacing: Spacing{After: 600},
		},
		footer(true, 400),
	)

	// Table of contents
	blocks = append(blocks, Block{
		Kind:    KindHeading,
		Runs:    plain(ContentsHeading),
		Heading: 2,
		Size:    sizeTOCHeading,
		Bold:    true,
		Spacing: Spacing{After: 200},
	})
	for _, e := range TableOfContents {
		blocks = append(blocks, Block{
			Kind:    KindParagraph,
			Runs:    plain(e.Text),
			Size:    sizeTOCEntry,
			Spacing: Spacing{After: 100},
			Indent:  e.Indent(),
		})
	}
	blocks = append(blocks,
		spacer(400),
		Block{Kind: KindPageBreak},
		footer(false, 400),
	)

	// Body
	blocks = append(blocks, Block{
		Kind:    KindHeading,
		Runs:    plain(IntroHeading),
		Heading: 1,
		Size:    sizeIntro,
		Bold:    true,
		Spacing: Spacing{Before: 400, After: 300},
	})

	blocks = append(blocks, section(ProblemStatementHeading))
	blocks = append(blocks, a.body(orDefault(f.ProblemStatement, DefaultProblemStatement), 300))

	blocks = append(blocks, section(ObjectivesHeading))
	blocks = append(blocks, a.list(f.Objectives, KindBulletItem)...)

	blocks = append(blocks, section(RequirementsHeading))
	blocks = append(blocks, a.list(f.Requirements, KindBulletItem)...)

	blocks = append(blocks, section(ProcessMapHeading))
	blocks = append(blocks, a.list(f.ManualSteps, KindNumberedItem)...)

	blocks = append(blocks, section(AutomationIdeasHeading))
	blocks = append(blocks, a.body(orDefault(f.AutomationIdeas, DefaultAutomationIdeas), 600))

	// Closing footer
	blocks = append(blocks, spacer(400), footer(false, 0))

	return blocks
}

// body renders a free-text section paragraph. Default placeholders are
// template text and bypass inline rendering.
func (a *Assembler) body(s string, after int) Block {
	runs := plain(s)
	if s != DefaultProblemStatement && s != DefaultAutomationIdeas {
		runs = a.inline.Runs(s)
	}
	return Block{
		Kind:    KindParagraph,
		Runs:    runs,
		Size:    sizeBody,
		Spacing: Spacing{After: after},
	}
}

// list builds one item per non-blank entry. Kept entries are not trimmed.
// Numbered items are numbered consecutively over the kept entries.
func (a *Assembler) list(items []string, kind Kind) []Block {
	out := make([]Block, 0, len(items))
	for _, item := range items {
		if IsBlank(item) {
			continue
		}
		b := Block{
			Kind:    kind,
			Runs:    a.inline.Runs(item),
			Size:    sizeListItem,
			Spacing: Spacing{After: 100},
		}
		if kind == KindNumberedItem {
			b.Number = len(out) + 1
		}
		out = append(out, b)
	}
	return out
}

// IsBlank reports whether s is empty or whitespace only. Whitespace is the
// ECMAScript set: U+FEFF counts, U+0085 does not.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !isListSpace(r) }) < 0
}

func isListSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func plain(s string) []Run {
	return []Run{{Text: s}}
}

func footer(pageBreakBefore bool, after int) Block {
	return Block{
		Kind:            KindParagraph,
		Runs:            plain(FooterText),
		Size:            sizeFooter,
		Align:           AlignCenter,
		Spacing:         Spacing{After: after},
		PageBreakBefore: pageBreakBefore,
	}
}

func meta(s string, after int) Block {
	return Block{
		Kind:    KindParagraph,
		Runs:    plain(s),
		Size:    sizeMeta,
		Spacing: Spacing{After: after},
	}
}

func section(title string) Block {
	return Block{
		Kind:    KindHeading,
		Runs:    plain(title),
		Heading: 2,
		Size:    sizeSection,
		Bold:    true,
		Spacing: Spacing{Before: 200, After: 150},
	}
}

func spacer(after int) Block {
	return Block{
		Kind:    KindParagraph,
		Runs:    plain(""),
		Spacing: Spacing{After: after},
	}
}

var plainAssembler = NewAssembler(PlainText{})

// Assemble maps fields to blocks with field text kept verbatim.
func Assemble(f Fields) []Block {
	return plainAssembler.Assemble(f)
}
