package pipeline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// InlineRenderer turns user-supplied field text into formatted runs.
type InlineRenderer interface {
	Runs(s string) []Run
}

// Compile-time interface checks.
var (
	_ InlineRenderer = PlainText{}
	_ InlineRenderer = (*MarkdownInline)(nil)
)

// PlainText keeps text verbatim as a single run.
type PlainText struct{}

// Runs returns s as one unformatted run.
func (PlainText) Runs(s string) []Run {
	return []Run{{Text: s}}
}

// MarkdownInline interprets inline Markdown (emphasis, strong, code spans,
// links) using goldmark. Block constructs such as headings and lists are not
// recognized, so "1. step" stays literal text.
type MarkdownInline struct {
	parser parser.Parser
}

// NewMarkdownInline creates a MarkdownInline restricted to paragraph and
// inline parsing.
func NewMarkdownInline() *MarkdownInline {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
	return &MarkdownInline{parser: p}
}

// Runs parses s and returns its text split by character formatting.
// Leading and trailing whitespace of s is kept as plain text.
// Falls back to a single plain run when parsing yields no text.
func (m *MarkdownInline) Runs(s string) []Run {
	body := strings.TrimLeft(s, markdownSpace)
	lead := s[:len(s)-len(body)]
	body = strings.TrimRight(body, markdownSpace)
	trail := s[len(lead)+len(body):]

	src := []byte(s)
	doc := m.parser.Parse(text.NewReader(src))

	w := runWriter{}
	w.write(lead)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph:
			if entering && node.PreviousSibling() != nil {
				w.write("\n")
			}
		case *ast.Emphasis:
			if node.Level >= 2 {
				w.bold += delta(entering)
			} else {
				w.italic += delta(entering)
			}
		case *ast.CodeSpan:
			w.code += delta(entering)
		case *ast.Text:
			if !entering {
				break
			}
			value := node.Segment.Value(src)
			if w.code == 0 {
				value = decodeText(value)
			}
			w.write(string(value))
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.write("\n")
			}
		case *ast.String:
			if entering {
				w.write(string(node.Value))
			}
		case *ast.AutoLink:
			if entering {
				w.write(string(node.Label(src)))
			}
		case *ast.RawHTML:
			if entering {
				for i := 0; i < node.Segments.Len(); i++ {
					seg := node.Segments.At(i)
					w.write(string(seg.Value(src)))
				}
			}
		}
		return ast.WalkContinue, nil
	})
	w.write(trail)

	if len(w.runs) == 0 {
		return PlainText{}.Runs(s)
	}
	return w.runs
}

// markdownSpace is the set goldmark trims from paragraph edges.
const markdownSpace = " \t\n\v\f\r"

// decodeText resolves backslash escapes and character references.
// Code span content is literal and must not be passed here.
func decodeText(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

func delta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

// runWriter accumulates text, merging consecutive writes with equal formatting.
type runWriter struct {
	runs               []Run
	bold, italic, code int
}

func (w *runWriter) write(s string) {
	if s == "" {
		return
	}
	r := Run{Text: s, Bold: w.bold > 0, Italic: w.italic > 0, Code: w.code > 0}
	if n := len(w.runs); n > 0 {
		last := &w.runs[n-1]
		if last.Bold == r.Bold && last.Italic == r.Italic && last.Code == r.Code {
			last.Text += s
			return
		}
	}
	w.runs = append(w.runs, r)
}
