package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-pdd/internal/assets"
	"github.com/alnah/go-pdd/internal/pipeline"
)

// Paths of the generated parts.
const (
	documentPath = "word/document.xml"
	corePath     = "docProps/core.xml"
)

// Properties holds package metadata written to docProps/core.xml.
type Properties struct {
	Title   string
	Creator string
	Created time.Time // zero omits timestamps
}

// Writer serializes blocks into a .docx archive.
type Writer struct {
	loader assets.PartLoader
}

// NewWriter creates a Writer that reads static parts from loader.
// A nil loader uses the embedded defaults.
func NewWriter(loader assets.PartLoader) *Writer {
	if loader == nil {
		loader = assets.Default()
	}
	return &Writer{loader: loader}
}

// Write encodes blocks as a complete .docx archive to out.
func (w *Writer) Write(out io.Writer, blocks []pipeline.Block, props Properties) error {
	zw := zip.NewWriter(out)

	for _, p := range assets.StaticParts() {
		content, err := w.loader.LoadPart(p.Asset)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPart, p.Path, err)
		}
		if err := writePart(zw, p.Path, content, props.Created); err != nil {
			return err
		}
	}

	body, err := marshalPart(buildDocument(blocks))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPart, documentPath, err)
	}
	if err := writePart(zw, documentPath, body, props.Created); err != nil {
		return err
	}

	core, err := marshalPart(buildCore(props))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPart, corePath, err)
	}
	if err := writePart(zw, corePath, core, props.Created); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: closing archive: %v", ErrPart, err)
	}
	return nil
}

func writePart(zw *zip.Writer, name string, content []byte, modified time.Time) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPart, name, err)
	}
	if _, err := fw.Write(content); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPart, name, err)
	}
	return nil
}

func marshalPart(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Block mapping
// ---------------------------------------------------------------------------

func buildDocument(blocks []pipeline.Block) *document {
	paras := make([]paragraph, 0, len(blocks))
	for _, b := range blocks {
		paras = append(paras, buildParagraph(b))
	}
	return &document{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body: body{
			Paragraphs: paras,
			SectPr: sectPr{
				PgSz: pgSz{W: pageWidth, H: pageHeight},
				PgMar: pgMar{
					Top:    pageMargin,
					Right:  pageMargin,
					Bottom: pageMargin,
					Left:   pageMargin,
					Header: headerMargin,
					Footer: headerMargin,
				},
			},
		},
	}
}

func buildParagraph(b pipeline.Block) paragraph {
	if b.Kind == pipeline.KindPageBreak {
		return paragraph{Runs: []run{{Br: &br{Type: "page"}}}}
	}

	props := &pPr{}
	switch b.Kind {
	case pipeline.KindHeading:
		props.Style = &val{Val: "Heading" + strconv.Itoa(b.Heading)}
	case pipeline.KindBulletItem:
		props.Style = &val{Val: "ListParagraph"}
		props.NumPr = &numPr{Ilvl: val{Val: "0"}, NumID: val{Val: strconv.Itoa(numBullet)}}
	case pipeline.KindNumberedItem:
		props.Style = &val{Val: "ListParagraph"}
		props.NumPr = &numPr{Ilvl: val{Val: "0"}, NumID: val{Val: strconv.Itoa(numDecimal)}}
	}
	if b.PageBreakBefore {
		props.PageBreakBefore = &empty{}
	}
	if b.Spacing != (pipeline.Spacing{}) {
		props.Spacing = &spacing{Before: b.Spacing.Before, After: b.Spacing.After}
	}
	if b.Indent > 0 {
		props.Ind = &ind{Left: b.Indent}
	}
	if b.Align == pipeline.AlignCenter {
		props.Jc = &val{Val: "center"}
	}

	p := paragraph{PPr: props}
	for _, r := range b.Runs {
		p.Runs = append(p.Runs, buildRuns(b, r)...)
	}
	if *props == (pPr{}) {
		p.PPr = nil
	}
	return p
}

// buildRuns splits text on newlines, emitting a line break before each
// continuation line.
func buildRuns(b pipeline.Block, r pipeline.Run) []run {
	props := buildRunProps(b, r)
	lines := strings.Split(r.Text, "\n")
	out := make([]run, 0, len(lines))
	for i, line := range lines {
		rn := run{RPr: props}
		if i > 0 {
			rn.Br = &br{}
		}
		if line != "" || i == 0 {
			rn.T = &text{Space: "preserve", Value: line}
		}
		out = append(out, rn)
	}
	return out
}

func buildRunProps(b pipeline.Block, r pipeline.Run) *rPr {
	props := &rPr{}
	if r.Code {
		props.Style = &val{Val: "InlineCode"}
	}
	if b.Bold || r.Bold {
		props.B = &empty{}
	}
	if r.Italic {
		props.I = &empty{}
	}
	if b.Size > 0 {
		size := strconv.Itoa(b.Size)
		props.Sz = &val{Val: size}
		props.SzCs = &val{Val: size}
	}
	if *props == (rPr{}) {
		return nil
	}
	return props
}

func buildCore(props Properties) *coreProperties {
	cp := &coreProperties{
		XmlnsCP:  nsCP,
		XmlnsDC:  nsDC,
		XmlnsDCT: nsDCTerms,
		XmlnsXSI: nsXSI,
		Title:    props.Title,
		Creator:  props.Creator,
	}
	if !props.Created.IsZero() {
		ts := props.Created.UTC().Format(time.RFC3339)
		cp.Created = &w3cdtf{Type: "dcterms:W3CDTF", Value: ts}
		cp.Modified = &w3cdtf{Type: "dcterms:W3CDTF", Value: ts}
	}
	return cp
}
