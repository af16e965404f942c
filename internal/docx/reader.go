package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Paragraph is a read-back view of one w:p element.
type Paragraph struct {
	Style     string
	NumID     string
	Text      string
	PageBreak bool // contains a page break run
	Bold      bool // first run is bold
	Size      string
}

// ReadParagraphs extracts the body paragraphs of a .docx archive.
// Line breaks inside a paragraph are returned as "\n".
func ReadParagraphs(data []byte) ([]Paragraph, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	var f *zip.File
	for _, zf := range zr.File {
		if zf.Name == documentPath {
			f = zf
			break
		}
	}
	if f == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrArchive, documentPath)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	defer func() { _ = rc.Close() }()

	return decodeParagraphs(rc)
}

func decodeParagraphs(r io.Reader) ([]Paragraph, error) {
	dec := xml.NewDecoder(r)

	var (
		out       []Paragraph
		cur       *Paragraph
		sb        strings.Builder
		inText    bool
		inRunProp bool
		runIndex  int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArchive, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur = &Paragraph{}
				sb.Reset()
				runIndex = 0
			case "pStyle":
				if cur != nil {
					cur.Style = attr(t, "val")
				}
			case "numId":
				if cur != nil {
					cur.NumID = attr(t, "val")
				}
			case "r":
				runIndex++
			case "rPr":
				inRunProp = true
			case "b":
				if cur != nil && inRunProp && runIndex == 1 {
					cur.Bold = true
				}
			case "sz":
				if cur != nil && inRunProp && runIndex == 1 {
					cur.Size = attr(t, "val")
				}
			case "br":
				if cur == nil {
					break
				}
				if attr(t, "type") == "page" {
					cur.PageBreak = true
				} else {
					sb.WriteString("\n")
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if cur != nil {
					cur.Text = sb.String()
					out = append(out, *cur)
					cur = nil
				}
			case "rPr":
				inRunProp = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
