package docx

import "encoding/xml"

// Namespaces used by the generated parts.
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
)

// xmlHeader is written before every generated part.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Page geometry in twips. A4 portrait, one inch margins.
const (
	pageWidth    = 11906
	pageHeight   = 16838
	pageMargin   = 1440
	headerMargin = 708
)

// Numbering instances defined in numbering.xml.
const (
	numBullet  = 1
	numDecimal = 2
)

// Element names carry the w: prefix literally; the namespace is declared
// once on the root element.

type document struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    body     `xml:"w:body"`
}

type body struct {
	Paragraphs []paragraph `xml:"w:p"`
	SectPr     sectPr      `xml:"w:sectPr"`
}

type paragraph struct {
	PPr  *pPr  `xml:"w:pPr,omitempty"`
	Runs []run `xml:"w:r"`
}

// pPr fields follow the schema sequence of CT_PPrBase.
type pPr struct {
	Style           *val     `xml:"w:pStyle,omitempty"`
	PageBreakBefore *empty   `xml:"w:pageBreakBefore,omitempty"`
	NumPr           *numPr   `xml:"w:numPr,omitempty"`
	Spacing         *spacing `xml:"w:spacing,omitempty"`
	Ind             *ind     `xml:"w:ind,omitempty"`
	Jc              *val     `xml:"w:jc,omitempty"`
}

type numPr struct {
	Ilvl  val `xml:"w:ilvl"`
	NumID val `xml:"w:numId"`
}

type spacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type ind struct {
	Left int `xml:"w:left,attr"`
}

type run struct {
	RPr *rPr  `xml:"w:rPr,omitempty"`
	Br  *br   `xml:"w:br,omitempty"`
	T   *text `xml:"w:t,omitempty"`
}

// rPr fields follow the schema sequence of CT_RPr.
type rPr struct {
	Style *val   `xml:"w:rStyle,omitempty"`
	B     *empty `xml:"w:b,omitempty"`
	I     *empty `xml:"w:i,omitempty"`
	Sz    *val   `xml:"w:sz,omitempty"`
	SzCs  *val   `xml:"w:szCs,omitempty"`
}

type br struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type text struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type val struct {
	Val string `xml:"w:val,attr"`
}

type empty struct{}

type sectPr struct {
	PgSz  pgSz  `xml:"w:pgSz"`
	PgMar pgMar `xml:"w:pgMar"`
}

type pgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type coreProperties struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	XmlnsCP  string   `xml:"xmlns:cp,attr"`
	XmlnsDC  string   `xml:"xmlns:dc,attr"`
	XmlnsDCT string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title,omitempty"`
	Creator  string   `xml:"dc:creator,omitempty"`
	Created  *w3cdtf  `xml:"dcterms:created,omitempty"`
	Modified *w3cdtf  `xml:"dcterms:modified,omitempty"`
}

type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}
