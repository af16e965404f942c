// Package docx serializes pipeline blocks into a WordprocessingML package.
//
// The archive contains the static parts from the assets package plus two
// generated parts: word/document.xml (the body) and docProps/core.xml
// (title and timestamps). Page size is A4 portrait with one-inch margins.
//
// Block mapping:
//
//	KindParagraph     -> w:p
//	KindHeading       -> w:p with pStyle Heading1 or Heading2
//	KindBulletItem    -> w:p with ListParagraph, numId 1
//	KindNumberedItem  -> w:p with ListParagraph, numId 2
//	KindPageBreak     -> w:p containing w:br type="page"
//
// Newlines inside run text become w:br line breaks.
package docx
