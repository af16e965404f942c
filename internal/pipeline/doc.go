// Package pipeline builds the block model of a Process Definition Document.
//
// The document layout is fixed: a cover page, a static table of contents,
// and an introduction whose sections are filled from request fields.
// Assemble produces an ordered []Block that the docx package serializes.
//
// Field text is passed through an InlineRenderer. PlainText keeps it
// verbatim; MarkdownInline maps inline Markdown emphasis to bold and italic
// runs via goldmark. Template text never goes through the renderer.
package pipeline
