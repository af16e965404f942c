// Package pdd generates Process Definition Documents as .docx files.
//
// # Quick Start
//
// Create a generator and generate a document from a request:
//
//	gen, err := pdd.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, pdd.Request{
//	    Title:        "Invoice Intake",
//	    Objectives:   []string{"Reduce manual entry"},
//	    Requirements: []string{},
//	    ManualSteps:  []string{"Open mailbox", "Download PDF"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.FileName, result.Document, 0o600)
//
// # Generation Pipeline
//
//  1. Request validation (title and list presence)
//  2. Block assembly from the fixed template (internal/pipeline)
//  3. WordprocessingML serialization (internal/docx)
//
// The HTTP API returns the document base64-encoded; Result.Response builds
// that JSON shape.
//
// # Decoding Raw JSON
//
// DecodeRequest applies the HTTP endpoint's rules to a raw body: JSON Schema
// shape validation followed by lenient coercion of optional fields and list
// entries. Errors wrapping ErrInvalidInput are client errors; everything else
// is a generation failure.
//
// # Configuration
//
//	gen, err := pdd.NewGenerator(
//	    pdd.WithTimeout(10 * time.Second),
//	    pdd.WithInlineMarkdown(true),
//	)
//
// With inline Markdown enabled, **bold**, *italic* and `code` in field text
// become character formatting. Template text is never interpreted.
//
// A Generator is immutable after construction and safe for concurrent use.
package pdd
