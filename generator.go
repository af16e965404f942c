package pdd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-pdd/internal/assets"
	"github.com/alnah/go-pdd/internal/docx"
	"github.com/alnah/go-pdd/internal/pipeline"
)

// blockAssembler maps request fields to document blocks.
type blockAssembler interface {
	Assemble(f pipeline.Fields) []pipeline.Block
}

// documentWriter serializes blocks to a document archive.
type documentWriter interface {
	Write(w io.Writer, blocks []pipeline.Block, props docx.Properties) error
}

// Compile-time interface implementation checks.
var (
	_ blockAssembler = (*pipeline.Assembler)(nil)
	_ documentWriter = (*docx.Writer)(nil)
)

// defaultTimeout bounds a single generation.
const defaultTimeout = 30 * time.Second

// creator is recorded in the document properties.
const creator = "go-pdd"

// Option configures a Generator.
type Option func(*Generator)

type generatorConfig struct {
	timeout        time.Duration
	inlineMarkdown bool
	now            func() time.Time
}

// WithTimeout sets the generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdd: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithInlineMarkdown enables inline Markdown formatting of field text.
func WithInlineMarkdown(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.inlineMarkdown = enabled
	}
}

// WithClock sets the time source used for file names and document metadata.
// Panics if now is nil.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("pdd: WithClock requires a non-nil function")
	}
	return func(g *Generator) {
		g.cfg.now = now
	}
}

// Generator produces Process Definition Documents.
// Create with NewGenerator; safe for concurrent use.
type Generator struct {
	cfg       generatorConfig
	loader    assets.PartLoader
	assembler blockAssembler
	writer    documentWriter
}

// NewGenerator creates a Generator with default configuration.
// Returns ErrStaticPart if an embedded document part cannot be loaded.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout: defaultTimeout,
			now:     time.Now,
		},
		loader: assets.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Fail at construction rather than on the first request.
	for _, p := range assets.StaticParts() {
		if _, err := g.loader.LoadPart(p.Asset); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStaticPart, p.Path, err)
		}
	}

	if g.assembler == nil {
		var inline pipeline.InlineRenderer = pipeline.PlainText{}
		if g.cfg.inlineMarkdown {
			inline = pipeline.NewMarkdownInline()
		}
		g.assembler = pipeline.NewAssembler(inline)
	}
	if g.writer == nil {
		g.writer = docx.NewWriter(g.loader)
	}

	return g, nil
}

// Timeout returns the configured generation timeout.
func (g *Generator) Timeout() time.Duration {
	return g.cfg.timeout
}

// Generate validates req, assembles the template and serializes the document.
// Validation errors wrap ErrInvalidInput; all other failures wrap
// ErrGeneration. Recovers from internal panics.
func (g *Generator) Generate(ctx context.Context, req Request) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: internal error: %v", ErrGeneration, r)
		}
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	created := g.cfg.now()

	blocks := g.assembler.Assemble(req.fields())
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	var buf bytes.Buffer
	props := docx.Properties{
		Title:   req.Title,
		Creator: creator,
		Created: created,
	}
	if err := g.writer.Write(&buf, blocks, props); err != nil {
		return nil, fmt.Errorf("%w: serializing document: %v", ErrGeneration, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return &Result{
		FileName:  FileName(created),
		Document:  buf.Bytes(),
		CreatedAt: created,
	}, nil
}
