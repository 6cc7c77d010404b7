package convert

import (
	"context"

	"go.uber.org/zap"

	"bookc/book"
	"bookc/config"
	"bookc/convert/latex"
	"bookc/convert/pdf"
)

// Backend is a complete rendering path: it produces the output binary and
// describes how the path represents styling and breaks in generated text.
// The engine path emits markup commands around escaped text; the direct path
// styles glyphs at draw time, so every markup transform on it is the identity.
type Backend interface {
	Name() string
	Render(ctx context.Context, c *book.Content, cfg *config.DocumentConfig, log *zap.Logger) (bin []byte, warnings []string, err error)
	Escape(s string) string
	ApplyStyle(s string, kind book.SpanKind) string
	ChapterBreak() string
	PageBreakDirective() string
}

// latexBackend generates markup and hands it to the external engine. The
// markup methods delegate to the latex package, which is the single owner of
// the command vocabulary.
type latexBackend struct {
	engine *latex.Engine
}

func (latexBackend) Name() string { return "latex" }

func (b latexBackend) Render(ctx context.Context, c *book.Content, cfg *config.DocumentConfig, log *zap.Logger) ([]byte, []string, error) {
	body, err := latex.GenerateBody(c)
	if err != nil {
		return nil, nil, err
	}
	document, err := latex.WrapDocument(c, body, &cfg.Template)
	if err != nil {
		return nil, nil, err
	}
	passes := 1
	if cfg.Template.TOC.Enable {
		// second pass resolves the table of contents
		passes = 2
	}
	return b.engine.Render(ctx, document, passes, log)
}

func (latexBackend) Escape(s string) string { return latex.Escape(s) }

func (latexBackend) ApplyStyle(s string, kind book.SpanKind) string {
	return latex.ApplyStyle(s, kind)
}

func (latexBackend) ChapterBreak() string       { return latex.ChapterBreak }
func (latexBackend) PageBreakDirective() string { return latex.PageBreak }

type directBackend struct{}

func (directBackend) Name() string { return "direct" }

func (directBackend) Render(ctx context.Context, c *book.Content, cfg *config.DocumentConfig, log *zap.Logger) ([]byte, []string, error) {
	bin, err := pdf.NewRenderer(&cfg.Template, log).Render(c)
	return bin, nil, err
}

func (directBackend) Escape(s string) string                      { return s }
func (directBackend) ApplyStyle(s string, _ book.SpanKind) string { return s }
func (directBackend) ChapterBreak() string                        { return "" }
func (directBackend) PageBreakDirective() string                  { return "" }
