package latex

import (
	"fmt"
	"sort"
	"strings"

	"bookc/book"
)

// ProcessingError reports span offsets which passed validation but turned out
// inconsistent at markup generation time, or a violated escaping invariant.
type ProcessingError struct {
	Chapter   int // 1-based, as shown to the user
	Paragraph int
	Reason    string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("chapter %d paragraph %d: %s", e.Chapter, e.Paragraph, e.Reason)
}

// Body holds generated markup for every chapter of the book, index-aligned
// with the source content. The template engine adds headings, labels and page
// breaks around these blocks.
type Body struct {
	Chapters []string
}

// GenerateBody produces paragraph markup for all chapters. Formatting spans
// are applied from the highest start offset to the lowest so not yet applied
// offsets stay valid, and escaping touches only plain text runs - never the
// emitted formatting commands.
func GenerateBody(c *book.Content) (*Body, error) {
	body := &Body{Chapters: make([]string, 0, len(c.Chapters))}
	for ci := range c.Chapters {
		ch := &c.Chapters[ci]
		paragraphs := make([]string, 0, len(ch.Paragraphs))
		for pi := range ch.Paragraphs {
			markup, err := FormatParagraph(&ch.Paragraphs[pi])
			if err != nil {
				return nil, &ProcessingError{Chapter: ci + 1, Paragraph: pi + 1, Reason: err.Error()}
			}
			paragraphs = append(paragraphs, markup)
		}
		body.Chapters = append(body.Chapters, strings.Join(paragraphs, "\n\n"))
	}
	return body, nil
}

// segment is a node of the partially formatted paragraph: either a plain text
// leaf (escaped when the markup is finally emitted) or a formatting command
// wrapping nested segments. Building the output from a segment list instead
// of splicing strings keeps emitted commands and to-be-escaped text apart by
// construction.
type segment struct {
	start, end int // coverage in the original paragraph text
	text       string
	wrapped    bool
	kind       book.SpanKind
	kids       []segment
}

// FormatParagraph renders a single paragraph to markup, applying its
// formatting spans and escaping reserved characters in the unformatted runs.
func FormatParagraph(p *book.Paragraph) (string, error) {
	segments := []segment{{start: 0, end: len(p.Text), text: p.Text}}

	// Descending by start: splicing from the back never shifts offsets that
	// are still waiting to be applied.
	spans := append([]book.Span{}, p.Formatting...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	for _, span := range spans {
		// defensive re-check, validation should have rejected these
		if span.Start < 0 || span.End > len(p.Text) || span.Start >= span.End {
			return "", fmt.Errorf("formatting span [%d:%d) is out of bounds for text of %d bytes", span.Start, span.End, len(p.Text))
		}
		if got := p.Text[span.Start:span.End]; got != span.Text {
			return "", fmt.Errorf("formatting span [%d:%d) addresses %q, span carries %q", span.Start, span.End, got, span.Text)
		}
		segments = applySpan(segments, span)
	}

	var sb strings.Builder
	emitSegments(&sb, segments)
	return sb.String(), nil
}

// applySpan wraps the [span.Start:span.End) region of the paragraph in a new
// formatting segment. Plain leaves at the region boundary are split; an
// already wrapped segment is indivisible, so a span overlapping one swallows
// it whole - overlapping spans therefore produce a deterministic nested
// command rather than corrupted markup.
func applySpan(segments []segment, span book.Span) []segment {
	var (
		out   []segment
		group []segment
	)
	flushGroup := func() {
		if len(group) == 0 {
			return
		}
		out = append(out, segment{
			start:   group[0].start,
			end:     group[len(group)-1].end,
			wrapped: true,
			kind:    span.Kind,
			kids:    group,
		})
		group = nil
	}

	for _, seg := range segments {
		if seg.end <= span.Start || seg.start >= span.End {
			flushGroup()
			out = append(out, seg)
			continue
		}
		if seg.wrapped {
			group = append(group, seg)
			continue
		}
		if before := span.Start - seg.start; before > 0 {
			flushGroup()
			out = append(out, segment{start: seg.start, end: span.Start, text: seg.text[:before]})
			seg = segment{start: span.Start, end: seg.end, text: seg.text[before:]}
		}
		if after := seg.end - span.End; after > 0 {
			group = append(group, segment{start: seg.start, end: span.End, text: seg.text[:len(seg.text)-after]})
			flushGroup()
			out = append(out, segment{start: span.End, end: seg.end, text: seg.text[len(seg.text)-after:]})
			continue
		}
		group = append(group, seg)
	}
	flushGroup()
	return out
}

func emitSegments(sb *strings.Builder, segments []segment) {
	for _, seg := range segments {
		if !seg.wrapped {
			sb.WriteString(Escape(seg.text))
			continue
		}
		var inner strings.Builder
		emitSegments(&inner, seg.kids)
		sb.WriteString(ApplyStyle(inner.String(), seg.kind))
	}
}

// ApplyStyle wraps already generated markup in the formatting command for
// kind. The argument must be markup, not raw text - escaping happens before
// wrapping, never after.
func ApplyStyle(s string, kind book.SpanKind) string {
	switch kind {
	case book.SpanBold:
		return `\textbf{` + s + `}`
	case book.SpanItalic:
		return `\emph{` + s + `}`
	case book.SpanBoldItalic:
		return `\textbf{\emph{` + s + `}}`
	}
	return s
}
