package book

import (
	"strings"
)

// ChapterFromMarkdown builds a chapter from legacy markdown-ish chapter text:
// paragraphs separated by blank lines, optional "##"/"###" headings, "-"/"*"
// list items and informal emphasis markers. Heading text becomes a fully bold
// paragraph, list items keep a bullet - the content model has no block kinds
// beyond the paragraph.
func ChapterFromMarkdown(number int, title, text string) Chapter {
	return Chapter{
		Number:     number,
		Title:      title,
		Paragraphs: SplitParagraphs(text),
	}
}

// SplitParagraphs breaks a blank-line separated text blob into paragraphs,
// joining intra-paragraph line breaks with spaces and converting emphasis
// markers into formatting spans.
func SplitParagraphs(text string) []Paragraph {
	var (
		paragraphs []Paragraph
		current    []string
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		paragraphs = append(paragraphs, plainParagraph(strings.Join(current, " ")))
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case len(line) == 0:
			flush()
		case strings.HasPrefix(line, "#"):
			flush()
			heading := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if len(heading) == 0 {
				continue
			}
			clean, spans := DetectFormatting(heading)
			// heading stands out as a single bold paragraph
			paragraphs = append(paragraphs, Paragraph{
				Text:       clean,
				Formatting: mergeBold(clean, spans),
			})
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			flush()
			paragraphs = append(paragraphs, plainParagraph("• "+strings.TrimSpace(line[2:])))
		default:
			current = append(current, line)
		}
	}
	flush()

	return paragraphs
}

// ContentFromMarkdown assembles a complete content model from a standalone
// markdown document: the first level one heading becomes the book title, every
// level two heading opens a new chapter and text before the first chapter
// feeds the summary. Metadata the format cannot express is filled with
// placeholders so the result still validates.
func ContentFromMarkdown(text, fallbackTitle string) *Content {
	c := &Content{Author: "Unknown", Genre: "General"}

	type rawChapter struct {
		title string
		lines []string
	}
	var (
		preamble []string
		raw      []rawChapter
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "# ") && len(c.Title) == 0 && len(raw) == 0:
			c.Title = strings.TrimSpace(trimmed[2:])
		case strings.HasPrefix(trimmed, "## "):
			raw = append(raw, rawChapter{title: strings.TrimSpace(trimmed[3:])})
		case len(raw) == 0:
			preamble = append(preamble, line)
		default:
			raw[len(raw)-1].lines = append(raw[len(raw)-1].lines, line)
		}
	}

	if len(c.Title) == 0 {
		c.Title = fallbackTitle
	}
	if len(raw) == 0 {
		// no chapter headings, the whole document is one chapter
		raw = append(raw, rawChapter{title: c.Title, lines: preamble})
		preamble = nil
	}
	for i, rc := range raw {
		c.Chapters = append(c.Chapters, ChapterFromMarkdown(i+1, rc.title, strings.Join(rc.lines, "\n")))
	}

	if sum := SplitParagraphs(strings.Join(preamble, "\n")); len(sum) != 0 {
		c.Summary = sum[0].Text
	}
	if len(strings.TrimSpace(c.Summary)) == 0 {
		c.Summary = c.Title
	}
	return c
}

func plainParagraph(text string) Paragraph {
	clean, spans := DetectFormatting(text)
	return Paragraph{Text: clean, Formatting: spans}
}

// mergeBold covers the whole text with a bold span, upgrading detected
// italic regions to bold-italic instead of stacking overlapping spans.
func mergeBold(text string, detected []Span) []Span {
	var spans []Span
	pos := 0
	for _, s := range detected {
		if s.Start > pos {
			spans = append(spans, Span{Start: pos, End: s.Start, Kind: SpanBold, Text: text[pos:s.Start]})
		}
		kind := SpanBold
		if s.Kind.Italic() {
			kind = SpanBoldItalic
		}
		spans = append(spans, Span{Start: s.Start, End: s.End, Kind: kind, Text: s.Text})
		pos = s.End
	}
	if pos < len(text) {
		spans = append(spans, Span{Start: pos, End: len(text), Kind: SpanBold, Text: text[pos:]})
	}
	return spans
}
