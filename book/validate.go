package book

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ValidationError describes a single inconsistency in the content tree. Path
// addresses the offending field the way the generation service sees it, for
// example "chapters[2].paragraphs[5].formatting[0].start".
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Path + ": " + e.Reason
}

func invalid(reason string, path string, args ...any) error {
	return &ValidationError{Path: fmt.Sprintf(path, args...), Reason: reason}
}

// Validate walks the whole content tree eagerly and reports every
// inconsistency found. It never modifies the tree - mismatches are errors,
// not something to auto-correct. Validating an already valid tree is a no-op.
func Validate(c *Content) (err error) {
	if c == nil {
		return invalid("content is missing", "")
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", c.Title},
		{"author", c.Author},
		{"genre", c.Genre},
		{"summary", c.Summary},
	} {
		if len(strings.TrimSpace(f.value)) == 0 {
			err = multierr.Append(err, invalid("must not be empty", "%s", f.name))
		}
	}

	if len(c.Chapters) == 0 {
		err = multierr.Append(err, invalid("book must have at least one chapter", "chapters"))
		return err
	}

	for i := range c.Chapters {
		err = multierr.Append(err, validateChapter(&c.Chapters[i], i))
	}
	return err
}

func validateChapter(ch *Chapter, idx int) (err error) {
	if ch.Number < 1 {
		err = multierr.Append(err, invalid("chapter number must be a positive integer", "chapters[%d].number", idx))
	} else if ch.Number != idx+1 {
		err = multierr.Append(err, invalid(
			fmt.Sprintf("chapter number %d does not match position %d in sequence", ch.Number, idx+1),
			"chapters[%d].number", idx))
	}
	if len(strings.TrimSpace(ch.Title)) == 0 {
		err = multierr.Append(err, invalid("chapter title must not be empty", "chapters[%d].title", idx))
	}
	if len(ch.Paragraphs) == 0 {
		err = multierr.Append(err, invalid("chapter must have at least one paragraph", "chapters[%d].paragraphs", idx))
		return err
	}
	for i := range ch.Paragraphs {
		err = multierr.Append(err, validateParagraph(&ch.Paragraphs[i], idx, i))
	}
	return err
}

func validateParagraph(p *Paragraph, chIdx, pIdx int) (err error) {
	for i, span := range p.Formatting {
		err = multierr.Append(err, validateSpan(span, p.Text, chIdx, pIdx, i))
	}
	return err
}

func validateSpan(s Span, text string, chIdx, pIdx, sIdx int) error {
	path := fmt.Sprintf("chapters[%d].paragraphs[%d].formatting[%d]", chIdx, pIdx, sIdx)

	if s.Start < 0 {
		return invalid("start offset must not be negative", "%s.start", path)
	}
	if s.End > len(text) {
		return invalid(fmt.Sprintf("end offset %d is past the end of text (%d bytes)", s.End, len(text)), "%s.end", path)
	}
	if s.Start >= s.End {
		return invalid(fmt.Sprintf("start offset %d must be less than end offset %d", s.Start, s.End), "%s", path)
	}
	if !s.Kind.Valid() {
		return invalid(fmt.Sprintf("unknown formatting kind %d", int(s.Kind)), "%s.type", path)
	}
	if got := text[s.Start:s.End]; got != s.Text {
		return invalid(fmt.Sprintf("span text %q does not match addressed substring %q", s.Text, got), "%s", path)
	}
	return nil
}
