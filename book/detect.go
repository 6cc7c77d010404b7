package book

import (
	"regexp"
	"sort"
	"strings"
)

// Informal emphasis markers as the legacy generation path produced them.
// Longest marker first so ***both*** is not picked apart as bold over italic.
var emphasisMarkers = []struct {
	re   *regexp.Regexp
	kind SpanKind
}{
	{regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`), SpanBoldItalic},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), SpanBold},
	{regexp.MustCompile(`\*([^*]+)\*`), SpanItalic},
}

type emphasisMatch struct {
	start, end           int // marked region in the original text, markers included
	innerStart, innerEnd int // marked text without markers
	kind                 SpanKind
}

// DetectFormatting converts informal emphasis markers embedded in plain text
// into explicit formatting spans. Returned offsets address the clean
// (marker-stripped) text, which is why collection and rebuilding happen in a
// single left to right pass - stripping markers first and detecting after (or
// the other way around) shifts every offset past the first replacement.
func DetectFormatting(text string) (string, []Span) {
	var matches []emphasisMatch
	for _, marker := range emphasisMarkers {
		for _, loc := range marker.re.FindAllStringSubmatchIndex(text, -1) {
			cand := emphasisMatch{start: loc[0], end: loc[1], innerStart: loc[2], innerEnd: loc[3], kind: marker.kind}
			// a shorter marker matching inside an already claimed region is
			// just the longer marker seen again
			if overlapsAny(matches, cand) {
				continue
			}
			matches = append(matches, cand)
		}
	}
	if len(matches) == 0 {
		return text, nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var (
		clean strings.Builder
		spans []Span
	)
	clean.Grow(len(text))

	pos := 0
	for _, m := range matches {
		clean.WriteString(text[pos:m.start])
		start := clean.Len()
		inner := text[m.innerStart:m.innerEnd]
		clean.WriteString(inner)
		spans = append(spans, Span{Start: start, End: clean.Len(), Kind: m.kind, Text: inner})
		pos = m.end
	}
	clean.WriteString(text[pos:])

	return clean.String(), spans
}

func overlapsAny(matches []emphasisMatch, cand emphasisMatch) bool {
	for _, m := range matches {
		if cand.start < m.end && m.start < cand.end {
			return true
		}
	}
	return false
}

// NormalizeLegacy runs the emphasis detector over every paragraph that
// carries no explicit formatting annotations. Paragraphs that already have
// spans are left alone - their offsets address the text as is.
func NormalizeLegacy(c *Content) {
	for i := range c.Chapters {
		for j := range c.Chapters[i].Paragraphs {
			p := &c.Chapters[i].Paragraphs[j]
			if len(p.Formatting) != 0 || !strings.ContainsRune(p.Text, '*') {
				continue
			}
			p.Text, p.Formatting = DetectFormatting(p.Text)
		}
	}
}
