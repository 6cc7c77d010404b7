package pdf

import (
	"sort"
	"strings"

	"bookc/book"
)

// styledRun is a stretch of paragraph text rendered under a single style.
type styledRun struct {
	text   string
	bold   bool
	italic bool
}

// splitRuns splits paragraph text into style-tagged runs by applying its
// formatting spans from the highest start offset to the lowest. A span
// overlapping an already styled region combines styles on the overlap, so
// overlapping spans produce a defined result here just like on the markup
// path.
func splitRuns(p *book.Paragraph) []styledRun {
	type piece struct {
		start, end int
		text       string
		bold       bool
		italic     bool
	}

	pieces := []piece{{start: 0, end: len(p.Text), text: p.Text}}

	spans := append([]book.Span{}, p.Formatting...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	for _, span := range spans {
		if span.Start < 0 || span.End > len(p.Text) || span.Start >= span.End {
			// validation rejects these, do not let a stray span panic the renderer
			continue
		}
		out := make([]piece, 0, len(pieces)+2)
		for _, pc := range pieces {
			if pc.end <= span.Start || pc.start >= span.End {
				out = append(out, pc)
				continue
			}
			s, e := max(pc.start, span.Start), min(pc.end, span.End)
			if s > pc.start {
				out = append(out, piece{pc.start, s, pc.text[:s-pc.start], pc.bold, pc.italic})
			}
			out = append(out, piece{s, e, pc.text[s-pc.start : e-pc.start],
				pc.bold || span.Kind.Bold(), pc.italic || span.Kind.Italic()})
			if e < pc.end {
				out = append(out, piece{e, pc.end, pc.text[e-pc.start:], pc.bold, pc.italic})
			}
		}
		pieces = out
	}

	var runs []styledRun
	for _, pc := range pieces {
		if len(pc.text) == 0 {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].bold == pc.bold && runs[n-1].italic == pc.italic {
			runs[n-1].text += pc.text
			continue
		}
		runs = append(runs, styledRun{pc.text, pc.bold, pc.italic})
	}
	return runs
}

// tokenize splits run text into word tokens, each keeping its leading
// whitespace so concatenating tokens reproduces the original spacing.
func tokenize(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		for j < len(s) && !isSpace(s[j]) {
			j++
		}
		tokens = append(tokens, s[i:j])
		i = j
	}
	return tokens
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

type measureFunc func(text string, bold, italic bool) float64

// renderedLine is one laid out line: style runs plus the measured width they
// take together.
type renderedLine struct {
	runs  []styledRun
	width float64
}

// wrapRuns greedily accumulates word tokens into lines, measuring every token
// under its own run's style - bold and italic glyphs are wider than regular
// ones at the same point size. Adjacent tokens sharing a style are coalesced
// into a single run to keep style changes on the backend to a minimum.
//
// A single token wider than maxWidth is emitted alone on an over-wide line:
// wrapping is word-level only, there is no forced hyphenation.
func wrapRuns(runs []styledRun, measure measureFunc, maxWidth float64) []renderedLine {
	var (
		lines []renderedLine
		cur   renderedLine
	)
	flush := func() {
		if len(cur.runs) == 0 {
			return
		}
		lines = append(lines, cur)
		cur = renderedLine{}
	}

	for _, run := range runs {
		for _, tok := range tokenize(run.text) {
			w := measure(tok, run.bold, run.italic)
			if len(cur.runs) != 0 && cur.width+w > maxWidth {
				flush()
			}
			if len(cur.runs) == 0 {
				// a fresh line never starts with the separator whitespace
				trimmed := strings.TrimLeft(tok, " \t\n\r")
				if len(trimmed) == 0 {
					continue
				}
				if trimmed != tok {
					tok = trimmed
					w = measure(tok, run.bold, run.italic)
				}
			}
			if n := len(cur.runs); n > 0 && cur.runs[n-1].bold == run.bold && cur.runs[n-1].italic == run.italic {
				cur.runs[n-1].text += tok
			} else {
				cur.runs = append(cur.runs, styledRun{tok, run.bold, run.italic})
			}
			cur.width += w
		}
	}
	flush()
	return lines
}
