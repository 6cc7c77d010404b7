package pdf

import (
	"reflect"
	"strings"
	"testing"

	"bookc/book"
)

// charWidths makes wrapping arithmetic exact: every byte is 10 units wide in
// the regular style, bold and italic glyphs are wider.
func charWidths(text string, bold, italic bool) float64 {
	per := 10.0
	switch {
	case bold && italic:
		per = 13
	case bold:
		per = 12
	case italic:
		per = 11
	}
	return float64(len(text)) * per
}

func lineText(ln renderedLine) string {
	var sb strings.Builder
	for _, run := range ln.runs {
		sb.WriteString(run.text)
	}
	return sb.String()
}

func TestSplitRuns(t *testing.T) {
	cases := []struct {
		name string
		p    book.Paragraph
		want []styledRun
	}{
		{"no spans", book.Paragraph{Text: "plain"}, []styledRun{{"plain", false, false}}},
		{"bold prefix", book.Paragraph{
			Text:       "Hello world",
			Formatting: []book.Span{{Start: 0, End: 5, Kind: book.SpanBold, Text: "Hello"}},
		}, []styledRun{{"Hello", true, false}, {" world", false, false}}},
		{"nested italic inside bold", book.Paragraph{
			Text: "Hello world",
			Formatting: []book.Span{
				{Start: 0, End: 11, Kind: book.SpanBold, Text: "Hello world"},
				{Start: 6, End: 11, Kind: book.SpanItalic, Text: "world"},
			},
		}, []styledRun{{"Hello ", true, false}, {"world", true, true}}},
		{"overlap combines styles", book.Paragraph{
			Text: "abcdef",
			Formatting: []book.Span{
				{Start: 0, End: 4, Kind: book.SpanBold, Text: "abcd"},
				{Start: 2, End: 6, Kind: book.SpanItalic, Text: "cdef"},
			},
		}, []styledRun{{"ab", true, false}, {"cd", true, true}, {"ef", false, true}}},
		{"adjacent same style coalesced", book.Paragraph{
			Text: "one two",
			Formatting: []book.Span{
				{Start: 0, End: 3, Kind: book.SpanBold, Text: "one"},
				{Start: 3, End: 7, Kind: book.SpanBold, Text: " two"},
			},
		}, []styledRun{{"one two", true, false}}},
		{"stray span ignored", book.Paragraph{
			Text:       "short",
			Formatting: []book.Span{{Start: 2, End: 50, Kind: book.SpanBold, Text: "ort"}},
		}, []styledRun{{"short", false, false}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := splitRuns(&tc.p); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestWrapRunsBasic(t *testing.T) {
	// 10 units per char, 200 wide: at most 20 regular characters per line
	lines := wrapRuns([]styledRun{{text: "the quick brown fox jumps over the lazy dog"}}, charWidths, 200)

	want := []string{"the quick brown fox", "jumps over the lazy", "dog"}
	var got []string
	for _, ln := range lines {
		got = append(got, lineText(ln))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got lines %q, want %q", got, want)
	}
}

func TestWrapRunsKeepsWithinWidth(t *testing.T) {
	const maxWidth = 150
	runs := splitRuns(&book.Paragraph{
		Text: "a measured mix of bold and regular words flowing on",
		Formatting: []book.Span{
			{Start: 2, End: 10, Kind: book.SpanBold, Text: "measured"},
			{Start: 18, End: 22, Kind: book.SpanBoldItalic, Text: "bold"},
		},
	})

	lines := wrapRuns(runs, charWidths, maxWidth)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if len(ln.runs) > 1 && ln.width > maxWidth {
			t.Errorf("line %d is %g wide, exceeds %d: %q", i, ln.width, maxWidth, lineText(ln))
		}
		var measured float64
		for _, run := range ln.runs {
			measured += charWidths(run.text, run.bold, run.italic)
		}
		if measured != ln.width {
			t.Errorf("line %d caches width %g, runs measure %g", i, ln.width, measured)
		}
	}

	// no words lost or reordered
	var rebuilt []string
	for _, ln := range lines {
		rebuilt = append(rebuilt, lineText(ln))
	}
	if got := strings.Join(rebuilt, " "); got != "a measured mix of bold and regular words flowing on" {
		t.Errorf("rebuilt text %q differs from input", got)
	}
}

func TestWrapRunsStyleSwitchMidLine(t *testing.T) {
	runs := []styledRun{
		{text: "go ", bold: false},
		{text: "boldly", bold: true},
		{text: " on", bold: false},
	}
	lines := wrapRuns(runs, charWidths, 1000)
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	want := []styledRun{{"go ", false, false}, {"boldly", true, false}, {" on", false, false}}
	if !reflect.DeepEqual(lines[0].runs, want) {
		t.Errorf("got runs %+v, want %+v", lines[0].runs, want)
	}
}

func TestWrapRunsOverwideToken(t *testing.T) {
	lines := wrapRuns([]styledRun{{text: "tiny incomprehensibilities end"}}, charWidths, 100)

	want := []string{"tiny", "incomprehensibilities", "end"}
	var got []string
	for _, ln := range lines {
		got = append(got, lineText(ln))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got lines %q, want %q", got, want)
	}
}

func TestWrapRunsEmpty(t *testing.T) {
	if lines := wrapRuns(nil, charWidths, 100); lines != nil {
		t.Errorf("got %d lines for empty input", len(lines))
	}
	if lines := wrapRuns([]styledRun{{text: "   "}}, charWidths, 100); lines != nil {
		t.Errorf("whitespace-only input produced %d lines", len(lines))
	}
}
