// Package book defines the structured book content model - the validated
// in-memory tree (book, chapters, paragraphs, formatting spans) which is the
// sole input to the formatting pipeline.
package book

import (
	"encoding/json"
	"fmt"
)

// SpanKind is a kind of inline emphasis a formatting span applies.
type SpanKind int

const (
	SpanBold SpanKind = iota
	SpanItalic
	SpanBoldItalic
)

var spanKindNames = []string{"bold", "italic", "bold-italic"}

func ParseSpanKind(name string) (SpanKind, error) {
	for i, n := range spanKindNames {
		if n == name {
			return SpanKind(i), nil
		}
	}
	return SpanBold, fmt.Errorf("%q is not a valid formatting kind", name)
}

func (k SpanKind) Valid() bool {
	return k >= SpanBold && k <= SpanBoldItalic
}

func (k SpanKind) Bold() bool {
	return k == SpanBold || k == SpanBoldItalic
}

func (k SpanKind) Italic() bool {
	return k == SpanItalic || k == SpanBoldItalic
}

func (k SpanKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("SpanKind(%d)", int(k))
	}
	return spanKindNames[k]
}

func (k SpanKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *SpanKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := ParseSpanKind(name)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Span is a character-offset-addressed annotation marking a substring of
// paragraph text. Offsets are byte offsets into the UTF-8 text, exactly what
// the generator slices later. Text keeps the addressed substring redundantly
// so producer and consumer cannot disagree about offsets silently.
type Span struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Kind  SpanKind `json:"type"`
	Text  string   `json:"text"`
}

type Paragraph struct {
	Text       string `json:"text"`
	Formatting []Span `json:"formatting,omitempty"`
}

type Chapter struct {
	Number     int         `json:"number"`
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

type Content struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Genre    string    `json:"genre"`
	Summary  string    `json:"summary"`
	Chapters []Chapter `json:"chapters"`
}

// ParseJSON decodes and validates book content supplied by the generation
// service. Both "summary" and legacy "plotSummary" keys are accepted.
func ParseJSON(data []byte) (*Content, error) {
	var raw struct {
		Content
		PlotSummary string `json:"plotSummary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode book content: %w", err)
	}
	c := raw.Content
	if len(c.Summary) == 0 {
		c.Summary = raw.PlotSummary
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
