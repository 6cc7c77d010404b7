package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"bookc/book"
	"bookc/config"
)

// Core PDF font, always embedded, metric-complete for B, I and BI styles.
const fontFamily = "Times"

// Renderer typesets book content straight into a PDF without an external
// engine. Layout is intentionally simpler than the engine path: word wrap,
// pagination, centered headings and footer page numbers, no justification
// and no hyphenation.
type Renderer struct {
	cfg *config.TemplateConfig
	log *zap.Logger
}

func NewRenderer(cfg *config.TemplateConfig, log *zap.Logger) *Renderer {
	return &Renderer{cfg: cfg, log: log}
}

// Render produces the complete document: title page, optional copyright page,
// optional table of contents and one fresh page per chapter.
func (r *Renderer) Render(c *book.Content) ([]byte, error) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: r.cfg.PageWidth, Ht: r.cfg.PageHeight},
	})
	doc.SetTitle(c.Title, true)
	doc.SetAuthor(c.Author, true)
	doc.SetMargins(r.cfg.MarginInside, r.cfg.MarginTop, r.cfg.MarginOutside)
	// the vertical cursor below decides page breaks, not the library
	doc.SetAutoPageBreak(false, 0)

	st := &renderState{
		doc:  doc,
		cfg:  r.cfg,
		font: NewFontState(doc, fontFamily),
	}
	doc.SetFooterFunc(st.footer)

	st.titlePage(c)
	if r.cfg.CopyrightPage {
		st.copyrightPage(c)
	}
	if r.cfg.TOC.Enable {
		st.contentsPage(c)
	}
	for i := range c.Chapters {
		st.chapter(&c.Chapters[i])
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("direct rendering failed: %w", err)
	}
	r.log.Debug("Rendered document directly",
		zap.Int("pages", doc.PageCount()),
		zap.Int("size", buf.Len()))
	return buf.Bytes(), nil
}

// renderState carries the vertical cursor and the font cache through the
// page building calls. The footer hook shares the font cache so footer font
// switches never leave the cache stale.
type renderState struct {
	doc  *gofpdf.Fpdf
	cfg  *config.TemplateConfig
	font *FontState
	y    float64
}

func (st *renderState) bottom() float64     { return st.cfg.PageHeight - st.cfg.MarginBottom }
func (st *renderState) lineHeight() float64 { return st.cfg.BodyFontSize * st.cfg.LineSpacing }

func (st *renderState) newPage() {
	st.doc.AddPage()
	st.y = st.cfg.MarginTop
}

// ensure breaks the page when a block of the given height would run past the
// bottom margin.
func (st *renderState) ensure(height float64) {
	if st.y+height > st.bottom() {
		st.newPage()
	}
}

func (st *renderState) measure(text string, bold, italic bool) float64 {
	st.font.Set(st.cfg.BodyFontSize, bold, italic)
	return st.doc.GetStringWidth(text)
}

// footer draws the centered page number.
func (st *renderState) footer() {
	label, show := pageLabel(st.cfg.PageNumbers, st.doc.PageNo(), st.cfg.PageNumberStart)
	if !show {
		return
	}
	st.font.Set(st.cfg.BodyFontSize*0.9, false, false)
	w := st.doc.GetStringWidth(label)
	st.doc.Text((st.cfg.PageWidth-w)/2, st.cfg.PageHeight-st.cfg.MarginBottom/2, label)
}

// pageLabel decides whether a physical page shows a number and what it reads.
// The first physical page is the title page and always stays unnumbered;
// displayed numbers continue from the configured start, so physical page two
// is the first one numbered.
func pageLabel(style config.PageNumberStyle, pageNo, start int) (string, bool) {
	if style == config.PageNumbersNone || pageNo == 1 {
		return "", false
	}
	display := pageNo + start - 1
	if style == config.PageNumbersRoman {
		return romanLower(display), true
	}
	return strconv.Itoa(display), true
}

// line draws one wrapped line at the current cursor and advances it.
func (st *renderState) line(ln renderedLine, size float64) {
	x := st.cfg.MarginInside
	baseline := st.y + size
	for _, run := range ln.runs {
		st.font.Set(size, run.bold, run.italic)
		st.doc.Text(x, baseline, run.text)
		x += st.doc.GetStringWidth(run.text)
	}
	st.y += size * st.cfg.LineSpacing
}

// centeredBlock wraps text to the text width and draws every line centered,
// advancing the cursor. Used for headings and title page matter.
func (st *renderState) centeredBlock(text string, size float64, bold, italic bool) {
	measure := func(s string, b, i bool) float64 {
		st.font.Set(size, b, i)
		return st.doc.GetStringWidth(s)
	}
	lines := wrapRuns([]styledRun{{text: text, bold: bold, italic: italic}}, measure, st.cfg.TextWidth())
	for _, ln := range lines {
		st.ensure(size * st.cfg.LineSpacing)
		x := st.cfg.MarginInside + (st.cfg.TextWidth()-ln.width)/2
		baseline := st.y + size
		for _, run := range ln.runs {
			st.font.Set(size, run.bold, run.italic)
			st.doc.Text(x, baseline, run.text)
			x += st.doc.GetStringWidth(run.text)
		}
		st.y += size * st.cfg.LineSpacing
	}
}

func (st *renderState) titlePage(c *book.Content) {
	st.newPage()
	st.y = st.cfg.MarginTop + st.cfg.TextHeight()*0.2
	st.centeredBlock(c.Title, st.cfg.HeadingFontSize*1.3, true, false)
	st.y += st.cfg.ChapterSpacing
	st.centeredBlock("by "+c.Author, st.cfg.BodyFontSize*1.3, false, false)
	st.y += st.cfg.ParagraphSpacing * 2
	st.centeredBlock(c.Genre, st.cfg.BodyFontSize, false, true)
	st.y = st.bottom() - st.cfg.BodyFontSize*st.cfg.LineSpacing*4
	st.centeredBlock(c.Summary, st.cfg.BodyFontSize*0.85, false, false)
}

const copyrightDisclaimer = "No part of this publication may be reproduced, distributed, or transmitted " +
	"in any form or by any means, including photocopying, recording, or other electronic or mechanical " +
	"methods, without the prior written permission of the author, except in the case of brief quotations " +
	"embodied in critical reviews and certain other noncommercial uses permitted by copyright law."

func (st *renderState) copyrightPage(c *book.Content) {
	st.newPage()
	year := time.Now().Year()
	st.y = st.cfg.MarginTop + st.cfg.TextHeight()*0.35
	st.centeredBlock(fmt.Sprintf("Copyright © %d %s", year, c.Author), st.cfg.BodyFontSize, false, false)
	st.y += st.cfg.ParagraphSpacing
	st.centeredBlock("All rights reserved.", st.cfg.BodyFontSize, false, false)
	st.y += st.cfg.ParagraphSpacing
	st.centeredBlock(copyrightDisclaimer, st.cfg.BodyFontSize*0.8, false, false)
	st.y += st.cfg.ParagraphSpacing
	st.centeredBlock(fmt.Sprintf("First Edition %d", year), st.cfg.BodyFontSize*0.8, false, false)
}

// contentsPage writes a plain chapter listing. Rendering is single pass, so
// unlike the engine path there are no page numbers to resolve here.
func (st *renderState) contentsPage(c *book.Content) {
	st.newPage()
	st.centeredBlock("Table of Contents", st.cfg.HeadingFontSize, true, false)
	st.y += st.cfg.ChapterSpacing / 2
	for i := range c.Chapters {
		ch := &c.Chapters[i]
		entry := fmt.Sprintf("%d. %s", ch.Number, ch.Title)
		lines := wrapRuns([]styledRun{{text: entry}}, st.measure, st.cfg.TextWidth())
		for _, ln := range lines {
			st.ensure(st.lineHeight())
			st.line(ln, st.cfg.BodyFontSize)
		}
		st.y += st.cfg.ParagraphSpacing / 2
	}
}

func (st *renderState) chapter(ch *book.Chapter) {
	st.newPage()
	st.y += st.cfg.ChapterSpacing

	// the heading block and at least one body line stay together
	headingHeight := st.cfg.HeadingFontSize*st.cfg.LineSpacing*2 + st.cfg.ChapterSpacing
	st.ensure(headingHeight + st.lineHeight())

	st.centeredBlock(fmt.Sprintf("Chapter %d", ch.Number), st.cfg.BodyFontSize, false, false)
	st.centeredBlock(ch.Title, st.cfg.HeadingFontSize, true, false)
	st.y += st.cfg.ChapterSpacing

	for i := range ch.Paragraphs {
		st.paragraph(&ch.Paragraphs[i])
	}
}

func (st *renderState) paragraph(p *book.Paragraph) {
	lines := wrapRuns(splitRuns(p), st.measure, st.cfg.TextWidth())
	for _, ln := range lines {
		st.ensure(st.lineHeight())
		st.line(ln, st.cfg.BodyFontSize)
	}
	st.y += st.cfg.ParagraphSpacing
}

var romanDigits = []struct {
	value int
	digit string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func romanLower(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, rd := range romanDigits {
		for n >= rd.value {
			sb.WriteString(rd.digit)
			n -= rd.value
		}
	}
	return sb.String()
}
