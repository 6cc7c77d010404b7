package latex

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"bookc/book"
	"bookc/config"
)

// Break directives separating document blocks. ChapterBreak also flushes
// pending floats, PageBreak is a plain sheet advance.
const (
	ChapterBreak = "\\clearpage\n"
	PageBreak    = "\\newpage\n"
)

const labelSlugLimit = 24

// ChapterLabel derives a stable cross-referencing label from the chapter
// number and a sanitized slug of its title. Number keeps labels unique,
// the slug keeps them readable in engine diagnostics.
func ChapterLabel(number int, title string) string {
	s := slug.Make(title)
	if len(s) > labelSlugLimit {
		s = s[:labelSlugLimit]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
	}
	s = strings.Trim(s, "-")
	if len(s) == 0 {
		return fmt.Sprintf("ch%d", number)
	}
	return fmt.Sprintf("ch%d-%s", number, s)
}

// classFontSize maps configured body size to the nearest size the book class
// actually supports.
func classFontSize(size float64) string {
	switch {
	case size <= 10.5:
		return "10pt"
	case size < 12:
		return "11pt"
	default:
		return "12pt"
	}
}

// WrapDocument assembles the complete LaTeX document: preamble, title page,
// optional copyright page and table of contents, chapter blocks and closing
// boilerplate.
func WrapDocument(c *book.Content, body *Body, tcfg *config.TemplateConfig) (string, error) {
	if len(body.Chapters) != len(c.Chapters) {
		return "", fmt.Errorf("generated body has %d chapters, content has %d", len(body.Chapters), len(c.Chapters))
	}

	var sb strings.Builder

	// preamble
	fmt.Fprintf(&sb, "\\documentclass[%s]{book}\n", classFontSize(tcfg.BodyFontSize))
	sb.WriteString("\\usepackage[utf8]{inputenc}\n")
	sb.WriteString("\\usepackage[T1]{fontenc}\n")
	fmt.Fprintf(&sb, "\\usepackage[paperwidth=%gpt,paperheight=%gpt,top=%gpt,bottom=%gpt,inner=%gpt,outer=%gpt]{geometry}\n",
		tcfg.PageWidth, tcfg.PageHeight, tcfg.MarginTop, tcfg.MarginBottom, tcfg.MarginInside, tcfg.MarginOutside)
	sb.WriteString("\\usepackage{setspace}\n")
	sb.WriteString("\\usepackage{titlesec}\n")
	fmt.Fprintf(&sb, "\\titleformat{\\chapter}[display]{\\centering\\bfseries\\fontsize{%gpt}{%gpt}\\selectfont}{\\chaptertitlename\\ \\thechapter}{%gpt}{}\n",
		tcfg.HeadingFontSize, tcfg.HeadingFontSize*1.2, tcfg.ParagraphSpacing*2)
	switch tcfg.Header {
	case config.HeaderBookTitle, config.HeaderChapterTitle:
		sb.WriteString("\\usepackage{fancyhdr}\n")
	}
	if tcfg.TOC.Enable && tcfg.TOC.Hyperlinks {
		sb.WriteString("\\usepackage[hidelinks]{hyperref}\n")
	}
	fmt.Fprintf(&sb, "\\setstretch{%g}\n", tcfg.LineSpacing)
	fmt.Fprintf(&sb, "\\setlength{\\parskip}{%gpt}\n", tcfg.ParagraphSpacing)
	sb.WriteString("\\setlength{\\parindent}{0pt}\n")
	if tcfg.TOC.Enable {
		fmt.Fprintf(&sb, "\\setcounter{tocdepth}{%d}\n", tcfg.TOC.Depth-1)
	}
	sb.WriteString(pageStyle(tcfg, c))

	sb.WriteString("\\begin{document}\n\n")

	switch tcfg.PageNumbers {
	case config.PageNumbersRoman:
		sb.WriteString("\\pagenumbering{roman}\n")
	default:
		sb.WriteString("\\pagenumbering{arabic}\n")
	}
	if tcfg.PageNumberStart > 1 {
		fmt.Fprintf(&sb, "\\setcounter{page}{%d}\n", tcfg.PageNumberStart)
	}

	writeTitlePage(&sb, c, tcfg)
	if tcfg.CopyrightPage {
		writeCopyrightPage(&sb, c)
	}

	if tcfg.TOC.Enable {
		sb.WriteString("\\tableofcontents\n" + ChapterBreak + "\n")
	}

	for i := range c.Chapters {
		ch := &c.Chapters[i]
		if i > 0 {
			sb.WriteString(ChapterBreak)
		}
		fmt.Fprintf(&sb, "\\chapter{%s}\n", Escape(ch.Title))
		fmt.Fprintf(&sb, "\\label{%s}\n\n", ChapterLabel(ch.Number, ch.Title))
		sb.WriteString(body.Chapters[i])
		sb.WriteString("\n\n")
	}

	sb.WriteString("\\end{document}\n")
	return sb.String(), nil
}

func pageStyle(tcfg *config.TemplateConfig, c *book.Content) string {
	if tcfg.PageNumbers == config.PageNumbersNone && tcfg.Header == config.HeaderNone {
		return "\\pagestyle{empty}\n"
	}
	var sb strings.Builder
	switch tcfg.Header {
	case config.HeaderNone:
		// default plain style: page number centered in the footer
		sb.WriteString("\\pagestyle{plain}\n")
	case config.HeaderBookTitle:
		sb.WriteString("\\pagestyle{fancy}\n\\fancyhf{}\n")
		fmt.Fprintf(&sb, "\\fancyhead[C]{\\small %s}\n", Escape(c.Title))
		if tcfg.PageNumbers != config.PageNumbersNone {
			sb.WriteString("\\fancyfoot[C]{\\thepage}\n")
		}
	case config.HeaderChapterTitle:
		sb.WriteString("\\pagestyle{fancy}\n\\fancyhf{}\n")
		sb.WriteString("\\fancyhead[C]{\\small\\leftmark}\n")
		if tcfg.PageNumbers != config.PageNumbersNone {
			sb.WriteString("\\fancyfoot[C]{\\thepage}\n")
		}
	}
	return sb.String()
}

func writeTitlePage(sb *strings.Builder, c *book.Content, tcfg *config.TemplateConfig) {
	sb.WriteString("\\begin{titlepage}\n\\centering\n")
	fmt.Fprintf(sb, "\\vspace*{%gpt}\n", tcfg.PageHeight*0.2)
	fmt.Fprintf(sb, "{\\Huge %s\\par}\n", Escape(c.Title))
	fmt.Fprintf(sb, "\\vspace{%gpt}\n", tcfg.ChapterSpacing)
	fmt.Fprintf(sb, "{\\Large by %s\\par}\n", Escape(c.Author))
	fmt.Fprintf(sb, "\\vspace{%gpt}\n", tcfg.ParagraphSpacing*2)
	fmt.Fprintf(sb, "{\\itshape %s\\par}\n", Escape(c.Genre))
	sb.WriteString("\\vfill\n")
	fmt.Fprintf(sb, "{\\small %s\\par}\n", Escape(c.Summary))
	sb.WriteString("\\end{titlepage}\n\n")
}

const copyrightDisclaimer = "No part of this publication may be reproduced, distributed, or transmitted " +
	"in any form or by any means, including photocopying, recording, or other electronic or mechanical " +
	"methods, without the prior written permission of the author, except in the case of brief quotations " +
	"embodied in critical reviews and certain other noncommercial uses permitted by copyright law."

func writeCopyrightPage(sb *strings.Builder, c *book.Content) {
	year := time.Now().Year()
	sb.WriteString("\\thispagestyle{empty}\n\\begin{center}\n\\vspace*{\\fill}\n")
	fmt.Fprintf(sb, "Copyright \\textcopyright{} %d %s\\par\n\\vspace{12pt}\n", year, Escape(c.Author))
	sb.WriteString("All rights reserved.\\par\n\\vspace{12pt}\n")
	fmt.Fprintf(sb, "{\\small %s\\par}\n\\vspace{12pt}\n", Escape(copyrightDisclaimer))
	fmt.Fprintf(sb, "{\\small First Edition %d\\par}\n", year)
	sb.WriteString("\\vspace*{\\fill}\n\\end{center}\n" + ChapterBreak + "\n")
}
