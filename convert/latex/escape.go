// Package latex turns validated book content into a complete LaTeX document
// and drives the external typesetting engine.
package latex

import (
	"strings"
)

// Reserved LaTeX characters and their literal-producing replacements. The
// brace-terminated commands need the empty group so a following space is not
// swallowed by the command name.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`%`, `\%`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// Escape replaces every reserved LaTeX metacharacter in s with its
// literal-producing sequence. Must never be applied to already emitted
// markup - formatting commands are kept apart from plain text runs until the
// document is finally assembled.
func Escape(s string) string {
	return escaper.Replace(s)
}
