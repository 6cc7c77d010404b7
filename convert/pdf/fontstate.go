// Package pdf is the fallback rendering path: it measures, wraps and
// paginates text itself instead of delegating layout to an external
// typesetting engine.
package pdf

// fontSetter is the single backend call the font state machine issues.
// *gofpdf.Fpdf satisfies it.
type fontSetter interface {
	SetFont(family, style string, size float64)
}

// FontState tracks the currently applied (family, size, bold, italic) tuple.
// Style changes are stateful backend calls, not annotations, so every query
// and update has to go through one place - and a request matching the cached
// tuple must not touch the backend at all.
type FontState struct {
	out     fontSetter
	family  string
	size    float64
	bold    bool
	italic  bool
	applied bool
}

func NewFontState(out fontSetter, family string) *FontState {
	return &FontState{out: out, family: family}
}

// Set makes the requested style current, doing nothing when it already is.
func (s *FontState) Set(size float64, bold, italic bool) {
	if s.applied && s.size == size && s.bold == bold && s.italic == italic {
		return
	}
	s.size, s.bold, s.italic, s.applied = size, bold, italic, true
	s.out.SetFont(s.family, styleSuffix(bold, italic), size)
}

func styleSuffix(bold, italic bool) string {
	switch {
	case bold && italic:
		return "BI"
	case bold:
		return "B"
	case italic:
		return "I"
	default:
		return ""
	}
}
