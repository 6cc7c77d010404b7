package config

import (
	"fmt"
)

// Specification of page numbering style for the rendered book.
type PageNumberStyle int

const (
	PageNumbersNone PageNumberStyle = iota
	PageNumbersArabic
	PageNumbersRoman
)

var pageNumberStyleNames = []string{"none", "arabic", "roman"}

func ParsePageNumberStyle(name string) (PageNumberStyle, error) {
	for i, n := range pageNumberStyleNames {
		if n == name {
			return PageNumberStyle(i), nil
		}
	}
	return PageNumbersNone, fmt.Errorf("%q is not a valid page numbering style", name)
}

func (s PageNumberStyle) String() string {
	if int(s) < 0 || int(s) >= len(pageNumberStyleNames) {
		return fmt.Sprintf("PageNumberStyle(%d)", int(s))
	}
	return pageNumberStyleNames[s]
}

func (s PageNumberStyle) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *PageNumberStyle) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	v, err := ParsePageNumberStyle(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Specification of running header content.
type HeaderStyle int

const (
	HeaderNone HeaderStyle = iota
	HeaderBookTitle
	HeaderChapterTitle
)

var headerStyleNames = []string{"none", "title", "chapter"}

func ParseHeaderStyle(name string) (HeaderStyle, error) {
	for i, n := range headerStyleNames {
		if n == name {
			return HeaderStyle(i), nil
		}
	}
	return HeaderNone, fmt.Errorf("%q is not a valid header style", name)
}

func (s HeaderStyle) String() string {
	if int(s) < 0 || int(s) >= len(headerStyleNames) {
		return fmt.Sprintf("HeaderStyle(%d)", int(s))
	}
	return headerStyleNames[s]
}

func (s HeaderStyle) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *HeaderStyle) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	v, err := ParseHeaderStyle(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Specification of requested rendering backend selection.
type EngineMode int

const (
	// EngineAuto tries the external LaTeX engine first and falls back to the
	// direct renderer when the engine is unavailable or fails.
	EngineAuto EngineMode = iota
	EngineLatex
	EngineDirect
)

var engineModeNames = []string{"auto", "latex", "direct"}

func ParseEngineMode(name string) (EngineMode, error) {
	for i, n := range engineModeNames {
		if n == name {
			return EngineMode(i), nil
		}
	}
	return EngineAuto, fmt.Errorf("%q is not a valid engine mode", name)
}

func EngineModeNames() []string {
	return append([]string{}, engineModeNames...)
}

func (m EngineMode) String() string {
	if int(m) < 0 || int(m) >= len(engineModeNames) {
		return fmt.Sprintf("EngineMode(%d)", int(m))
	}
	return engineModeNames[m]
}

func (m EngineMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *EngineMode) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	v, err := ParseEngineMode(name)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
