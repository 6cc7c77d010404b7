package config

import (
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestPageNumberStyleRoundTrip(t *testing.T) {
	for _, s := range []PageNumberStyle{PageNumbersNone, PageNumbersArabic, PageNumbersRoman} {
		parsed, err := ParsePageNumberStyle(s.String())
		if err != nil || parsed != s {
			t.Errorf("round trip of %v failed: %v %v", s, parsed, err)
		}
	}
	if _, err := ParsePageNumberStyle("alphabetic"); err == nil {
		t.Error("expected error for unsupported style")
	}
}

func TestHeaderStyleRoundTrip(t *testing.T) {
	for _, s := range []HeaderStyle{HeaderNone, HeaderBookTitle, HeaderChapterTitle} {
		parsed, err := ParseHeaderStyle(s.String())
		if err != nil || parsed != s {
			t.Errorf("round trip of %v failed: %v %v", s, parsed, err)
		}
	}
}

func TestEngineModeRoundTrip(t *testing.T) {
	for _, m := range []EngineMode{EngineAuto, EngineLatex, EngineDirect} {
		parsed, err := ParseEngineMode(m.String())
		if err != nil || parsed != m {
			t.Errorf("round trip of %v failed: %v %v", m, parsed, err)
		}
	}
	if _, err := ParseEngineMode("pandoc"); err == nil {
		t.Error("expected error for unsupported mode")
	}
}

func TestEngineModeYAML(t *testing.T) {
	var m EngineMode
	if err := yaml.Unmarshal([]byte("direct"), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != EngineDirect {
		t.Errorf("got %v, want direct", m)
	}

	data, err := yaml.Marshal(EngineLatex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "latex\n" {
		t.Errorf("got %q", data)
	}
	if err := yaml.Unmarshal([]byte("abacus"), &m); err == nil {
		t.Error("expected error for unknown mode")
	}
}
