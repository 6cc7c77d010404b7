package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("got version %d, want 1", cfg.Version)
	}
	if cfg.Document.Engine.Binary != "pdflatex" {
		t.Errorf("got engine binary %q", cfg.Document.Engine.Binary)
	}
	if cfg.Document.Engine.Mode != EngineAuto {
		t.Errorf("got engine mode %v, want auto", cfg.Document.Engine.Mode)
	}
	if cfg.Document.Template.PageWidth != 432 || cfg.Document.Template.PageHeight != 648 {
		t.Errorf("trade preset was not applied: %+v", cfg.Document.Template)
	}
	if !cfg.Document.Template.TOC.Enable {
		t.Error("table of contents must be on by default")
	}
	if cfg.Document.Template.PageNumbers != PageNumbersArabic {
		t.Errorf("got page numbers %v, want arabic", cfg.Document.Template.PageNumbers)
	}
	// template fields must pass through expansion untouched
	if cfg.Document.OutputNameTemplate != "{{ .Title }}" {
		t.Errorf("output name template was expanded: %q", cfg.Document.OutputNameTemplate)
	}
}

func TestLoadConfigurationOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := `document:
  template:
    preset: pocket
  engine:
    mode: direct
`
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Document.Template.PageWidth != 360 || cfg.Document.Template.PageHeight != 576 {
		t.Errorf("pocket preset was not applied: %+v", cfg.Document.Template)
	}
	if cfg.Document.Engine.Mode != EngineDirect {
		t.Errorf("got engine mode %v, want direct", cfg.Document.Engine.Mode)
	}
	// untouched defaults survive the overlay
	if cfg.Document.Engine.Binary != "pdflatex" {
		t.Errorf("got engine binary %q", cfg.Document.Engine.Binary)
	}
}

func TestLoadConfigurationRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("surprise: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected error for unknown configuration field")
	}
}

func TestLoadConfigurationRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		overlay string
	}{
		{"bad preset", "document:\n  template:\n    preset: imperial\n"},
		{"bad engine mode", "document:\n  engine:\n    mode: magic\n"},
		{"zero attempts", "document:\n  engine:\n    attempts: 0\n"},
		{"bad console level", "logging:\n  console:\n    level: chatty\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfiguration(path); err == nil {
				t.Fatal("expected configuration to be rejected")
			}
		})
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"page_numbers: arabic", "mode: auto", "header: none"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("dump misses %q", want)
		}
	}
}

func TestTextExtents(t *testing.T) {
	var tc TemplateConfig
	TradePreset(&tc)
	if got := tc.TextWidth(); got != 432-54-36 {
		t.Errorf("got text width %g", got)
	}
	if got := tc.TextHeight(); got != 648-54-54 {
		t.Errorf("got text height %g", got)
	}
}
