package convert

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"bookc/config"
	"bookc/state"
)

func testEnv() *state.LocalEnv {
	return &state.LocalEnv{Cfg: &config.Config{}, Log: zap.NewNop()}
}

func TestBuildOutputPathDefault(t *testing.T) {
	env := testEnv()
	c := testContent()

	got := buildOutputPath(c, filepath.Join("books", "my book.json"), string(filepath.Separator)+"out", env)
	want := filepath.Join(string(filepath.Separator)+"out", "books", "my book.pdf")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPathNoDirs(t *testing.T) {
	env := testEnv()
	env.NoDirs = true
	c := testContent()

	got := buildOutputPath(c, filepath.Join("books", "my book.json"), string(filepath.Separator)+"out", env)
	want := filepath.Join(string(filepath.Separator)+"out", "my book.pdf")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPathTransliterate(t *testing.T) {
	env := testEnv()
	env.NoDirs = true
	env.Cfg.Document.FileNameTransliterate = true
	c := testContent()

	got := buildOutputPath(c, "Тихая Гавань.json", string(filepath.Separator)+"out", env)
	want := filepath.Join(string(filepath.Separator)+"out", "tihaya-gavan.pdf")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPathTemplate(t *testing.T) {
	env := testEnv()
	env.NoDirs = true
	env.Cfg.Document.OutputNameTemplate = "{{.Author}}/{{.Title}}"
	c := testContent()

	got := buildOutputPath(c, "in.json", string(filepath.Separator)+"out", env)
	want := filepath.Join(string(filepath.Separator)+"out", "A. Writer", "The Silent Harbor.pdf")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPathTemplateFallback(t *testing.T) {
	env := testEnv()
	env.NoDirs = true
	env.Cfg.Document.OutputNameTemplate = "{{.NoSuchField}}"
	c := testContent()

	// broken template falls back to the source derived name
	got := buildOutputPath(c, "in.json", string(filepath.Separator)+"out", env)
	want := filepath.Join(string(filepath.Separator)+"out", "in.pdf")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpandTemplate(t *testing.T) {
	c := testContent()

	cases := []struct {
		name  string
		field string
		want  string
	}{
		{"title and author", "{{.Author}} - {{.Title}}", "A. Writer - The Silent Harbor"},
		{"source file", "{{.SourceFile}}", "draft-3"},
		{"sprig functions", "{{.Title | lower | replace \" \" \"_\"}}", "the_silent_harbor"},
		{"chapter count", "{{.Title}}-{{.Chapters}}ch", "The Silent Harbor-1ch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := expandTemplate(c, filepath.Join("inbox", "draft-3.json"), config.OutputNameTemplateFieldName, tc.field)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := expandTemplate(c, "x.json", config.OutputNameTemplateFieldName, "{{.Title"); err == nil {
		t.Error("expected parse error for malformed template")
	}
}
