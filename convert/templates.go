package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"bookc/book"
	"bookc/config"
)

// Values holds the variables made available for template expansion.
type Values struct {
	Context    string
	Title      string
	Author     string
	Genre      string
	Summary    string
	Chapters   int
	SourceFile string
}

func expandTemplate(c *book.Content, src string, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      c.Title,
		Author:     c.Author,
		Genre:      c.Genre,
		Summary:    c.Summary,
		Chapters:   len(c.Chapters),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
