package latex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookc/config"
	"bookc/misc"
)

const mainFileName = "main.tex"

// Diagnostic is a single parsed engine complaint.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if len(d.File) != 0 {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	}
	return d.Message
}

// EngineError reports a failed, timed out or crashed engine invocation with
// whatever diagnostics could be recovered from its output.
type EngineError struct {
	Binary      string
	Timeout     bool
	Diagnostics []Diagnostic
	Detail      string
}

func (e *EngineError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s timed out", e.Binary)
	case len(e.Diagnostics) != 0:
		return fmt.Sprintf("%s failed: %s", e.Binary, e.Diagnostics[0])
	case len(e.Detail) != 0:
		return fmt.Sprintf("%s failed: %s", e.Binary, e.Detail)
	default:
		return fmt.Sprintf("%s failed", e.Binary)
	}
}

// Transient reports whether retrying the same input could possibly succeed.
// Content errors are deterministic - the engine will reject the same document
// the same way every time.
func (e *EngineError) Transient() bool {
	return e.Timeout
}

// Runner abstracts engine process execution so tests do not need a TeX
// installation.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Engine drives the external typesetting binary. Engines are known to hang on
// some malformed inputs, so every invocation runs under its own deadline and
// only timed out attempts are retried.
type Engine struct {
	Binary   string
	Timeout  time.Duration
	Attempts int
	Runner   Runner
}

func NewEngine(cfg *config.EngineConfig) *Engine {
	return &Engine{
		Binary:   cfg.Binary,
		Timeout:  time.Duration(cfg.TimeoutSec) * time.Second,
		Attempts: cfg.Attempts,
		Runner:   execRunner{},
	}
}

// Available reports whether the engine binary can be found at all.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.Binary)
	return err == nil
}

// Render typesets the document and returns the produced PDF along with
// non-fatal engine warnings. When the document carries a table of contents the
// engine has to run twice - the first pass collects headings into the .toc
// file, the second typesets it.
func (e *Engine) Render(ctx context.Context, document string, passes int, log *zap.Logger) ([]byte, []string, error) {
	dir, err := os.MkdirTemp("", misc.GetAppName()+"-tex-")
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create engine work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, mainFileName), []byte(document), 0644); err != nil {
		return nil, nil, fmt.Errorf("unable to write engine input: %w", err)
	}
	if passes < 1 {
		passes = 1
	}

	var warnings []string
	for attempt := 1; ; attempt++ {
		warnings, err = e.runPasses(ctx, dir, passes)
		if err == nil {
			break
		}
		var ee *EngineError
		if attempt >= e.Attempts || !errors.As(err, &ee) || !ee.Transient() {
			return nil, nil, err
		}
		log.Warn("Engine invocation failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, strings.TrimSuffix(mainFileName, ".tex")+".pdf"))
	if err != nil {
		return nil, nil, &EngineError{Binary: e.Binary, Detail: "engine reported success but produced no output"}
	}
	return pdf, warnings, nil
}

func (e *Engine) runPasses(ctx context.Context, dir string, passes int) ([]string, error) {
	var warnings []string
	for pass := 0; pass < passes; pass++ {
		out, err := e.runOnce(ctx, dir)
		if err != nil {
			return nil, err
		}
		warnings = parseWarnings(out) // only the last pass matters
	}
	return warnings, nil
}

func (e *Engine) runOnce(ctx context.Context, dir string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	out, err := e.Runner.Run(runCtx, dir, e.Binary, "-interaction=nonstopmode", "-halt-on-error", mainFileName)
	if err == nil {
		return out, nil
	}
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, &EngineError{Binary: e.Binary, Timeout: true}
	}
	return nil, &EngineError{
		Binary:      e.Binary,
		Diagnostics: parseDiagnostics(out),
		Detail:      outputTail(out),
	}
}

var (
	diagRe    = regexp.MustCompile(`(?m)^(?:\./)?(\S+?\.tex):(\d+):\s*(.+)$`)
	bangRe    = regexp.MustCompile(`(?m)^!\s*(.+)$`)
	warningRe = regexp.MustCompile(`(?m)^LaTeX Warning:\s*(.+)$`)
)

// parseDiagnostics recovers file:line: message complaints from engine output.
// Engines are chatty - when no positioned errors are present, bare "!" error
// lines are used instead.
func parseDiagnostics(out []byte) []Diagnostic {
	var diags []Diagnostic
	for _, m := range diagRe.FindAllSubmatch(out, -1) {
		line, _ := strconv.Atoi(string(m[2]))
		diags = append(diags, Diagnostic{File: string(m[1]), Line: line, Message: string(m[3])})
	}
	if len(diags) != 0 {
		return diags
	}
	for _, m := range bangRe.FindAllSubmatch(out, -1) {
		diags = append(diags, Diagnostic{Message: string(m[1])})
	}
	return diags
}

func parseWarnings(out []byte) []string {
	var warnings []string
	for _, m := range warningRe.FindAllSubmatch(out, -1) {
		warnings = append(warnings, string(m[1]))
	}
	return warnings
}

func outputTail(out []byte) string {
	const tail = 512
	s := strings.TrimSpace(string(out))
	if len(s) > tail {
		s = "..." + s[len(s)-tail:]
	}
	return s
}
