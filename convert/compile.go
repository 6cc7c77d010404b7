package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bookc/book"
	"bookc/config"
	"bookc/convert/latex"
)

// Result is the complete outcome of one compilation job. Failures travel in
// Errors as data, never as panics or errors escaping Compile.
type Result struct {
	ID         uuid.UUID
	Success    bool
	Binary     []byte
	Errors     []string
	Warnings   []string
	Duration   time.Duration
	OutputSize int
	Backend    string
}

func (r *Result) fail(err error) {
	var ee *latex.EngineError
	if errors.As(err, &ee) && len(ee.Diagnostics) != 0 {
		for _, d := range ee.Diagnostics {
			r.Errors = append(r.Errors, d.String())
		}
		return
	}
	for _, e := range multierr.Errors(err) {
		r.Errors = append(r.Errors, e.Error())
	}
}

// Compile runs the whole pipeline on parsed content: validation, backend
// selection, rendering and output checks. Mode "latex" requires the engine,
// mode "direct" skips it, mode "auto" prefers the engine and falls back to
// the direct renderer when the engine is missing or fails. Past backend
// selection the orchestration is backend-agnostic.
func Compile(ctx context.Context, c *book.Content, cfg *config.DocumentConfig, log *zap.Logger) *Result {
	res := &Result{ID: uuid.New()}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		res.OutputSize = len(res.Binary)
	}()

	log = log.With(zap.Stringer("job", res.ID))

	if err := book.Validate(c); err != nil {
		res.fail(err)
		log.Error("Content validation failed", zap.Int("errors", len(res.Errors)))
		return res
	}

	engine := latex.NewEngine(&cfg.Engine)
	var backend Backend = directBackend{}
	switch cfg.Engine.Mode {
	case config.EngineLatex:
		if !engine.Available() {
			res.fail(fmt.Errorf("engine binary %q was not found and direct fallback is disabled", cfg.Engine.Binary))
			return res
		}
		backend = latexBackend{engine: engine}
	case config.EngineAuto:
		if engine.Available() {
			backend = latexBackend{engine: engine}
		} else {
			log.Info("Engine binary not found, rendering directly", zap.String("binary", cfg.Engine.Binary))
		}
	case config.EngineDirect:
	}

	_, engineSelected := backend.(latexBackend)

	bin, err := runBackend(ctx, backend, res, c, cfg, log)
	if err != nil && engineSelected && cfg.Engine.Mode == config.EngineAuto {
		log.Warn("Engine rendering failed, falling back to direct rendering", zap.Error(err))
		res.Warnings = append(res.Warnings, "engine rendering failed: "+err.Error())
		bin, err = runBackend(ctx, directBackend{}, res, c, cfg, log)
	}
	if err != nil {
		res.fail(err)
		return res
	}
	res.Success, res.Binary = true, bin
	return res
}

// runBackend renders through one backend and validates what it produced,
// recording the attempt on the result.
func runBackend(ctx context.Context, b Backend, res *Result, c *book.Content, cfg *config.DocumentConfig, log *zap.Logger) ([]byte, error) {
	res.Backend = b.Name()
	bin, warnings, err := b.Render(ctx, c, cfg, log)
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		return nil, err
	}
	if err := validateOutput(bin); err != nil {
		return nil, err
	}
	return bin, nil
}

// Anything below this is not a book, whatever the producer claims.
const minOutputSize = 1024

// OutputError reports a produced binary which does not look like a usable PDF.
type OutputError struct {
	Reason string
}

func (e *OutputError) Error() string { return "output validation: " + e.Reason }

func validateOutput(buf []byte) error {
	if len(buf) < minOutputSize {
		return &OutputError{Reason: fmt.Sprintf("only %d bytes produced, implausibly small", len(buf))}
	}
	if !filetype.Is(buf, "pdf") {
		return &OutputError{Reason: "missing PDF signature"}
	}
	if !bytes.Contains(buf, []byte("%%EOF")) {
		return &OutputError{Reason: "missing %%EOF trailer, output is truncated"}
	}
	if !bytes.Contains(buf, []byte("/Type /Page")) && !bytes.Contains(buf, []byte("/Type/Page")) {
		return &OutputError{Reason: "no page objects present"}
	}
	return nil
}
