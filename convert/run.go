// Package convert turns parsed book content into a typeset document and
// drives the compilation from the command line.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bookc/book"
	"bookc/config"
	"bookc/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if mode := cmd.String("engine"); len(mode) != 0 {
		m, err := config.ParseEngineMode(mode)
		if err != nil {
			log.Warn("Unknown engine mode requested, keeping configured mode", zap.Error(err))
		} else {
			env.Cfg.Document.Engine.Mode = m
		}
	}

	env.NoDirs = cmd.Bool("nodirs")
	env.Overwrite = cmd.Bool("overwrite") || env.Cfg.Document.Overwrite
	markdown, detect := cmd.Bool("markdown"), cmd.Bool("detect")

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst), zap.Stringer("engine", env.Cfg.Document.Engine.Mode))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, markdown, detect, log)
}

// process dispatches on the input type: a single book file or a directory
// tree of them.
func process(ctx context.Context, src, dst string, markdown, detect bool, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, markdown, detect, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	return processBook(ctx, src, filepath.Base(src), dst, markdown, detect, log)
}

func isBookFile(path string, markdown bool) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if markdown {
		return ext == ".md" || ext == ".markdown"
	}
	return ext == ".json"
}

// processDir walks the directory tree finding book files and compiles them.
// A failed book never stops the walk.
func processDir(ctx context.Context, dir, dst string, markdown, detect bool, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isBookFile(path, markdown) {
			log.Debug("Skipping file, not recognized as book source", zap.String("file", path))
			return nil
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processBook(ctx, path, src, dst, markdown, detect, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processBook compiles a single book source. "src" is the source path relative
// to the original input (just the base name when a file was given directly),
// "dst" is the destination directory for the produced document.
func processBook(ctx context.Context, path, src, dst string, markdown, detect bool, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		}
	}(time.Now())

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read book source (%s): %w", src, err)
	}

	var c *book.Content
	if markdown {
		title := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		c = book.ContentFromMarkdown(string(data), title)
	} else if c, err = book.ParseJSON(data); err != nil {
		return fmt.Errorf("unable to parse book source (%s): %w", src, err)
	}
	if detect {
		book.NormalizeLegacy(c)
	}

	outputName = buildOutputPath(c, src, dst, env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	res := Compile(ctx, c, &env.Cfg.Document, log)
	for _, w := range res.Warnings {
		log.Warn("Compilation warning", zap.Stringer("job", res.ID), zap.String("warning", w))
	}
	if !res.Success {
		for _, e := range res.Errors {
			log.Error("Compilation error", zap.Stringer("job", res.ID), zap.String("error", e))
		}
		return fmt.Errorf("compilation of %s failed with %d error(s)", src, len(res.Errors))
	}

	if err := os.WriteFile(outputName, res.Binary, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("Compilation completed",
		zap.Stringer("job", res.ID), zap.String("to", outputName), zap.String("backend", res.Backend),
		zap.Int("size", res.OutputSize), zap.Duration("elapsed", res.Duration))
	return nil
}
