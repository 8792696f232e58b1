package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"accounts-generator/internal/schema"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrDuplicateOutput is returned when two input files produce the same output
// file name.
var ErrDuplicateOutput = errors.New("duplicate output file")

// Pipeline loads schema files, generates their units and writes them out.
type Pipeline struct {
	Generator *Generator
	Flags     Flags
	OutputDir string
	// Concurrency bounds the number of files processed at once. Zero means
	// no limit.
	Concurrency int
	Logger      *zap.Logger
}

// NewPipeline returns a pipeline with the default generator and flags.
func NewPipeline(outputDir string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		Generator: NewGenerator(),
		Flags:     DefaultFlags(),
		OutputDir: outputDir,
		Logger:    logger,
	}
}

// Generate loads every path and returns the rendered files in input order.
// Files are processed concurrently; the first failure cancels the rest.
func (p *Pipeline) Generate(ctx context.Context, paths ...string) ([]GeneratedFile, error) {
	results := make([][]GeneratedFile, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	if p.Concurrency > 0 {
		eg.SetLimit(p.Concurrency)
	}

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			files, err := p.generateFile(path)
			if err != nil {
				return err
			}

			results[i] = files

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []GeneratedFile

	seen := make(map[string]string)

	for i, files := range results {
		for _, f := range files {
			if prev, ok := seen[f.Filename]; ok {
				return nil, fmt.Errorf("%w: %s from both %s and %s", ErrDuplicateOutput, f.Filename, prev, paths[i])
			}

			seen[f.Filename] = paths[i]
			out = append(out, f)
		}
	}

	return out, nil
}

// Run generates every path and writes the result to OutputDir. It returns
// the names of the files whose content changed.
func (p *Pipeline) Run(ctx context.Context, paths ...string) ([]string, error) {
	start := time.Now()

	files, err := p.Generate(ctx, paths...)
	if err != nil {
		p.Logger.Error("generation failed", zap.Error(err))
		return nil, err
	}

	written, err := WriteFiles(files, p.OutputDir)
	if err != nil {
		p.Logger.Error("writing output failed", zap.String("dir", p.OutputDir), zap.Error(err))
		return nil, err
	}

	p.Logger.Info("generation complete",
		zap.Int("inputs", len(paths)),
		zap.Int("files", len(files)),
		zap.Int("written", len(written)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return written, nil
}

func (p *Pipeline) generateFile(path string) ([]GeneratedFile, error) {
	log := p.Logger.With(zap.String("input", path))

	cat, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	log.Debug("loaded schema file", zap.Int("schemas", cat.Len()), zap.Strings("names", cat.Names()))

	for _, w := range cat.Lint().Warnings {
		log.Warn("schema warning", zap.String("code", w.Code), zap.String("diagnostic", w.String()))
	}

	files, err := p.Generator.GenerateCatalog(cat, p.Flags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, f := range files {
		log.Debug("generated", zap.String("file", f.Filename), zap.Int("bytes", len(f.Content)))
	}

	return files, nil
}

// WriteFiles writes the generated files to outputDir, creating it if needed.
// Files whose content is already up to date are left untouched so their
// modification times stay stable. It returns the names of the files written.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if current, err := os.ReadFile(outputPath); err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, file.Filename)
	}

	return written, nil
}
