// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/envgen/pkg/envfile"
	"github.com/walteh/envgen/pkg/leak"
	"github.com/walteh/envgen/pkg/status"
)

// SkipReason is reported when the output exists and force is off
const SkipReason = "file already exists (use --force to overwrite)"

// 🔧 Options controls a single run
type Options struct {
	Force  bool // Overwrite existing outputs
	DryRun bool // Build outcomes without writing anything
}

// 🔎 LeakScanner checks template lines for values that look like real secrets
type LeakScanner interface {
	ScanLines(ctx context.Context, lines []string, skip map[int]bool) []leak.Finding
}

// 🔄 Transformer turns one template into its sibling output file
type Transformer struct {
	files      status.FileManager
	rewriter   *envfile.Rewriter
	outputName string
	scanner    LeakScanner // nil disables leak scanning
}

// 🏭 NewTransformer creates a transformer writing outputName next to each template
func NewTransformer(files status.FileManager, rewriter *envfile.Rewriter, outputName string, scanner LeakScanner) *Transformer {
	return &Transformer{
		files:      files,
		rewriter:   rewriter,
		outputName: outputName,
		scanner:    scanner,
	}
}

// OutputPath returns the output file that belongs to templatePath
func (t *Transformer) OutputPath(templatePath string) string {
	return filepath.Join(filepath.Dir(templatePath), t.outputName)
}

// 🏃 Transform processes one template. Failures never escape as errors:
// they are returned as error outcomes so a batch can continue.
func (t *Transformer) Transform(ctx context.Context, templatePath string, opts Options) status.Outcome {
	outputPath := t.OutputPath(templatePath)
	logger := zerolog.Ctx(ctx).With().Str("template", templatePath).Logger()
	ctx = logger.WithContext(ctx)

	// checked before reading so existing outputs cost nothing
	exists, err := t.files.FileExists(ctx, outputPath)
	if err != nil {
		return t.fail(ctx, templatePath, outputPath, errors.Errorf("checking output: %w", err), opts)
	}
	if exists && !opts.Force {
		logger.Debug().Str("output", outputPath).Msg("output exists, skipping")
		return status.Skipped(templatePath, outputPath, SkipReason, opts.DryRun)
	}

	content, err := t.files.ReadFile(ctx, templatePath)
	if err != nil {
		return t.fail(ctx, templatePath, outputPath, errors.Errorf("reading template: %w", err), opts)
	}

	result, err := t.rewriter.Rewrite(ctx, bytes.NewReader(content))
	if err != nil {
		return t.fail(ctx, templatePath, outputPath, errors.Errorf("rewriting template: %w", err), opts)
	}

	warnings := t.scan(ctx, string(content), result.Substitutions)

	if opts.DryRun {
		logger.Debug().Str("output", outputPath).Msg("dry run, not writing")
	} else if err := t.files.WriteFileAtomic(ctx, outputPath, result.Content); err != nil {
		return t.fail(ctx, templatePath, outputPath, errors.Errorf("writing output: %w", err), opts)
	}

	logger.Info().
		Str("output", outputPath).
		Int("lines", result.Lines).
		Int("generated", len(result.Substitutions)).
		Int("preserved", result.Preserved).
		Bool("dry_run", opts.DryRun).
		Msg("processed template")

	return status.Success(templatePath, outputPath, result.Substitutions, result.Preserved, opts.DryRun).WithWarnings(warnings)
}

func (t *Transformer) fail(ctx context.Context, templatePath, outputPath string, err error, opts Options) status.Outcome {
	zerolog.Ctx(ctx).Debug().Err(err).Msg("processing template failed")
	return status.Failed(templatePath, outputPath, err, opts.DryRun)
}

// scan skips rewritten lines since their values are about to be replaced
func (t *Transformer) scan(ctx context.Context, content string, subs []envfile.Substitution) []status.Warning {
	if t.scanner == nil {
		return nil
	}

	skip := make(map[int]bool, len(subs))
	for _, s := range subs {
		skip[s.Line] = true
	}

	var warnings []status.Warning
	for _, f := range t.scanner.ScanLines(ctx, envfile.SplitLines(content), skip) {
		warnings = append(warnings, status.Warning{
			Line:        f.Line,
			RuleID:      f.RuleID,
			Description: f.Description,
		})
	}
	return warnings
}
