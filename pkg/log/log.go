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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/envgen/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent entries below a file
	nameWidth   = 30 // Width for setting names
	reasonWidth = 16 // Width for classification reason
)

// 🎯 Logger renders run results on the console and mirrors them to zerolog.
// It implements status.Reporter.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex

	mask bool   // hide generated values
	base string // directory paths are shown relative to
}

var _ status.Reporter = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// WithMask hides generated secrets in console output
func (l *Logger) WithMask(mask bool) *Logger {
	l.mask = mask
	return l
}

// WithBase shows file paths relative to dir
func (l *Logger) WithBase(dir string) *Logger {
	l.base = dir
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 StartBatch prints the run header
func (l *Logger) StartBatch(ctx context.Context, root string, found int, dryRun bool) {
	l.Header("generating env files")

	if found == 0 {
		l.Warningf("No templates found in %s", root)
		return
	}
	l.Infof("Found %d template(s) in %s", found, root)
	if dryRun {
		l.Warning("DRY RUN MODE - no files will be written")
	}
	l.LogNewline()
}

// 📝 ReportOutcome prints the result of one template
func (l *Logger) ReportOutcome(ctx context.Context, o status.Outcome) {
	path := o.DisplayPath(l.base)

	switch o.Kind {
	case status.KindSuccess:
		l.reportSuccess(path, o)
	case status.KindSkipped:
		l.Warningf("Skipped %s: %s", path, o.Reason)
	case status.KindError:
		l.Errorf("Error processing %s: %s", path, o.Reason)
	default:
		l.Errorf("Unknown result for %s", path)
	}
}

func (l *Logger) reportSuccess(path string, o status.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dry := ""
	if o.DryRun {
		dry = " " + color.New(color.FgYellow).Sprint("(DRY RUN)")
	}
	fmt.Fprintf(l.console, "%s %s%s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(path),
		dry)

	for _, sub := range o.Substitutions {
		value := sub.NewValue
		if l.mask {
			value = status.MaskValue(value)
		}
		fmt.Fprintln(l.console, l.formatLine('✓', color.FgGreen, sub.Key, sub.Reason.String(), value))

		// values never reach the structured log
		l.zlog.Info().
			Str("output", o.OutputPath).
			Str("key", sub.Key).
			Int("line", sub.Line).
			Str("reason", sub.Reason.String()).
			Msg("generated secret")
	}

	if o.Preserved > 0 {
		fmt.Fprintf(l.console, "%s%s %s\n",
			strings.Repeat(" ", fileIndent),
			color.New(color.FgCyan).Sprint("•"),
			fmt.Sprintf("Preserved %d other settings", o.Preserved))
	}

	for _, w := range o.Warnings {
		fmt.Fprintln(l.console, l.formatLine('⚠', color.FgYellow, fmt.Sprintf("line %d", w.Line), w.RuleID, "value looks like a real secret"))
		l.zlog.Debug().
			Str("template", o.TemplatePath).
			Int("line", w.Line).
			Str("rule", w.RuleID).
			Msg("possible secret in template")
	}

	fmt.Fprintln(l.console)

	l.zlog.Info().
		Str("output", o.OutputPath).
		Int("generated", len(o.Substitutions)).
		Int("preserved", o.Preserved).
		Bool("dry_run", o.DryRun).
		Msg("template processed")
}

// 📝 formatLine formats one entry below a file
func (l *Logger) formatLine(symbol rune, symbolColor color.Attribute, name, kind, detail string) string {
	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, name),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", reasonWidth, kind)),
		detail)
}

// 📝 Finish prints the summary block
func (l *Logger) Finish(ctx context.Context, s status.Summary) {
	if s.Total() == 0 {
		return
	}

	l.mu.Lock()
	fmt.Fprintf(l.console, "%s\n", color.New(color.Bold).Sprint("Summary:"))
	l.mu.Unlock()

	if s.Succeeded > 0 {
		l.Successf("Successfully processed: %d files", s.Succeeded)
		l.Successf("Generated secrets: %d", s.SecretsGenerated)
	}
	if s.Skipped > 0 {
		l.Warningf("Skipped: %d files", s.Skipped)
	}
	if s.Warnings > 0 {
		l.Warningf("Possible secrets in templates: %d", s.Warnings)
	}
	if s.Failed > 0 {
		l.Errorf("Errors: %d files", s.Failed)
	}

	l.zlog.Info().
		Int("succeeded", s.Succeeded).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int("secrets", s.SecretsGenerated).
		Bool("dry_run", s.DryRun).
		Msg("run complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("envgen")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
