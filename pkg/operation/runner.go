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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/envgen/pkg/status"
)

// ErrFilesFailed is returned when at least one template produced an error outcome
var ErrFilesFailed = errors.Base("one or more templates failed")

// 🏃 Runner processes templates one after another
type Runner struct {
	transformer *Transformer
	reporter    status.Reporter
}

// 🏗️ NewRunner creates a new runner; reporter may be nil
func NewRunner(transformer *Transformer, reporter status.Reporter) *Runner {
	return &Runner{
		transformer: transformer,
		reporter:    reporter,
	}
}

// 🏃 RunAll transforms every path in order. A failing template never stops
// the batch; outcomes are returned in input order.
func (r *Runner) RunAll(ctx context.Context, paths []string, opts Options) []status.Outcome {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("templates", len(paths)).Bool("force", opts.Force).Bool("dry_run", opts.DryRun).Msg("running batch")

	outcomes := make([]status.Outcome, 0, len(paths))
	for _, p := range paths {
		outcome := r.transformer.Transform(ctx, p, opts)
		outcomes = append(outcomes, outcome)
		if r.reporter != nil {
			r.reporter.ReportOutcome(ctx, outcome)
		}
	}
	return outcomes
}

// 🏃 Run transforms paths, reports the summary and returns ErrFilesFailed
// when any template failed
func (r *Runner) Run(ctx context.Context, root string, paths []string, opts Options) (status.Summary, error) {
	if r.reporter != nil {
		r.reporter.StartBatch(ctx, root, len(paths), opts.DryRun)
	}

	outcomes := r.RunAll(ctx, paths, opts)
	summary := status.Summarize(outcomes, opts.DryRun)

	if r.reporter != nil {
		r.reporter.Finish(ctx, summary)
	}

	if summary.ExitCode() != 0 {
		return summary, errors.Errorf("%w: %d of %d", ErrFilesFailed, summary.Failed, summary.Total())
	}
	return summary, nil
}
