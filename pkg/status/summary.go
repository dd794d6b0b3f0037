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

package status

import "context"

// 📈 Reporter renders outcomes for the user. Implementations own all
// console formatting so the processing code never deals with colors.
type Reporter interface {
	StartBatch(ctx context.Context, root string, found int, dryRun bool)
	ReportOutcome(ctx context.Context, outcome Outcome)
	Finish(ctx context.Context, summary Summary)
}

// 📊 Summary aggregates the outcomes of one run
type Summary struct {
	Succeeded        int
	Skipped          int
	Failed           int
	SecretsGenerated int
	Preserved        int
	Warnings         int
	DryRun           bool
}

// Summarize counts outcomes by kind
func Summarize(outcomes []Outcome, dryRun bool) Summary {
	s := Summary{DryRun: dryRun}
	for _, o := range outcomes {
		s.Warnings += len(o.Warnings)
		switch o.Kind {
		case KindSuccess:
			s.Succeeded++
			s.SecretsGenerated += len(o.Substitutions)
			s.Preserved += o.Preserved
		case KindSkipped:
			s.Skipped++
		case KindError:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of processed templates
func (s Summary) Total() int {
	return s.Succeeded + s.Skipped + s.Failed
}

// ExitCode is 1 when any template failed, 0 otherwise
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// MaskValue hides all but the first two characters of a secret
func MaskValue(value string) string {
	const visible = 2
	r := []rune(value)
	if len(r) <= visible {
		return "****"
	}
	masked := make([]rune, len(r))
	for i := range r {
		if i < visible {
			masked[i] = r[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}
