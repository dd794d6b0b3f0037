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

import (
	"path/filepath"
	"strings"

	"github.com/walteh/envgen/pkg/envfile"
)

// 📊 Kind is the result of processing one template
type Kind int

const (
	KindUnknown Kind = iota
	KindSuccess      // Output was generated (or would be, in a dry run)
	KindSkipped      // Output already exists and force was not set
	KindError        // Reading the template or writing the output failed
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindSkipped:
		return "skipped"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ⚠️ Warning is a non-fatal finding attached to a processed template
type Warning struct {
	Line        int    // 1-based line in the template
	RuleID      string // Detector rule that matched
	Description string // Human readable rule description
}

// 📄 Outcome describes what happened to one template. It is built once
// per file and not modified afterwards.
type Outcome struct {
	Kind          Kind
	TemplatePath  string
	OutputPath    string
	Substitutions []envfile.Substitution // success only
	Preserved     int                    // success only
	Reason        string                 // skipped and error only
	DryRun        bool
	Warnings      []Warning
}

// 🏭 Success creates a success outcome
func Success(template, output string, subs []envfile.Substitution, preserved int, dryRun bool) Outcome {
	return Outcome{
		Kind:          KindSuccess,
		TemplatePath:  template,
		OutputPath:    output,
		Substitutions: subs,
		Preserved:     preserved,
		DryRun:        dryRun,
	}
}

// 🏭 Skipped creates a skipped outcome
func Skipped(template, output, reason string, dryRun bool) Outcome {
	return Outcome{
		Kind:         KindSkipped,
		TemplatePath: template,
		OutputPath:   output,
		Reason:       reason,
		DryRun:       dryRun,
	}
}

// 🏭 Failed creates an error outcome from err
func Failed(template, output string, err error, dryRun bool) Outcome {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return Outcome{
		Kind:         KindError,
		TemplatePath: template,
		OutputPath:   output,
		Reason:       reason,
		DryRun:       dryRun,
	}
}

// WithWarnings returns a copy of o carrying warnings
func (o Outcome) WithWarnings(warnings []Warning) Outcome {
	o.Warnings = warnings
	return o
}

// DisplayPath returns OutputPath relative to base when it lies below it
func (o Outcome) DisplayPath(base string) string {
	if base == "" {
		return o.OutputPath
	}
	rel, err := filepath.Rel(base, o.OutputPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return o.OutputPath
	}
	return rel
}
