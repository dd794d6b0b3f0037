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

// Package leak flags template lines that already look like real secrets.
// A committed template should only hold placeholders; anything the gitleaks
// default rules recognize is worth a warning.
package leak

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zricethezav/gitleaks/v8/detect"
	"gitlab.com/tozd/go/errors"
)

// 🔎 Finding is one rule match
type Finding struct {
	Line        int    // 1-based line number
	RuleID      string // gitleaks rule id, e.g. "github-pat"
	Description string
}

// 🔎 Scanner runs the gitleaks default rule set over template lines
type Scanner struct {
	detector *detect.Detector
}

// 🏭 NewScanner creates a scanner with the gitleaks default config
func NewScanner() (*Scanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, errors.Errorf("creating gitleaks detector: %w", err)
	}
	return &Scanner{detector: detector}, nil
}

// ScanLines checks each line on its own, so findings map to exact lines.
// Lines whose 1-based number is in skip are not scanned.
func (s *Scanner) ScanLines(ctx context.Context, lines []string, skip map[int]bool) []Finding {
	logger := zerolog.Ctx(ctx)

	var findings []Finding
	for i, line := range lines {
		num := i + 1
		if skip[num] {
			continue
		}
		for _, f := range s.detector.DetectString(line) {
			findings = append(findings, Finding{
				Line:        num,
				RuleID:      f.RuleID,
				Description: f.Description,
			})
			logger.Debug().Int("line", num).Str("rule", f.RuleID).Msg("possible secret in template")
		}
	}
	return findings
}
