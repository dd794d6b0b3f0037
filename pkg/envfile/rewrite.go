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

package envfile

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎲 SecretGenerator produces one credential value per call
type SecretGenerator interface {
	Generate() (string, error)
}

// 🔐 Substitution records one rewritten setting
type Substitution struct {
	Key      string // Setting name
	OldValue string // Placeholder found in the template
	NewValue string // Generated secret
	Line     int    // 1-based line number in the template
	Reason   Reason // Why the setting was classified
}

// 📦 RewriteResult holds the rewritten content and what changed
type RewriteResult struct {
	Content       []byte
	Substitutions []Substitution
	Preserved     int // Settings copied through unchanged
	Lines         int
}

// 🔄 Rewriter replaces credential values in dotenv content
type Rewriter struct {
	classifier *Classifier
	secrets    SecretGenerator
}

// 🏭 NewRewriter creates a rewriter
func NewRewriter(classifier *Classifier, secrets SecretGenerator) *Rewriter {
	return &Rewriter{
		classifier: classifier,
		secrets:    secrets,
	}
}

// Rewrite copies content line by line, replacing the value of every
// credential setting with a generated secret. Lines that are not replaced
// are copied byte for byte, terminators included.
func (r *Rewriter) Rewrite(ctx context.Context, content io.Reader) (*RewriteResult, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	lines := SplitLines(string(data))

	result := &RewriteResult{Lines: len(lines)}
	var out strings.Builder
	out.Grow(len(data))

	for i, raw := range lines {
		line := ParseLine(raw)

		reason := ReasonNone
		if line.HasKey() && line.Value != "" {
			reason = r.classifier.Classify(line.Key, line.Value)
		}

		if reason == ReasonNone {
			out.WriteString(raw)
			if line.HasKey() {
				result.Preserved++
			}
			continue
		}

		value, err := r.secrets.Generate()
		if err != nil {
			return nil, errors.Errorf("generating secret for %s: %w", line.Key, err)
		}

		out.WriteString(line.Replace(value))
		result.Substitutions = append(result.Substitutions, Substitution{
			Key:      line.Key,
			OldValue: line.Value,
			NewValue: value,
			Line:     i + 1,
			Reason:   reason,
		})

		logger.Debug().
			Str("key", line.Key).
			Int("line", i+1).
			Stringer("reason", reason).
			Msg("replacing credential")
	}

	result.Content = []byte(out.String())

	logger.Debug().
		Int("lines", result.Lines).
		Int("replaced", len(result.Substitutions)).
		Int("preserved", result.Preserved).
		Msg("rewrote content")

	return result, nil
}
