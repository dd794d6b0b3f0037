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
	"strings"
)

// 📄 Line is one line of a dotenv template
type Line struct {
	Raw     string // Original text including its terminator
	Key     string // Trimmed text left of the first '='
	Value   string // Trimmed text between '=' and the first '#'
	Comment string // Inline comment starting at '#', empty when absent
}

// HasKey reports whether the line is a KEY=VALUE setting
func (l Line) HasKey() bool {
	return l.Key != ""
}

// 🔍 ParseLine splits a raw line into key, value and inline comment.
// Blank lines, full-line comments and lines without '=' have no key.
// No quoting or escaping is interpreted.
func ParseLine(raw string) Line {
	stripped := strings.TrimSpace(raw)
	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return Line{Raw: raw}
	}

	keyPart, valuePart, ok := strings.Cut(stripped, "=")
	if !ok {
		return Line{Raw: raw}
	}

	line := Line{
		Raw: raw,
		Key: strings.TrimSpace(keyPart),
	}

	if value, comment, found := strings.Cut(valuePart, "#"); found {
		line.Value = strings.TrimSpace(value)
		line.Comment = "#" + comment
	} else {
		line.Value = strings.TrimSpace(valuePart)
	}

	return line
}

// 🔄 Replace renders KEY=secret, keeping the inline comment, newline terminated
func (l Line) Replace(secret string) string {
	var sb strings.Builder
	sb.WriteString(l.Key)
	sb.WriteByte('=')
	sb.WriteString(secret)
	if l.Comment != "" {
		sb.WriteByte(' ')
		sb.WriteString(l.Comment)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// SplitLines splits content after every '\n', keeping terminators.
// A final line without a terminator is returned as is.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
