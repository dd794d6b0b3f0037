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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/envgen/pkg/envfile"
	"github.com/walteh/envgen/pkg/secret"
)

// DefaultFile is looked up in the search root when no --config is given
const DefaultFile = ".envgen.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, on top of the defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	TemplateName     string   `json:"template_name" yaml:"template_name"`
	OutputName       string   `json:"output_name" yaml:"output_name"`
	Length           int      `json:"length" yaml:"length"`
	Symbols          string   `json:"symbols" yaml:"symbols"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	InsecureValues   []string `json:"insecure_values" yaml:"insecure_values"`
	Exclude          []string `json:"exclude" yaml:"exclude"`
	RespectGitignore bool     `json:"respect_gitignore" yaml:"respect_gitignore"`
	ScanLeaks        bool     `json:"scan_leaks" yaml:"scan_leaks"`
	FileMode         string   `json:"file_mode" yaml:"file_mode"` // octal, e.g. "0600"
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		TemplateName:     ".env.example",
		OutputName:       ".env",
		Length:           secret.DefaultLength,
		Symbols:          secret.DefaultSymbols,
		Keywords:         append([]string(nil), envfile.DefaultKeywords...),
		InsecureValues:   append([]string(nil), envfile.DefaultInsecureValues...),
		Exclude:          []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		RespectGitignore: true,
		FileMode:         "0600",
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads path, falling back to defaults when it does not exist
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	cfg.TemplateName = strings.TrimSpace(cfg.TemplateName)
	cfg.OutputName = strings.TrimSpace(cfg.OutputName)

	if cfg.TemplateName == "" {
		return errors.Errorf("template_name is required")
	}
	if cfg.OutputName == "" {
		return errors.Errorf("output_name is required")
	}
	if cfg.TemplateName == cfg.OutputName {
		return errors.Errorf("template_name and output_name must differ")
	}
	for _, name := range []string{cfg.TemplateName, cfg.OutputName} {
		if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || name == "." || name == ".." {
			return errors.Errorf("%q must be a file name, not a path", name)
		}
	}

	if len(cfg.Keywords) == 0 && len(cfg.InsecureValues) == 0 {
		return errors.Errorf("at least one keyword or insecure value is required")
	}

	if _, err := cfg.Generator(); err != nil {
		return errors.Errorf("invalid secret settings: %w", err)
	}

	if _, err := cfg.Mode(); err != nil {
		return err
	}

	return nil
}

// Mode parses FileMode as an octal permission
func (cfg *Config) Mode() (os.FileMode, error) {
	if cfg.FileMode == "" {
		return 0o600, nil
	}
	mode, err := strconv.ParseUint(cfg.FileMode, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, errors.Errorf("file_mode %q is not an octal permission", cfg.FileMode)
	}
	return os.FileMode(mode), nil
}

// Classifier builds the credential classifier from the keyword lists
func (cfg *Config) Classifier() *envfile.Classifier {
	return envfile.NewClassifier(cfg.Keywords, cfg.InsecureValues)
}

// Generator builds the secret generator from length and symbols
func (cfg *Config) Generator() (*secret.Generator, error) {
	return secret.New(cfg.Length, cfg.Symbols)
}
