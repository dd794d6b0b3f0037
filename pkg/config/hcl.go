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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
// Expressions may reference environment variables as env.NAME.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "envgen.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// absent attributes stay nil and keep their defaults
	type hclConfig struct {
		TemplateName     *string   `hcl:"template_name,optional"`
		OutputName       *string   `hcl:"output_name,optional"`
		Length           *int      `hcl:"length,optional"`
		Symbols          *string   `hcl:"symbols,optional"`
		Keywords         *[]string `hcl:"keywords,optional"`
		InsecureValues   *[]string `hcl:"insecure_values,optional"`
		Exclude          *[]string `hcl:"exclude,optional"`
		RespectGitignore *bool     `hcl:"respect_gitignore,optional"`
		ScanLeaks        *bool     `hcl:"scan_leaks,optional"`
		FileMode         *string   `hcl:"file_mode,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	setIf(&cfg.TemplateName, hclCfg.TemplateName)
	setIf(&cfg.OutputName, hclCfg.OutputName)
	setIf(&cfg.Length, hclCfg.Length)
	setIf(&cfg.Symbols, hclCfg.Symbols)
	setIf(&cfg.Keywords, hclCfg.Keywords)
	setIf(&cfg.InsecureValues, hclCfg.InsecureValues)
	setIf(&cfg.Exclude, hclCfg.Exclude)
	setIf(&cfg.RespectGitignore, hclCfg.RespectGitignore)
	setIf(&cfg.ScanLeaks, hclCfg.ScanLeaks)
	setIf(&cfg.FileMode, hclCfg.FileMode)

	return cfg, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// environment exposes the process environment as an HCL object
func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
