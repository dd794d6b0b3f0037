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

package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/envgen/cmd/envgen/opts"
	"github.com/walteh/envgen/pkg/config"
	"github.com/walteh/envgen/pkg/discover"
	"github.com/walteh/envgen/pkg/envfile"
	"github.com/walteh/envgen/pkg/leak"
	"github.com/walteh/envgen/pkg/log"
	"github.com/walteh/envgen/pkg/operation"
	"github.com/walteh/envgen/pkg/status"
)

// 🎯 Generate finds every template below o.Root and writes its output file.
// It returns operation.ErrFilesFailed when any template failed.
func Generate(ctx context.Context, o *opts.RootOpts) error {
	root, err := discover.ValidateRoot(o.Root)
	if err != nil {
		return err
	}
	o.Root = root

	ctx = zerolog.Ctx(ctx).With().Str("root", root).Logger().WithContext(ctx)

	cfg, err := loadConfig(ctx, o)
	if err != nil {
		return err
	}
	o.Config = cfg

	paths, err := discover.Find(ctx, root, discover.Options{
		TemplateName:     cfg.TemplateName,
		Exclude:          cfg.Exclude,
		RespectGitignore: cfg.RespectGitignore,
	})
	if err != nil {
		return errors.Errorf("finding templates: %w", err)
	}

	base := root
	if wd, err := os.Getwd(); err == nil {
		base = wd
	}
	reporter := log.New(o.Stdout, *zerolog.Ctx(ctx)).
		WithMask(o.Mask).
		WithBase(base)
	ctx = log.NewContext(ctx, reporter)

	runner, err := newRunner(ctx, o)
	if err != nil {
		return err
	}

	_, err = runner.Run(ctx, root, paths, operation.Options{
		Force:  o.Force,
		DryRun: o.DryRun,
	})
	return err
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(ctx context.Context, o *opts.RootOpts) (*config.Config, error) {
	path := o.ConfigFile
	if path == "" {
		path = config.DefaultFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.Root, path)
	}

	var cfg *config.Config
	var err error
	if o.ConfigSet {
		cfg, err = config.Load(ctx, path)
	} else {
		cfg, err = config.LoadOrDefault(ctx, path)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if o.Length != 0 {
		cfg.Length = o.Length
	}
	if o.ScanLeaks {
		cfg.ScanLeaks = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// newRunner wires the generator, file manager and scanner to the reporter
// carried by ctx
func newRunner(ctx context.Context, o *opts.RootOpts) (*operation.Runner, error) {
	cfg := o.Config

	gen, err := cfg.Generator()
	if err != nil {
		return nil, errors.Errorf("creating secret generator: %w", err)
	}

	mode, err := cfg.Mode()
	if err != nil {
		return nil, errors.Errorf("parsing file mode: %w", err)
	}

	var scanner operation.LeakScanner
	if cfg.ScanLeaks {
		s, err := leak.NewScanner()
		if err != nil {
			return nil, errors.Errorf("creating leak scanner: %w", err)
		}
		scanner = s
	}

	transformer := operation.NewTransformer(
		status.NewManager(mode),
		envfile.NewRewriter(cfg.Classifier(), gen),
		cfg.OutputName,
		scanner,
	)

	return operation.NewRunner(transformer, log.FromContext(ctx)), nil
}
