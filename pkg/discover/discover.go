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

// Package discover finds dotenv templates below a search root.
package discover

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrPathNotFound     = errors.Base("path does not exist")
	ErrPathNotDirectory = errors.Base("path is not a directory")
)

// 🔧 Options controls which files are returned
type Options struct {
	TemplateName     string   // Exact base name of template files
	Exclude          []string // doublestar patterns, relative to the root, slash separated
	RespectGitignore bool     // Skip paths ignored by the root .gitignore
}

// 🔍 ValidateRoot resolves root to an absolute directory path
func ValidateRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("resolving %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return "", errors.Errorf("checking %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%w: %s", ErrPathNotDirectory, root)
	}

	return abs, nil
}

// 🔍 Find walks root and returns the absolute paths of all template files
// in lexicographic order.
func Find(ctx context.Context, root string, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	abs, err := ValidateRoot(root)
	if err != nil {
		return nil, err
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var gitignore *ignore.GitIgnore
	if opts.RespectGitignore {
		gitignore, err = loadGitignore(abs)
		if err != nil {
			return nil, err
		}
	}

	var found []string
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == abs {
				return walkErr
			}
			// unreadable subtrees are reported and skipped
			logger.Warn().Err(walkErr).Str("path", p).Msg("skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if p == abs {
			return nil
		}

		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return errors.Errorf("relativizing %q: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		if skip, why := shouldSkip(rel, d.IsDir(), opts.Exclude, gitignore); skip {
			logger.Debug().Str("path", rel).Str("reason", why).Msg("skipping")
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && d.Type().IsRegular() && d.Name() == opts.TemplateName {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %q: %w", abs, err)
	}

	sort.Strings(found)
	logger.Debug().Int("count", len(found)).Str("root", abs).Msg("discovered templates")

	return found, nil
}

// shouldSkip matches directories both as "dir" and "dir/" so patterns
// written either way apply
func shouldSkip(rel string, isDir bool, exclude []string, gitignore *ignore.GitIgnore) (bool, string) {
	candidates := []string{rel}
	if isDir {
		candidates = append(candidates, rel+"/", path.Join(rel, "_"))
	}

	for _, pattern := range exclude {
		for _, c := range candidates {
			if ok, _ := doublestar.Match(pattern, c); ok {
				return true, "excluded by " + pattern
			}
		}
	}

	if gitignore != nil {
		for _, c := range candidates[:min(len(candidates), 2)] {
			if gitignore.MatchesPath(c) {
				return true, "ignored by .gitignore"
			}
		}
	}

	return false, ""
}

func loadGitignore(root string) (*ignore.GitIgnore, error) {
	p := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return nil, nil
	}

	gi, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		return nil, errors.Errorf("reading .gitignore: %w", err)
	}
	return gi, nil
}
