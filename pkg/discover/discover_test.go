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

package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// buildTree creates files (relative, slash separated) under a temp root
func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestFind(t *testing.T) {
	root := buildTree(t, map[string]string{
		".env.example":                   "A=1\n",
		"b/c/.env.example":               "B=1\n",
		"a/.env.example":                 "C=1\n",
		"a/.env":                         "C=2\n",
		"a/notes.txt":                    "",
		"node_modules/pkg/.env.example":  "D=1\n",
		"ignored/.env.example":           "E=1\n",
		"build/out/.env.example":         "F=1\n",
		".gitignore":                     "ignored/\n/build\n",
		"deep/nested/dir/x/.env.example": "G=1\n",
	})

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "defaults",
			opts: Options{
				TemplateName:     ".env.example",
				Exclude:          []string{"**/node_modules/**"},
				RespectGitignore: true,
			},
			want: []string{
				".env.example",
				"a/.env.example",
				"b/c/.env.example",
				"deep/nested/dir/x/.env.example",
			},
		},
		{
			name: "without_gitignore",
			opts: Options{
				TemplateName: ".env.example",
				Exclude:      []string{"**/node_modules/**"},
			},
			want: []string{
				".env.example",
				"a/.env.example",
				"b/c/.env.example",
				"build/out/.env.example",
				"deep/nested/dir/x/.env.example",
				"ignored/.env.example",
			},
		},
		{
			name: "exclude_nested_pattern",
			opts: Options{
				TemplateName:     ".env.example",
				Exclude:          []string{"**/node_modules/**", "deep/**"},
				RespectGitignore: true,
			},
			want: []string{
				".env.example",
				"a/.env.example",
				"b/c/.env.example",
			},
		},
		{
			name: "other_template_name",
			opts: Options{TemplateName: ".env"},
			want: []string{"a/.env"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(testContext(t), root, tt.opts)
			require.NoError(t, err)

			want := make([]string, 0, len(tt.want))
			for _, w := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(w)))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFind_Empty(t *testing.T) {
	root := buildTree(t, map[string]string{"README.md": "hi"})

	got, err := Find(testContext(t), root, Options{TemplateName: ".env.example"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFind_InvalidPattern(t *testing.T) {
	root := t.TempDir()

	_, err := Find(testContext(t), root, Options{TemplateName: ".env.example", Exclude: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}

func TestValidateRoot(t *testing.T) {
	root := buildTree(t, map[string]string{"file.txt": "x"})

	abs, err := ValidateRoot(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	_, err = ValidateRoot(filepath.Join(root, "missing"))
	assert.True(t, errors.Is(err, ErrPathNotFound), "got %v", err)

	_, err = ValidateRoot(filepath.Join(root, "file.txt"))
	assert.True(t, errors.Is(err, ErrPathNotDirectory), "got %v", err)

	_, err = Find(testContext(t), filepath.Join(root, "file.txt"), Options{TemplateName: ".env.example"})
	assert.True(t, errors.Is(err, ErrPathNotDirectory), "got %v", err)
}
