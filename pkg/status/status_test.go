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
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/envgen/pkg/envfile"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "success", KindSuccess.String())
	assert.Equal(t, "skipped", KindSkipped.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestOutcomeConstructors(t *testing.T) {
	subs := []envfile.Substitution{{Key: "DB_PASSWORD", OldValue: "changeme", NewValue: "x"}}

	ok := Success("/a/.env.example", "/a/.env", subs, 3, true)
	assert.Equal(t, KindSuccess, ok.Kind)
	assert.Equal(t, subs, ok.Substitutions)
	assert.Equal(t, 3, ok.Preserved)
	assert.True(t, ok.DryRun)
	assert.Empty(t, ok.Reason)

	skip := Skipped("/a/.env.example", "/a/.env", "file already exists", false)
	assert.Equal(t, KindSkipped, skip.Kind)
	assert.Equal(t, "file already exists", skip.Reason)
	assert.Nil(t, skip.Substitutions)

	failed := Failed("/a/.env.example", "/a/.env", errors.New("reading template: denied"), false)
	assert.Equal(t, KindError, failed.Kind)
	assert.Equal(t, "reading template: denied", failed.Reason)

	assert.Equal(t, "unknown error", Failed("t", "o", nil, false).Reason)
}

func TestOutcome_WithWarnings(t *testing.T) {
	o := Success("t", "o", nil, 0, false)
	w := o.WithWarnings([]Warning{{Line: 2, RuleID: "generic-api-key"}})

	assert.Empty(t, o.Warnings, "original outcome must not change")
	assert.Len(t, w.Warnings, 1)
}

func TestOutcome_DisplayPath(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "work")

	tests := []struct {
		name   string
		output string
		base   string
		want   string
	}{
		{name: "below_base", output: filepath.Join(base, "svc", ".env"), base: base, want: filepath.Join("svc", ".env")},
		{name: "outside_base", output: filepath.Join(string(filepath.Separator), "other", ".env"), base: base, want: filepath.Join(string(filepath.Separator), "other", ".env")},
		{name: "no_base", output: filepath.Join(base, ".env"), base: "", want: filepath.Join(base, ".env")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Outcome{OutputPath: tt.output}
			assert.Equal(t, tt.want, o.DisplayPath(tt.base))
		})
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		Success("a", "a.out", []envfile.Substitution{{Key: "A"}, {Key: "B"}}, 4, false),
		Success("b", "b.out", []envfile.Substitution{{Key: "C"}}, 1, false).WithWarnings([]Warning{{Line: 1}}),
		Skipped("c", "c.out", "exists", false),
		Failed("d", "d.out", errors.New("boom"), false),
	}

	s := Summarize(outcomes, false)
	assert.Equal(t, Summary{
		Succeeded:        2,
		Skipped:          1,
		Failed:           1,
		SecretsGenerated: 3,
		Preserved:        5,
		Warnings:         1,
	}, s)
	assert.Equal(t, 4, s.Total())
	assert.Equal(t, 1, s.ExitCode())
}

func TestSummary_ExitCode(t *testing.T) {
	assert.Equal(t, 0, Summarize(nil, false).ExitCode(), "nothing to do is success")
	assert.Equal(t, 0, Summarize([]Outcome{Skipped("a", "b", "exists", false)}, false).ExitCode(), "skips are not errors")
	assert.Equal(t, 1, Summarize([]Outcome{Failed("a", "b", nil, false)}, false).ExitCode())
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "ab****", MaskValue("abcdef"))
	assert.Equal(t, "****", MaskValue("ab"))
	assert.Equal(t, "****", MaskValue(""))
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mgr := NewManager(0)

	path := filepath.Join(dir, ".env")

	exists, err := mgr.FileExists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("A=1\n")))

	exists, err = mgr.FileExists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := mgr.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(content))

	// overwrite replaces content entirely
	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("B=2\n")))
	content, err = mgr.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "B=2\n", string(content))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultFileMode, info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(0o644)

	_, err := mgr.ReadFile(ctx, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")

	err = mgr.WriteFileAtomic(ctx, filepath.Join(t.TempDir(), "missing", ".env"), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temp file")
}
