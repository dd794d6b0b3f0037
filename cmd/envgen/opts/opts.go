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

package opts

import (
	"io"

	"github.com/walteh/envgen/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Root       string         // Absolute directory searched for templates
	ConfigFile string         // Config file path, relative paths resolve against Root
	ConfigSet  bool           // ConfigFile was given explicitly and must exist
	Config     *config.Config // Loaded configuration with flag overrides applied

	Force     bool
	DryRun    bool
	Mask      bool
	ScanLeaks bool
	Length    int // 0 keeps the configured length

	Stdout io.Writer
	Stderr io.Writer
}
