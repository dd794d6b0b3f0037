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

package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/envgen/cmd/envgen/commands"
	"github.com/walteh/envgen/cmd/envgen/opts"
	"github.com/walteh/envgen/pkg/config"
)

// rootFlags holds the values bound to command line flags
type rootFlags struct {
	path       string
	configFile string
	force      bool
	dryRun     bool
	mask       bool
	scanLeaks  bool
	length     int
	debug      bool
}

// NewCommand creates the root command
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "envgen",
		Short: "Generate .env files with fresh secrets from .env.example templates",
		Long: `envgen finds every .env.example template below a directory and writes a
sibling .env file. Settings that look like credentials get a newly generated
random secret, everything else is copied as is.

Existing .env files are never touched unless --force is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(stderr, flags.debug)
			ctx := logger.WithContext(cmd.Context())

			return commands.Generate(ctx, &opts.RootOpts{
				Root:       flags.path,
				ConfigFile: flags.configFile,
				ConfigSet:  cmd.Flags().Changed("config"),
				Force:      flags.force,
				DryRun:     flags.dryRun,
				Mask:       flags.mask,
				ScanLeaks:  flags.scanLeaks,
				Length:     flags.length,
				Stdout:     stdout,
				Stderr:     stderr,
			})
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, flags)

	cmd.AddCommand(commands.NewVersionCmd(FormatVersion))

	return cmd
}

// addRootFlags adds the generation flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.Flags().StringVarP(&flags.path, "path", "p", ".", "directory to search for templates")
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path, relative to --path")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing output files")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "show what would be generated without writing")
	cmd.Flags().BoolVarP(&flags.mask, "mask", "m", false, "hide generated secrets in the report")
	cmd.Flags().BoolVar(&flags.scanLeaks, "scan-leaks", false, "warn about template values that look like real secrets")
	cmd.Flags().IntVarP(&flags.length, "length", "l", 0, "secret length (default from config, 24)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
