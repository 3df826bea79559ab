// Package cmd implements the jinni CLI front-end: a thin cobra layer
// that parses flags, wires them into a jinni.Request, and renders the
// core engine's output or errors.
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/smat-dev/jinni/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	flagProjectRoot       string
	flagListOnly          bool
	flagIncludeSizeInList bool
	flagSizeLimitMB       int64
	flagOverrideRules     []string
	flagOverrideFile      string
	flagOutput            string
	flagDebug             bool
)

// RootCmd is the base command: run bare, it dumps context for the
// given targets (or the project root when none are given).
var RootCmd = &cobra.Command{
	Use:   "jinni [paths...]",
	Short: "jinni builds a consolidated context dump of a project",
	Long:  `jinni walks one or more target paths, filters files through a layered gitignore-style rule engine, and emits a single consolidated text stream suitable for feeding to a large language model.`,
	RunE:  runReadContext,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagProjectRoot, "project-root", ".", "project root all output paths are relative to")
	RootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable verbose logging and skip-reason notes")

	RootCmd.Flags().BoolVarP(&flagListOnly, "list-only", "l", false, "list included file paths instead of emitting their content")
	RootCmd.Flags().BoolVar(&flagIncludeSizeInList, "include-size-in-list", false, "prefix each listed path with its byte size (list-only mode)")
	RootCmd.Flags().Int64Var(&flagSizeLimitMB, "size-limit-mb", 0, "aggregate content size budget in MiB (0: use JINNI_MAX_SIZE_MB or the built-in default)")
	RootCmd.Flags().StringArrayVar(&flagOverrideRules, "override", nil, "override rule pattern; when any --override is given, defaults/.gitignore/.contextfiles are ignored entirely")
	RootCmd.Flags().StringVar(&flagOverrideFile, "override-file", "", "path to a file of override rule patterns, one per line")
	RootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write output to this file instead of stdout")
}

// Execute runs the root command, building the logger from the --debug
// flag once cobra has parsed flags.
func Execute() error {
	return RootCmd.Execute()
}

func newLogger() *zap.Logger {
	built, err := logging.Setup(flagDebug, "jinni", "cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logger setup failed: %v\n", err)
		return zap.NewNop()
	}
	return built
}

// syncLogger flushes the logger when stderr is a terminal or a
// regular file (stderr redirected to a file), swallowing the "invalid
// argument" error zap's Sync returns against a terminal on some
// platforms. Any other stderr, such as a pipe, is not synced.
func syncLogger(logger *zap.Logger) {
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if err := logger.Sync(); err != nil {
			if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
				log.Printf("logger sync failed: %v", err)
			}
		}
	}
}

func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
