package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/smat-dev/jinni/internal/jinni"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runReadContext(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer syncLogger(logger)

	overrideRules, err := loadOverrideRules()
	if err != nil {
		return err
	}

	req := jinni.Request{
		ProjectRoot:       flagProjectRoot,
		Targets:           args,
		OverrideRules:     overrideRules,
		ListOnly:          flagListOnly,
		IncludeSizeInList: flagIncludeSizeInList,
		SizeLimitBytes:    flagSizeLimitMB * 1024 * 1024,
		DebugExplain:      flagDebug,
	}

	logger.Debug("starting context read",
		zap.String("projectRoot", flagProjectRoot),
		zap.Strings("targets", args),
		zap.Bool("listOnly", flagListOnly),
	)

	result, err := jinni.ReadContext(req)
	if err != nil {
		return renderError(err)
	}

	for _, note := range result.Notes {
		logger.Debug(note)
	}

	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, []byte(result.Output), 0o644); err != nil {
			return fmt.Errorf("writing output file %s: %w", flagOutput, err)
		}
		logger.Info("wrote context dump", zap.String("output", flagOutput), zap.Int("bytes", len(result.Output)))
		return nil
	}

	fmt.Println(result.Output)
	return nil
}

func loadOverrideRules() ([]string, error) {
	if flagOverrideFile == "" {
		return flagOverrideRules, nil
	}
	fromFile, err := jinni.LoadPatternFile(flagOverrideFile)
	if err != nil {
		return nil, err
	}
	return append(fromFile, flagOverrideRules...), nil
}

func renderError(err error) error {
	var sizeErr *jinni.DetailedContextSizeError
	if errors.As(err, &sizeErr) {
		fmt.Fprintf(os.Stderr, "context size limit exceeded: %d bytes observed, limit is %d bytes\n", sizeErr.ObservedBytes, sizeErr.LimitBytes)
		fmt.Fprintln(os.Stderr, "largest files:")
		for _, f := range sizeErr.LargestFiles {
			fmt.Fprintf(os.Stderr, "  %10d  %s\n", f.Bytes, f.RelPath)
		}
		return err
	}
	return err
}
