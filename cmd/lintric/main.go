// Command lintric analyzes Rust, TypeScript and TSX source trees and emits
// their per-file intermediate representation and complexity metrics.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/symtrace/lintric/analyzer"
	"github.com/symtrace/lintric/driver"
	"github.com/symtrace/lintric/internal/logging"
	"github.com/symtrace/lintric/report"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lintric",
		Short: "Dependency and complexity analysis for Rust and TypeScript sources",
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		format      string
		include     []string
		exclude     []string
		concurrency int
		snapshot    bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze every source file under path and report its IR and metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(verbose)
			defer logger.Sync()

			a := analyzer.New(
				analyzer.WithLogger(logger),
				analyzer.WithVersion(version),
				analyzer.WithContentHash(snapshot),
			)
			d := driver.New(a, logger)

			results, err := d.AnalyzeAll(context.Background(), args[0], driver.Options{
				Include:     include,
				Exclude:     exclude,
				Concurrency: concurrency,
			})
			if err != nil {
				return err
			}

			logger.Info("analysis complete", zap.Int("files", len(results)))
			return report.Write(cmd.OutOrStdout(), results, report.Format(format))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml, or text")
	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns to include (default: all registered languages)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns to exclude (default: node_modules, target, dist)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "max files analyzed in parallel (default: NumCPU)")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "stamp a content hash into each file's metadata for cache keying")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging, including shadowing warnings")

	return cmd
}
