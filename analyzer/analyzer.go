// Package analyzer ties the Position & Node Adapter, Unified Traverser,
// Symbol Table, Dependency Resolver and Metric Engine together into the
// single per-file entry point the driver and CLI call (spec §5: analysis is
// single-threaded per file).
package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/highwayhash"
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/symtrace/lintric/internal/cst"
	"github.com/symtrace/lintric/internal/depgraph"
	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/lang"
	"github.com/symtrace/lintric/internal/metrics"
	"github.com/symtrace/lintric/internal/resolve"
	"github.com/symtrace/lintric/internal/traverse"
)

// hashKey is a fixed, non-secret highwayhash key: the hash is used as a
// content fingerprint for caching, never as a MAC.
var hashKey = make([]byte, 32)

// Result bundles one file's IR with its per-line complexity metrics, which
// the spec's §4.I Metric Engine computes from the IR's own dependency edges
// rather than storing inline on the IR.
type Result struct {
	IR      ir.IR
	Metrics []metrics.Line
}

// Analyzer runs the full per-file pipeline: parse, traverse, resolve,
// measure.
type Analyzer struct {
	logger      *zap.Logger
	version     string
	contentHash bool
}

// New builds an Analyzer with the given options applied over sensible
// defaults (a no-op logger, version "dev", no content hash).
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: zap.NewNop(), version: "dev"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses src as path's language, builds its IR and metrics. A
// syntax error from the parser degrades to a best-effort partial tree
// rather than failing outright (tree-sitter is error-tolerant by design);
// an unsupported extension or unknown language is returned as an error so
// the driver can skip the file with a warning (spec §7).
func (a *Analyzer) Analyze(ctx context.Context, path string, src []byte) (Result, error) {
	language, err := ir.LanguageForPath(path)
	if err != nil {
		return Result{}, err
	}
	binding, ok := lang.For(language)
	if !ok {
		return Result{}, fmt.Errorf("lintric: no extractor registered for language %q", language)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(binding.Grammar)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Result{}, fmt.Errorf("lintric: parsing %s: %w", path, err)
	}
	root := cst.Wrap(tree.RootNode(), src)

	walked := traverse.Walk(root, binding.Extractor)
	deps, warnings := resolve.Resolve(walked.Scopes, walked.Definitions, walked.Usages)
	graph := depgraph.New(deps)
	engine := metrics.New(graph)
	lineMetrics := engine.Compute()
	totalLines := countLines(src)

	record := ir.IR{
		FilePath:     path,
		Definitions:  walked.Definitions,
		Dependencies: deps,
		Usage:        walked.Usages,
		Scopes:       walked.Scopes.All(),
		Warnings:     warnings,
		AnalysisMetadata: ir.AnalysisMetadata{
			Language:               language,
			TotalLines:             totalLines,
			AnalysisTimestamp:      time.Now().UTC().Format(time.RFC3339),
			LintricVersion:         a.version,
			OverallComplexityScore: engine.OverallComplexityScore(totalLines),
		},
	}
	if a.contentHash {
		if h, err := highwayhash.New64(hashKey); err != nil {
			a.logger.Warn("content hash failed", zap.String("path", path), zap.Error(err))
		} else {
			h.Write(src)
			record.AnalysisMetadata.ContentHash = fmt.Sprintf("%016x", h.Sum64())
		}
	}

	for _, w := range warnings {
		a.logger.Debug("shadowing warning",
			zap.String("path", path),
			zap.String("message", w.Message))
	}

	return Result{IR: record, Metrics: lineMetrics}, nil
}

func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte{'\n'}) + 1
	return n
}
