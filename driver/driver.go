// Package driver discovers source files under a project root and fans
// analysis out across them. Per spec §5, analysis is single-threaded within
// one file but embarrassingly parallel across files in a project, so the
// driver owns the worker pool; the analyzer package stays concurrency-free.
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"github.com/viant/afs/option"
	"go.uber.org/zap"

	"github.com/symtrace/lintric/analyzer"
)

// Options configures file discovery and the concurrency the driver fans
// analysis out over.
type Options struct {
	// Include is a set of doublestar glob patterns, relative to the
	// project root, selecting which files to analyze.
	Include []string
	// Exclude is a set of doublestar glob patterns, relative to the
	// project root, pruning files Include would otherwise select.
	Exclude []string
	// Concurrency bounds how many files analyze in parallel. Defaults to
	// runtime.NumCPU() when zero.
	Concurrency int
}

// DefaultInclude matches every file extension a registered language parses.
var DefaultInclude = []string{"**/*.rs", "**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx"}

// DefaultExclude prunes the dependency directories of both ecosystems.
var DefaultExclude = []string{"**/node_modules/**", "**/target/**", "**/dist/**"}

func (o Options) withDefaults() Options {
	if len(o.Include) == 0 {
		o.Include = DefaultInclude
	}
	if len(o.Exclude) == 0 {
		o.Exclude = DefaultExclude
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}
	return o
}

// Driver discovers and analyzes the files of one project root.
type Driver struct {
	fs       afs.Service
	analyzer *analyzer.Analyzer
	logger   *zap.Logger
}

// New builds a Driver over a as the per-file analyzer, reading source
// through the viant/afs storage abstraction so a project root can live on
// local disk or any other afs-supported backend.
func New(a *analyzer.Analyzer, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{fs: afs.New(), analyzer: a, logger: logger}
}

// Discover lists every file under root matching Options.Include and not
// matching Options.Exclude (doublestar glob syntax, matched against the
// path relative to root).
func (d *Driver) Discover(ctx context.Context, root string, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("lintric: resolving project root %s: %w", root, err)
	}

	objects, err := d.fs.List(ctx, absRoot, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("lintric: listing %s: %w", root, err)
	}

	var out []string
	for _, obj := range objects {
		if obj.IsDir() {
			continue
		}
		rel, ok := relativePath(absRoot, obj.URL())
		if !ok {
			continue
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(rel, opts.Include) {
			continue
		}
		if matchesAny(rel, opts.Exclude) {
			continue
		}
		out = append(out, filepath.Join(root, rel))
	}
	return out, nil
}

func relativePath(absRoot, url string) (string, bool) {
	path := strings.TrimPrefix(url, "file://")
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}

func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// AnalyzeAll discovers files under root and analyzes them concurrently,
// bounded by Options.Concurrency. A single file's error is logged and
// excluded from the result rather than aborting the whole batch (spec §7:
// one bad file never takes down an entire project analysis).
func (d *Driver) AnalyzeAll(ctx context.Context, root string, opts Options) ([]analyzer.Result, error) {
	opts = opts.withDefaults()
	paths, err := d.Discover(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	results := make([]analyzer.Result, len(paths))
	ok := make([]bool, len(paths))

	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			src, err := d.fs.DownloadWithURL(ctx, path)
			if err != nil {
				d.logger.Warn("reading file", zap.String("path", path), zap.Error(err))
				return
			}
			result, err := d.analyzer.Analyze(ctx, path, src)
			if err != nil {
				d.logger.Warn("analyzing file", zap.String("path", path), zap.Error(err))
				return
			}
			results[i] = result
			ok[i] = true
		}()
	}
	wg.Wait()

	out := make([]analyzer.Result, 0, len(paths))
	for i, good := range ok {
		if good {
			out = append(out, results[i])
		}
	}
	return out, nil
}
