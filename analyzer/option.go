package analyzer

import "go.uber.org/zap"

// Option configures an Analyzer at construction time.
type Option func(*Analyzer)

// WithLogger overrides the analyzer's logger (default: a no-op logger).
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithVersion sets the version string stamped into every IR's
// AnalysisMetadata.LintricVersion.
func WithVersion(version string) Option {
	return func(a *Analyzer) { a.version = version }
}

// WithContentHash toggles computing a highwayhash digest of each file's
// source into AnalysisMetadata.ContentHash, as a cache key for consumers of
// the output; nothing in lintric reads it back. Off by default: the hash is
// an addition beyond spec §6's compatibility contract, not everyone wants
// the extra field.
func WithContentHash(enabled bool) Option {
	return func(a *Analyzer) { a.contentHash = enabled }
}
