package ir

// AnalysisMetadata accompanies an IR record, mirroring the reference's
// AnalysisMetadata (crates/core/src/models/intermediate_representation.rs).
type AnalysisMetadata struct {
	Language          Language `json:"language" yaml:"language"`
	TotalLines        int      `json:"total_lines" yaml:"totalLines"`
	AnalysisTimestamp string   `json:"analysis_timestamp" yaml:"analysisTimestamp"`
	LintricVersion    string   `json:"lintric_version" yaml:"lintricVersion"`
	// OverallComplexityScore is the file-level aggregate spec §4.I step 5
	// and invariant 6 define: Σ dependency_distance_cost across every line
	// divided by TotalLines.
	OverallComplexityScore float64 `json:"overall_complexity_score" yaml:"overallComplexityScore"`
	// ContentHash is an addition (not part of the spec's compatibility
	// contract): a highwayhash digest of the source buffer, stamped when the
	// CLI's --snapshot flag is set. Omitted when empty so it
	// never perturbs the stable field set spec §6 promises.
	ContentHash string `json:"content_hash,omitempty" yaml:"contentHash,omitempty"`
}

// IR is the per-file record: field names and ordering are the on-disk
// compatibility contract (spec §6).
type IR struct {
	FilePath         string           `json:"file_path" yaml:"filePath"`
	Definitions      []Definition     `json:"definitions" yaml:"definitions"`
	Dependencies     []Dependency     `json:"dependencies" yaml:"dependencies"`
	Usage            []Usage          `json:"usage" yaml:"usage"`
	AnalysisMetadata AnalysisMetadata `json:"analysis_metadata" yaml:"analysisMetadata"`

	// Scopes is carried alongside the spec's four required fields so
	// downstream tooling (and tests) can inspect the scope tree; it isn't
	// named in spec §6's field list, so report.Write leaves it out of its
	// output.
	Scopes []Scope `json:"scopes,omitempty" yaml:"scopes,omitempty"`

	// Warnings holds non-fatal ShadowingWarning diagnostics (spec §4.G).
	Warnings []ShadowingWarning `json:"-" yaml:"-"`
}
