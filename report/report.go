// Package report serializes analyzer Results to the on-disk formats
// downstream tooling consumes, honoring spec §6's stable field contract for
// the IR.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/symtrace/lintric/analyzer"
)

// Format selects the serialization written by Write.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	Text Format = "text"
)

// document is the on-disk shape for one analyzed file: the spec's IR plus
// this system's metrics addition, kept as a sibling field rather than
// folded into the IR so a strict spec §6 consumer can ignore it.
type document struct {
	FilePath    string          `json:"file_path" yaml:"filePath"`
	Definitions interface{}     `json:"definitions" yaml:"definitions"`
	Dependencies interface{}    `json:"dependencies" yaml:"dependencies"`
	Usage       interface{}     `json:"usage" yaml:"usage"`
	Metadata    interface{}     `json:"analysis_metadata" yaml:"analysisMetadata"`
	Metrics     interface{}     `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

func toDocument(r analyzer.Result) document {
	return document{
		FilePath:     r.IR.FilePath,
		Definitions:  r.IR.Definitions,
		Dependencies: r.IR.Dependencies,
		Usage:        r.IR.Usage,
		Metadata:     r.IR.AnalysisMetadata,
		Metrics:      r.Metrics,
	}
}

// Write serializes results to w in the given format.
func Write(w io.Writer, results []analyzer.Result, format Format) error {
	docs := make([]document, 0, len(results))
	for _, r := range results {
		docs = append(docs, toDocument(r))
	}

	switch format {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case YAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(docs)
	case Text:
		return writeText(w, results)
	default:
		return fmt.Errorf("lintric: unknown report format %q", format)
	}
}

func writeText(w io.Writer, results []analyzer.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s  (complexity=%.2f)\n", r.IR.FilePath, r.IR.AnalysisMetadata.OverallComplexityScore); err != nil {
			return err
		}
		for _, d := range r.IR.Dependencies {
			if _, err := fmt.Fprintf(w, "  %d -> %d  %-20s %s\n", d.SourceLine, d.TargetLine, d.DependencyType, d.Symbol); err != nil {
				return err
			}
		}
		for _, m := range r.Metrics {
			if _, err := fmt.Fprintf(w, "  line %d: cost=%d depth=%d\n", m.Line, m.DependencyDistanceCost, m.Depth); err != nil {
				return err
			}
		}
	}
	return nil
}
