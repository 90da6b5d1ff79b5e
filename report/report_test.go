package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/symtrace/lintric/analyzer"
	"github.com/symtrace/lintric/internal/ir"
	"github.com/symtrace/lintric/internal/metrics"
)

func sampleResult() analyzer.Result {
	return analyzer.Result{
		IR: ir.IR{
			FilePath: "greeter.rs",
			Dependencies: []ir.Dependency{
				{SourceLine: 6, TargetLine: 1, Symbol: "greet", DependencyType: ir.FunctionCall},
			},
			AnalysisMetadata: ir.AnalysisMetadata{Language: ir.Rust, TotalLines: 8, OverallComplexityScore: 0.625},
		},
		Metrics: []metrics.Line{
			{Line: 6, TotalDependencies: 1, DependencyDistanceCost: 5},
		},
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []analyzer.Result{sampleResult()}, JSON); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(docs) != 1 || docs[0]["file_path"] != "greeter.rs" {
		t.Fatalf("unexpected decoded document: %+v", docs)
	}
}

func TestWriteTextIncludesDependencyAndMetricLines(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []analyzer.Result{sampleResult()}, Text); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("greeter.rs")) {
		t.Fatalf("expected file path in text output, got %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("greet")) {
		t.Fatalf("expected dependency symbol in text output, got %q", out)
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []analyzer.Result{sampleResult()}, Format("xml")); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
